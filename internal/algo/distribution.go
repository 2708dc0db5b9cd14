package algo

import (
	"fmt"

	"github.com/san-kum/sortlab/internal/trace"
)

const (
	// MaxRadixKey bounds radix sort keys so digit extraction stays exact.
	MaxRadixKey = 1e15

	// MaxCountRange bounds the counting sort table (max - min + 1).
	MaxCountRange = 1 << 20
)

// radixSort is LSD base 10. It runs one stable counting pass per digit of
// the largest key; an all-zero array gets no passes.
func radixSort(rec *trace.Recorder) error {
	a := rec.Array()
	hi := a[0]
	for _, v := range a[1:] {
		if v > hi {
			hi = v
		}
	}
	if hi > MaxRadixKey {
		return fmt.Errorf("%w: largest key %v exceeds %v", ErrKeyRange, hi, float64(MaxRadixKey))
	}

	m := int64(hi)
	for exp := int64(1); m/exp > 0; exp *= 10 {
		countByDigit(rec, exp)
	}
	rec.SortedAll()
	return nil
}

func digit(v float64, exp int64) int {
	return int((int64(v) / exp) % 10)
}

func countByDigit(rec *trace.Recorder, exp int64) {
	a := rec.Array()
	n := len(a)

	var count [10]int
	for i := 0; i < n; i++ {
		count[digit(a[i], exp)]++
		rec.Count(i)
	}
	for d := 1; d < 10; d++ {
		count[d] += count[d-1]
	}

	output := make([]trace.Element, n)
	for i := n - 1; i >= 0; i-- {
		d := digit(a[i], exp)
		output[count[d]-1] = rec.Hold(i)
		count[d]--
		rec.Bucket(i)
	}

	for i := 0; i < n; i++ {
		rec.Copy(i, output[i])
	}
}

// countingSort offsets keys by the minimum, so negative integers are fine.
func countingSort(rec *trace.Recorder) error {
	a := rec.Array()
	lo, hi := a[0], a[0]
	for _, v := range a[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo + 1
	if span > MaxCountRange {
		return fmt.Errorf("%w: %v distinct slots exceeds %d", ErrKeyRange, span, MaxCountRange)
	}

	n := len(a)
	count := make([]int, int(span))
	for i := 0; i < n; i++ {
		count[int(a[i]-lo)]++
		rec.Count(i)
	}
	for k := 1; k < len(count); k++ {
		count[k] += count[k-1]
	}

	output := make([]trace.Element, n)
	for i := n - 1; i >= 0; i-- {
		k := int(a[i] - lo)
		output[count[k]-1] = rec.Hold(i)
		count[k]--
		rec.Bucket(i)
	}

	for i := 0; i < n; i++ {
		rec.Copy(i, output[i])
	}
	rec.SortedAll()
	return nil
}
