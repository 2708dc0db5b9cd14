package algo

import "github.com/san-kum/sortlab/internal/trace"

// bubbleSort always runs n-1 passes; a pass without swaps does not end it.
func bubbleSort(rec *trace.Recorder) error {
	a := rec.Array()
	n := len(a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			rec.Compare(j, j+1)
			if a[j] > a[j+1] {
				rec.Swap(j, j+1)
			}
		}
		rec.Sorted(n - i - 1)
	}
	rec.Sorted(0)
	return nil
}

func selectionSort(rec *trace.Recorder) error {
	a := rec.Array()
	n := len(a)
	for i := 0; i < n-1; i++ {
		minIdx := i
		rec.Select(i)
		for j := i + 1; j < n; j++ {
			rec.Compare(minIdx, j)
			if a[j] < a[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			rec.Swap(i, minIdx)
		}
		rec.Sorted(i)
	}
	rec.Sorted(n - 1)
	return nil
}

// insertionSort records every key comparison, including the one that stops
// the leftward scan. Only a key that actually moved counts as a swap.
func insertionSort(rec *trace.Recorder) error {
	a := rec.Array()
	for i := 1; i < len(a); i++ {
		key := rec.Hold(i)
		rec.Select(i)

		j := i - 1
		for j >= 0 {
			rec.Compare(j, j+1)
			if a[j] <= key.Value {
				break
			}
			rec.Shift(j+1, j)
			j--
		}
		if j+1 != i {
			rec.Insert(j+1, key)
		} else {
			rec.Restore(j+1, key)
		}
	}
	rec.SortedAll()
	return nil
}

// shellSort halves the gap from n/2 down to 1 and insertion-sorts each
// gap-strided subsequence.
func shellSort(rec *trace.Recorder) error {
	a := rec.Array()
	n := len(a)
	for gap := n / 2; gap > 0; gap /= 2 {
		rec.Gap(gap)
		for i := gap; i < n; i++ {
			temp := rec.Hold(i)
			rec.Select(i)

			j := i
			for j >= gap {
				rec.Compare(j-gap, j)
				if a[j-gap] <= temp.Value {
					break
				}
				rec.Shift(j, j-gap)
				j -= gap
			}
			if j != i {
				rec.Insert(j, temp)
			} else {
				rec.Restore(j, temp)
			}
		}
	}
	rec.SortedAll()
	return nil
}
