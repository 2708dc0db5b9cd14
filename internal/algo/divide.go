package algo

import "github.com/san-kum/sortlab/internal/trace"

func mergeSort(rec *trace.Recorder) error {
	mergeRange(rec, 0, len(rec.Array())-1)
	rec.SortedAll()
	return nil
}

func mergeRange(rec *trace.Recorder, left, right int) {
	if left >= right {
		return
	}
	mid := (left + right) / 2
	mergeRange(rec, left, mid)
	mergeRange(rec, mid+1, right)
	merge(rec, left, mid, right)
}

// merge takes from the left run on ties, which keeps the sort stable.
func merge(rec *trace.Recorder, left, mid, right int) {
	l := rec.Elements(left, mid+1)
	r := rec.Elements(mid+1, right+1)

	i, j, k := 0, 0, left
	for i < len(l) && j < len(r) {
		rec.Compare(left+i, mid+1+j)
		if l[i].Value <= r[j].Value {
			rec.Merge(k, l[i])
			i++
		} else {
			rec.Merge(k, r[j])
			j++
		}
		k++
	}
	for ; i < len(l); i++ {
		rec.Merge(k, l[i])
		k++
	}
	for ; j < len(r); j++ {
		rec.Merge(k, r[j])
		k++
	}
}

func quickSort(rec *trace.Recorder) error {
	quickRange(rec, 0, len(rec.Array())-1)
	rec.SortedAll()
	return nil
}

func quickRange(rec *trace.Recorder, low, high int) {
	if low < high {
		p := partition(rec, low, high)
		quickRange(rec, low, p-1)
		quickRange(rec, p+1, high)
	}
}

// partition is Lomuto's scheme with the last element as pivot. The final
// pivot swap is recorded even when it is a no-op.
func partition(rec *trace.Recorder, low, high int) int {
	a := rec.Array()
	pivot := a[high]
	rec.Pivot(high)

	i := low - 1
	for j := low; j < high; j++ {
		rec.Compare(j, high)
		if a[j] <= pivot {
			i++
			if i != j {
				rec.Swap(i, j)
			}
		}
	}
	rec.Swap(i+1, high)
	return i + 1
}

func heapSort(rec *trace.Recorder) error {
	n := len(rec.Array())
	for i := n/2 - 1; i >= 0; i-- {
		heapify(rec, n, i)
	}
	for i := n - 1; i > 0; i-- {
		rec.Swap(0, i)
		rec.Sorted(i)
		heapify(rec, i, 0)
	}
	rec.Sorted(0)
	return nil
}

// heapify sifts a[i] down a max-heap of size n.
func heapify(rec *trace.Recorder, n, i int) {
	a := rec.Array()
	largest := i
	left, right := 2*i+1, 2*i+2

	if left < n {
		rec.Compare(left, largest)
		if a[left] > a[largest] {
			largest = left
		}
	}
	if right < n {
		rec.Compare(right, largest)
		if a[right] > a[largest] {
			largest = right
		}
	}
	if largest != i {
		rec.Swap(i, largest)
		heapify(rec, n, largest)
	}
}
