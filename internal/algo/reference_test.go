package algo

// Plain implementations that only count, used to check the recorded
// counters without going through the Recorder.

type counts struct {
	comparisons int
	swaps       int
}

func referenceCounts(name string, input []float64) counts {
	a := append([]float64(nil), input...)
	var c counts
	switch name {
	case "bubbleSort":
		for i := 0; i < len(a)-1; i++ {
			for j := 0; j < len(a)-i-1; j++ {
				c.comparisons++
				if a[j] > a[j+1] {
					a[j], a[j+1] = a[j+1], a[j]
					c.swaps++
				}
			}
		}
	case "selectionSort":
		for i := 0; i < len(a)-1; i++ {
			m := i
			for j := i + 1; j < len(a); j++ {
				c.comparisons++
				if a[j] < a[m] {
					m = j
				}
			}
			if m != i {
				a[i], a[m] = a[m], a[i]
				c.swaps++
			}
		}
	case "insertionSort":
		refGapInsertion(a, 1, &c)
	case "shellSort":
		for gap := len(a) / 2; gap > 0; gap /= 2 {
			refGapInsertion(a, gap, &c)
		}
	case "mergeSort":
		refMerge(a, &c)
	case "quickSort":
		refQuick(a, 0, len(a)-1, &c)
	case "heapSort":
		n := len(a)
		for i := n/2 - 1; i >= 0; i-- {
			refSift(a, n, i, &c)
		}
		for i := n - 1; i > 0; i-- {
			a[0], a[i] = a[i], a[0]
			c.swaps++
			refSift(a, i, 0, &c)
		}
	}
	return c
}

func refGapInsertion(a []float64, gap int, c *counts) {
	for i := gap; i < len(a); i++ {
		key := a[i]
		j := i
		for j >= gap {
			c.comparisons++
			if a[j-gap] <= key {
				break
			}
			a[j] = a[j-gap]
			j -= gap
		}
		a[j] = key
		if j != i {
			c.swaps++
		}
	}
}

func refMerge(a []float64, c *counts) {
	if len(a) < 2 {
		return
	}
	// Left half takes the middle element, as (l+r)/2 does.
	mid := (len(a) + 1) / 2
	refMerge(a[:mid], c)
	refMerge(a[mid:], c)
	l := append([]float64(nil), a[:mid]...)
	r := append([]float64(nil), a[mid:]...)
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		c.comparisons++
		if l[i] <= r[j] {
			i++
		} else {
			j++
		}
	}
	k := 0
	for i, j = 0, 0; i < len(l) || j < len(r); k++ {
		if j >= len(r) || (i < len(l) && l[i] <= r[j]) {
			a[k] = l[i]
			i++
		} else {
			a[k] = r[j]
			j++
		}
	}
}

func refQuick(a []float64, lo, hi int, c *counts) {
	if lo >= hi {
		return
	}
	p := a[hi]
	i := lo - 1
	for j := lo; j < hi; j++ {
		c.comparisons++
		if a[j] <= p {
			i++
			if i != j {
				a[i], a[j] = a[j], a[i]
				c.swaps++
			}
		}
	}
	a[i+1], a[hi] = a[hi], a[i+1]
	c.swaps++
	refQuick(a, lo, i, c)
	refQuick(a, i+2, hi, c)
}

func refSift(a []float64, n, i int, c *counts) {
	for {
		largest := i
		l, r := 2*i+1, 2*i+2
		if l < n {
			c.comparisons++
			if a[l] > a[largest] {
				largest = l
			}
		}
		if r < n {
			c.comparisons++
			if a[r] > a[largest] {
				largest = r
			}
		}
		if largest == i {
			return
		}
		a[i], a[largest] = a[largest], a[i]
		c.swaps++
		i = largest
	}
}
