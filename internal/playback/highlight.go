package playback

import (
	"sort"

	"github.com/san-kum/sortlab/internal/trace"
)

// Highlight is the set of indices flagged by the current step.
type Highlight struct {
	Comparing []int `json:"comparing"`
	Swapping  []int `json:"swapping"`
	Sorted    []int `json:"sorted"`
	Pivot     int   `json:"pivot"`
}

// Role reports how index i should be drawn. Swapping wins over comparing,
// comparing over pivot, pivot over sorted.
func (h Highlight) Role(i int) string {
	switch {
	case contains(h.Swapping, i):
		return "swapping"
	case contains(h.Comparing, i):
		return "comparing"
	case h.Pivot == i:
		return "pivot"
	case contains(h.Sorted, i):
		return "sorted"
	default:
		return ""
	}
}

func contains(s []int, x int) bool {
	for _, v := range s {
		if v == x {
			return true
		}
	}
	return false
}

// highlighter accumulates the highlight state while steps are applied.
type highlighter struct {
	comparing []int
	swapping  []int
	pivot     int
	sorted    map[int]struct{}
}

func newHighlighter() highlighter {
	return highlighter{pivot: -1, sorted: make(map[int]struct{})}
}

func (h *highlighter) clearTransient() {
	h.comparing = nil
	h.swapping = nil
	h.pivot = -1
}

func (h *highlighter) apply(s trace.Step) {
	h.clearTransient()
	switch s.Kind {
	case trace.KindCompare:
		h.comparing = s.Indices
	case trace.KindSwap:
		h.swapping = s.Indices
	case trace.KindSorted:
		for _, i := range s.Indices {
			h.sorted[i] = struct{}{}
		}
	case trace.KindPivot:
		if len(s.Indices) > 0 {
			h.pivot = s.Indices[0]
		}
	case trace.KindGap:
	default:
		h.comparing = s.Indices
	}
}

// rebuild replays the highlight for the prefix steps[:n], keeping only the
// transient sets of the last step.
func (h *highlighter) rebuild(steps []trace.Step, n int) {
	*h = newHighlighter()
	for _, s := range steps[:n] {
		if s.Kind == trace.KindSorted {
			for _, i := range s.Indices {
				h.sorted[i] = struct{}{}
			}
		}
	}
	if n > 0 {
		h.apply(steps[n-1])
	}
}

func (h *highlighter) markAll(n int) {
	h.clearTransient()
	for i := 0; i < n; i++ {
		h.sorted[i] = struct{}{}
	}
}

func (h *highlighter) snapshot() Highlight {
	out := Highlight{
		Comparing: append([]int{}, h.comparing...),
		Swapping:  append([]int{}, h.swapping...),
		Sorted:    make([]int, 0, len(h.sorted)),
		Pivot:     h.pivot,
	}
	for i := range h.sorted {
		out.Sorted = append(out.Sorted, i)
	}
	sort.Ints(out.Sorted)
	return out
}
