package trace

import "time"

// Kind identifies the primitive operation a step records.
type Kind string

const (
	KindCompare Kind = "compare"
	KindSwap    Kind = "swap"
	KindSorted  Kind = "sorted"
	KindPivot   Kind = "pivot"
	KindSelect  Kind = "select"
	KindMerge   Kind = "merge"
	KindShift   Kind = "shift"
	KindInsert  Kind = "insert"
	KindPlace   Kind = "place"
	KindCount   Kind = "count"
	KindCopy    Kind = "copy"
	KindGap     Kind = "gap"
)

var kinds = []Kind{
	KindCompare, KindSwap, KindSorted, KindPivot, KindSelect, KindMerge,
	KindShift, KindInsert, KindPlace, KindCount, KindCopy, KindGap,
}

// Kinds returns every step kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Values is an array of sort keys.
type Values []float64

func (v Values) Clone() Values {
	c := make(Values, len(v))
	copy(c, v)
	return c
}

// Equal reports element-wise equality.
func (v Values) Equal(other Values) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// Counter flags which running counter a step incremented.
type Counter uint8

const (
	CountedComparison Counter = 1 << iota
	CountedSwap
)

// Step is one atomic, replayable record of a primitive sort operation.
//
// Snapshot holds the array AFTER the step's effect. Comparisons and Swaps are
// the cumulative counters at this point of the trace; Counted says which of
// them this step itself incremented.
type Step struct {
	Kind        Kind    `json:"kind"`
	Indices     []int   `json:"indices"`
	Snapshot    Values  `json:"snapshot"`
	Comparisons int     `json:"comparisons"`
	Swaps       int     `json:"swaps"`
	Counted     Counter `json:"counted,omitempty"`
	Gap         int     `json:"gap,omitempty"`
}

// IncrementsComparisons reports whether this step is a counted comparison.
func (s Step) IncrementsComparisons() bool { return s.Counted&CountedComparison != 0 }

// IncrementsSwaps reports whether this step is a counted swap or move.
func (s Step) IncrementsSwaps() bool { return s.Counted&CountedSwap != 0 }

// Stats aggregates counters for a trace or a playback position.
type Stats struct {
	Comparisons int           `json:"comparisons"`
	Swaps       int           `json:"swaps"`
	Steps       int           `json:"steps"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Trace is the complete, immutable recording of one algorithm over one input.
//
// Permutation[i] is the input position of the element that ends at position
// i of the final snapshot.
type Trace struct {
	Algorithm   string `json:"algorithm"`
	Input       Values `json:"input"`
	Steps       []Step `json:"steps"`
	Permutation []int  `json:"permutation"`
	Stats       Stats  `json:"stats"`
}

// Len returns the number of steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Steps)
}

// At returns the step at index i.
func (t *Trace) At(i int) (Step, bool) {
	if t == nil || i < 0 || i >= len(t.Steps) {
		return Step{}, false
	}
	return t.Steps[i], true
}

// Final returns a copy of the last snapshot, or of the input when the trace
// has no steps.
func (t *Trace) Final() Values {
	if t == nil {
		return nil
	}
	if len(t.Steps) == 0 {
		return t.Input.Clone()
	}
	return t.Steps[len(t.Steps)-1].Snapshot.Clone()
}

// CountKind returns how many steps of kind k the trace contains.
func (t *Trace) CountKind(k Kind) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, s := range t.Steps {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// Stable reports whether equal keys in the final snapshot kept their input
// order.
func (t *Trace) Stable() bool {
	if t == nil {
		return true
	}
	final := t.Final()
	if len(t.Permutation) != len(final) {
		return false
	}
	for i := 1; i < len(final); i++ {
		if final[i] == final[i-1] && t.Permutation[i] < t.Permutation[i-1] {
			return false
		}
	}
	return true
}
