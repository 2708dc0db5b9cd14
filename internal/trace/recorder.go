package trace

// Element is an array value together with its position in the input.
type Element struct {
	Value  float64
	Origin int
}

// Recorder accumulates steps while a builder sorts its working array.
//
// Builders read the slice returned by Array but write only through the
// recorder methods, which keep the origin of every element and append one
// Step holding a fresh copy of the array.
type Recorder struct {
	algorithm   string
	input       Values
	arr         Values
	origin      []int
	steps       []Step
	comparisons int
	swaps       int
	done        bool
}

// NewRecorder copies input into a private working array.
func NewRecorder(algorithm string, input Values) *Recorder {
	origin := make([]int, len(input))
	for i := range origin {
		origin[i] = i
	}
	return &Recorder{
		algorithm: algorithm,
		input:     input.Clone(),
		arr:       input.Clone(),
		origin:    origin,
		steps:     make([]Step, 0, 4*len(input)+1),
	}
}

// Array returns the working array for reading.
func (r *Recorder) Array() Values { return r.arr }

// Hold returns the element at i.
func (r *Recorder) Hold(i int) Element {
	return Element{Value: r.arr[i], Origin: r.origin[i]}
}

// Elements copies the elements in [lo, hi).
func (r *Recorder) Elements(lo, hi int) []Element {
	out := make([]Element, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, r.Hold(i))
	}
	return out
}

func (r *Recorder) write(i int, e Element) {
	r.arr[i] = e.Value
	r.origin[i] = e.Origin
}

// Len returns the number of steps recorded so far.
func (r *Recorder) Len() int { return len(r.steps) }

// Comparisons returns the running comparison count.
func (r *Recorder) Comparisons() int { return r.comparisons }

// Swaps returns the running swap/move count.
func (r *Recorder) Swaps() int { return r.swaps }

func (r *Recorder) emit(kind Kind, counted Counter, indices ...int) {
	idx := make([]int, len(indices))
	copy(idx, indices)
	r.steps = append(r.steps, Step{
		Kind:        kind,
		Indices:     idx,
		Snapshot:    r.arr.Clone(),
		Comparisons: r.comparisons,
		Swaps:       r.swaps,
		Counted:     counted,
	})
}

// Compare records a counted comparison between i and j. The array is not
// touched.
func (r *Recorder) Compare(i, j int) {
	r.comparisons++
	r.emit(KindCompare, CountedComparison, i, j)
}

// Swap exchanges a[i] and a[j] and records a counted swap.
func (r *Recorder) Swap(i, j int) {
	r.arr[i], r.arr[j] = r.arr[j], r.arr[i]
	r.origin[i], r.origin[j] = r.origin[j], r.origin[i]
	r.swaps++
	r.emit(KindSwap, CountedSwap, i, j)
}

// Pivot marks the partition pivot.
func (r *Recorder) Pivot(i int) { r.emit(KindPivot, 0, i) }

// Select marks the element currently being placed.
func (r *Recorder) Select(i int) { r.emit(KindSelect, 0, i) }

// Shift copies a[src] into a[dst] and records the shift at dst.
func (r *Recorder) Shift(dst, src int) {
	r.write(dst, r.Hold(src))
	r.emit(KindShift, 0, dst)
}

// Insert writes a held key into its final slot; it counts as one move.
func (r *Recorder) Insert(i int, e Element) {
	r.write(i, e)
	r.swaps++
	r.emit(KindInsert, CountedSwap, i)
}

// Restore writes a held key back without recording a step. Used when an
// insertion key lands where it started.
func (r *Recorder) Restore(i int, e Element) {
	r.write(i, e)
}

// Merge writes e into a[k] and records the merge.
func (r *Recorder) Merge(k int, e Element) {
	r.write(k, e)
	r.emit(KindMerge, 0, k)
}

// Count records one element tallied into a count table.
func (r *Recorder) Count(i int) { r.emit(KindCount, 0, i) }

// Bucket records input element i written to its output bucket. The working
// array is unchanged until Copy.
func (r *Recorder) Bucket(i int) { r.emit(KindPlace, 0, i) }

// Copy writes an output element back into a[i].
func (r *Recorder) Copy(i int, e Element) {
	r.write(i, e)
	r.emit(KindCopy, 0, i)
}

// Gap records the start of a shell sort pass.
func (r *Recorder) Gap(gap int) {
	r.emit(KindGap, 0)
	r.steps[len(r.steps)-1].Gap = gap
}

// Sorted marks positions as final.
func (r *Recorder) Sorted(indices ...int) { r.emit(KindSorted, 0, indices...) }

// SortedAll marks every position as final.
func (r *Recorder) SortedAll() {
	idx := make([]int, len(r.arr))
	for i := range idx {
		idx[i] = i
	}
	r.emit(KindSorted, 0, idx...)
}

// Finish seals the recording. The recorder must not be used afterwards.
func (r *Recorder) Finish() *Trace {
	if r.done {
		panic("trace: Finish called twice")
	}
	r.done = true
	perm := make([]int, len(r.origin))
	copy(perm, r.origin)
	return &Trace{
		Algorithm:   r.algorithm,
		Input:       r.input,
		Steps:       r.steps,
		Permutation: perm,
		Stats: Stats{
			Comparisons: r.comparisons,
			Swaps:       r.swaps,
			Steps:       len(r.steps),
		},
	}
}
