// Package trace defines the step-trace model used by every sorting algorithm.
//
// A sort is recorded as an ordered, immutable list of [Step] values. Each step
// carries a full copy of the array immediately after its effect, so any step
// can be rendered on its own:
//
//   - [Step]: one primitive operation (compare, swap, shift, ...)
//   - [Trace]: the complete recording of one algorithm over one input
//   - [Recorder]: helper used by builders to mutate a working array and
//     snapshot it after each primitive
//   - [Stats]: aggregate counters for a trace or a playback position
//
// # Example
//
//	rec := trace.NewRecorder("bubbleSort", []float64{5, 3, 8, 1})
//	a := rec.Array()
//	rec.Compare(0, 1)
//	if a[0] > a[1] {
//		rec.Swap(0, 1)
//	}
//	tr := rec.Finish()
//
// # Thread Safety
//
// A Recorder is single-use and NOT thread-safe. A finished Trace is never
// mutated and may be read from any number of goroutines.
package trace
