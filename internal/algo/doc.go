// Package algo records sorting algorithms as step traces.
//
// Each algorithm is a builder that drives a [trace.Recorder] through the
// textbook version of the sort, emitting one step per comparison and per
// in-place write:
//
//   - comparison sorts: bubble, selection, insertion, shell
//   - divide and conquer: merge, quick, heap
//   - distribution: radix (LSD, base 10), counting
//
// Builders are looked up by identifier through a [Registry]. Build validates
// the input, handles the empty array, and returns a finished [trace.Trace].
//
// # Example
//
//	tr, err := algo.Build("bubbleSort", trace.Values{5, 3, 8, 1})
//	if err != nil {
//		return err
//	}
//	fmt.Println(tr.Stats.Comparisons, tr.Final())
//
// # Recursion
//
// Merge and heap sort recurse to depth O(log n). Quick sort uses the last
// element as pivot and recurses to depth n on already-sorted input. Goroutine
// stacks grow on demand (up to 1 GB on 64-bit platforms), so the array sizes
// this package is meant for never come close to the limit.
package algo
