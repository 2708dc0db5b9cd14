// Package playback replays a recorded sort trace.
//
// A [Session] owns one algorithm, one input and, once built, one trace. It
// tracks the current position, derives the highlight state from the step at
// that position, and advances under a configurable speed:
//
//	Empty --build--> Ready --Play--> Playing <--Pause--> Paused
//	                                    |
//	                                    +--end of trace--> Complete
//
// Reset, SetAlgorithm and SetInput return any state to Empty.
//
// Auto-advance is an explicit transition. Play hands out a [Tick] token and
// every Advance returns the next one; Pause, Reset and completion invalidate
// outstanding tokens, so a timer that fires late does nothing. Run is a
// ready-made real-time driver built on those two calls. AdvanceAt serves
// callers that poll faster than the playback speed (a UI frame loop).
//
// # Thread Safety
//
// A Session is NOT thread-safe and must be driven by one goroutine. The
// trace it holds is never mutated and can be shared with other readers.
package playback
