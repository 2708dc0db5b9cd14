package race

import "errors"

var (
	ErrTooFewLanes   = errors.New("race: at least two algorithms required")
	ErrDuplicateLane = errors.New("race: algorithm listed more than once")
	ErrNotStarted    = errors.New("race: not started")
	ErrLaneIndex     = errors.New("race: lane index out of range")
	ErrCancelled     = errors.New("race: cancelled")
)
