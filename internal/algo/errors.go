package algo

import "errors"

var (
	// ErrUnknownAlgorithm indicates an identifier with no registered builder.
	ErrUnknownAlgorithm = errors.New("algo: unknown algorithm")

	// ErrKeyRange indicates a counting sort key range too wide for a count table.
	ErrKeyRange = errors.New("algo: key range too large")
)
