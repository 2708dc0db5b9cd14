// Package storage persists recorded traces.
//
// Two backends share the Repository interface: a directory store that
// writes one run directory per trace (metadata.json plus steps.csv), and a
// SQLite archive holding every run in one database file.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/sortlab/internal/trace"
)

var ErrRunNotFound = errors.New("storage: run not found")

// RunMetadata describes a saved trace without its steps.
type RunMetadata struct {
	ID          string       `json:"id"`
	Algorithm   string       `json:"algorithm"`
	Timestamp   time.Time    `json:"timestamp"`
	Seed        int64        `json:"seed"`
	Size        int          `json:"size"`
	Steps       int          `json:"steps"`
	Comparisons int          `json:"comparisons"`
	Swaps       int          `json:"swaps"`
	Stable      bool         `json:"stable"`
	Input       trace.Values `json:"input"`
	Permutation []int        `json:"permutation"`
}

type Repository interface {
	Save(tr *trace.Trace, seed int64) (string, error)
	List() ([]RunMetadata, error)
	Load(runID string) (*RunMetadata, error)
	LoadTrace(runID string) (*trace.Trace, error)
	Close() error
}

// Open returns the repository for backend ("file" or "sqlite") rooted at dir.
func Open(backend, dir string) (Repository, error) {
	switch backend {
	case "", "file":
		s := New(dir)
		if err := s.Init(); err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		return OpenArchive(filepath.Join(dir, "sortlab.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// NewRunID returns "<algorithm>_<uuid v7>", which sorts by creation time.
func NewRunID(algorithm string) string {
	return fmt.Sprintf("%s_%s", algorithm, uuid.Must(uuid.NewV7()).String())
}

func newMetadata(id string, tr *trace.Trace, seed int64, at time.Time) RunMetadata {
	perm := make([]int, len(tr.Permutation))
	copy(perm, tr.Permutation)
	return RunMetadata{
		ID:          id,
		Algorithm:   tr.Algorithm,
		Timestamp:   at,
		Seed:        seed,
		Size:        len(tr.Input),
		Steps:       tr.Stats.Steps,
		Comparisons: tr.Stats.Comparisons,
		Swaps:       tr.Stats.Swaps,
		Stable:      tr.Stable(),
		Input:       tr.Input.Clone(),
		Permutation: perm,
	}
}

// assemble rebuilds a trace from its metadata and steps.
func assemble(meta *RunMetadata, steps []trace.Step) *trace.Trace {
	perm := make([]int, len(meta.Permutation))
	copy(perm, meta.Permutation)
	return &trace.Trace{
		Algorithm:   meta.Algorithm,
		Input:       meta.Input.Clone(),
		Steps:       steps,
		Permutation: perm,
		Stats: trace.Stats{
			Comparisons: meta.Comparisons,
			Swaps:       meta.Swaps,
			Steps:       len(steps),
		},
	}
}

func sortRuns(runs []RunMetadata) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
		return runs[i].ID < runs[j].ID
	})
}
