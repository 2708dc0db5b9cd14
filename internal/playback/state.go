package playback

import "fmt"

// State is the playback lifecycle state.
type State int

const (
	Empty State = iota
	Ready
	Playing
	Paused
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tick permits one auto-advance. The zero Tick is never valid.
type Tick struct {
	epoch uint64
}

// Valid reports whether t was issued by a session. A valid token may still
// be stale.
func (t Tick) Valid() bool { return t.epoch != 0 }
