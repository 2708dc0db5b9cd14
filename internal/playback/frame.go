package playback

import (
	"time"

	"github.com/san-kum/sortlab/internal/trace"
)

// Frame is everything a renderer needs for the current position.
type Frame struct {
	Algorithm string       `json:"algorithm"`
	Array     trace.Values `json:"array"`
	Kind      trace.Kind   `json:"kind,omitempty"`
	Gap       int          `json:"gap,omitempty"`
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	State     State        `json:"state"`
	Highlight Highlight    `json:"highlight"`
	Stats     trace.Stats  `json:"stats"`
}

func (s *Session) Frame() Frame {
	f := Frame{
		Algorithm: s.algorithm,
		Array:     s.array.Clone(),
		Index:     s.pos,
		Total:     s.Len(),
		State:     s.state,
		Highlight: s.hl.snapshot(),
		Stats:     s.Stats(),
	}
	if step, ok := s.Current(); ok {
		f.Kind = step.Kind
		f.Gap = step.Gap
	}
	return f
}

// Progress summarizes how far playback has come and how long the rest
// takes at the current speed.
type Progress struct {
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Remaining int           `json:"remaining"`
	Fraction  float64       `json:"fraction"`
	ETA       time.Duration `json:"eta"`
}

func (s *Session) Progress() Progress {
	total := s.Len()
	p := Progress{Index: s.pos, Total: total, Remaining: total - s.pos}
	if total > 0 {
		p.Fraction = float64(s.pos) / float64(total)
	}
	p.ETA = time.Duration(p.Remaining) * s.interval()
	return p
}

// Timeline samples the sortedness of the trace at width evenly spaced steps,
// for drawing a scrub bar. It returns nil before the trace is built. Sample
// i covers step i*Len/width.
func (s *Session) Timeline(width int) []float64 {
	n := s.Len()
	if n == 0 || width <= 0 {
		return nil
	}
	if width > n {
		width = n
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = trace.Sortedness(s.tr.Steps[i*n/width].Snapshot)
	}
	return out
}

// TimelineIndex maps a column of a width-wide timeline back to a step
// index, for seeking by click or drag.
func TimelineIndex(col, width, total int) int {
	if width <= 0 || total <= 0 {
		return 0
	}
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col * total / width
}
