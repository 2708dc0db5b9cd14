package playback

import (
	"log/slog"
	"time"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/logging"
	"github.com/san-kum/sortlab/internal/trace"
)

// Session replays one algorithm over one input.
//
// The position is the number of steps applied so far, from 0 (original
// input) to Len (trace exhausted). The step on screen is the one at
// position-1.
type Session struct {
	registry  *algo.Registry
	algorithm string
	original  trace.Values

	tr    *trace.Trace
	pos   int
	state State
	array trace.Values
	hl    highlighter

	comparisons int
	swaps       int

	speed   float64
	epoch   uint64
	start   time.Time
	last    time.Time
	elapsed time.Duration

	now    func() time.Time
	logger *slog.Logger
}

// New creates an Empty session. The algorithm is resolved immediately; the
// input is validated when the trace is first built.
func New(registry *algo.Registry, algorithm string, input trace.Values, opts ...Option) (*Session, error) {
	if registry == nil {
		registry = algo.Default()
	}
	id, err := registry.Resolve(algorithm)
	if err != nil {
		return nil, err
	}

	s := &Session{
		registry:  registry,
		algorithm: id,
		original:  input.Clone(),
		speed:     DefaultSpeed,
		epoch:     1,
		now:       time.Now,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.clear()
	return s, nil
}

func (s *Session) clear() {
	s.tr = nil
	s.pos = 0
	s.state = Empty
	s.array = s.original
	s.hl = newHighlighter()
	s.comparisons = 0
	s.swaps = 0
	s.elapsed = 0
	s.start = time.Time{}
	s.last = time.Time{}
}

// EnsureTrace builds the trace if the session has none. It is idempotent.
func (s *Session) EnsureTrace() error {
	if s.tr != nil {
		return nil
	}
	tr, err := s.registry.Build(s.algorithm, s.original)
	if err != nil {
		s.logger.Warn("trace build failed", "algorithm", s.algorithm, "error", err)
		return err
	}
	s.tr = tr
	s.state = Ready
	s.logger.Debug("trace built",
		"algorithm", s.algorithm,
		"size", len(s.original),
		"steps", tr.Len(),
		"comparisons", tr.Stats.Comparisons,
		"swaps", tr.Stats.Swaps,
	)
	return nil
}

func (s *Session) interval() time.Duration {
	return time.Duration(float64(time.Second) / s.speed)
}

// Interval is the time between auto-advance steps at the current speed.
func (s *Session) Interval() time.Duration { return s.interval() }

// Play starts auto-advance and returns the first token. Elapsed time is
// rebased so that the steps already shown count as played at the current
// speed. Playing an already playing session returns the live token; playing
// a complete one is a no-op returning the zero Tick.
func (s *Session) Play() (Tick, error) {
	if err := s.EnsureTrace(); err != nil {
		return Tick{}, err
	}
	switch s.state {
	case Playing:
		return Tick{epoch: s.epoch}, nil
	case Complete:
		return Tick{}, nil
	}

	now := s.now()
	s.state = Playing
	s.epoch++
	s.start = now.Add(-time.Duration(s.pos) * s.interval())
	s.last = now
	s.elapsed = now.Sub(s.start)
	s.logger.Debug("play", "algorithm", s.algorithm, "position", s.pos, "speed", s.speed)
	return Tick{epoch: s.epoch}, nil
}

// Pause stops auto-advance. Outstanding tokens become stale.
func (s *Session) Pause() {
	if s.state != Playing {
		return
	}
	s.elapsed = s.now().Sub(s.start)
	s.state = Paused
	s.epoch++
	s.logger.Debug("pause", "algorithm", s.algorithm, "position", s.pos)
}

// Advance applies one step if t is current and the session is playing.
// It reports whether a step was applied and returns the token for the next
// advance, which is the zero Tick once playback has completed.
func (s *Session) Advance(t Tick) (Tick, bool) {
	if !t.Valid() || t.epoch != s.epoch || s.state != Playing {
		return Tick{}, false
	}
	now := s.now()
	s.forward()
	s.last = now
	s.elapsed = now.Sub(s.start)
	if s.state != Playing {
		return Tick{}, true
	}
	return Tick{epoch: s.epoch}, true
}

// AdvanceAt applies one step when at least one interval has passed since
// the last advance. It reports whether a step was applied.
func (s *Session) AdvanceAt(now time.Time) bool {
	if s.state != Playing {
		return false
	}
	if now.Sub(s.last) < s.interval() {
		s.elapsed = now.Sub(s.start)
		return false
	}
	s.forward()
	s.last = now
	s.elapsed = now.Sub(s.start)
	return true
}

// StepForward applies the next step, building the trace first if needed.
// Applying the last step completes playback.
func (s *Session) StepForward() error {
	if err := s.EnsureTrace(); err != nil {
		return err
	}
	s.forward()
	return nil
}

func (s *Session) forward() {
	if s.pos < s.tr.Len() {
		step := s.tr.Steps[s.pos]
		s.show(step)
		s.hl.apply(step)
		s.pos++
		if s.state == Ready {
			s.state = Paused
		}
	}
	if s.pos >= s.tr.Len() {
		s.complete()
	}
}

func (s *Session) show(step trace.Step) {
	s.array = step.Snapshot
	s.comparisons = step.Comparisons
	s.swaps = step.Swaps
}

func (s *Session) complete() {
	if s.state == Complete {
		return
	}
	if s.state == Playing {
		s.elapsed = s.now().Sub(s.start)
	}
	s.state = Complete
	s.epoch++
	s.hl.markAll(len(s.array))
	s.logger.Debug("complete", "algorithm", s.algorithm, "steps", s.pos, "elapsed", s.elapsed)
}

// StepBackward moves back one step. Position 0 shows the original input
// with no highlight. Stepping back while playing pauses first.
func (s *Session) StepBackward() {
	if s.tr == nil || s.pos == 0 {
		return
	}
	s.Pause()
	s.jump(s.pos - 1)
}

// Seek shows the step at target, clamped to [0, Len-1], and leaves the
// position just after it so the next StepForward continues from there.
// Seeking while playing keeps playing from the new position. Seeking to the
// last step completes playback.
func (s *Session) Seek(target int) error {
	if err := s.EnsureTrace(); err != nil {
		return err
	}
	if target < 0 {
		target = 0
	}
	if target > s.tr.Len()-1 {
		target = s.tr.Len() - 1
	}
	s.jump(target + 1)
	if s.state == Playing {
		now := s.now()
		s.start = now.Add(-time.Duration(s.pos) * s.interval())
		s.last = now
		s.elapsed = now.Sub(s.start)
	}
	if s.pos == s.tr.Len() {
		s.complete()
	}
	return nil
}

// jump moves to pos and recomputes everything from the trace.
func (s *Session) jump(pos int) {
	s.pos = pos
	s.hl.rebuild(s.tr.Steps, pos)
	if pos == 0 {
		s.array = s.original
		s.comparisons = 0
		s.swaps = 0
	} else {
		s.show(s.tr.Steps[pos-1])
	}
	switch s.state {
	case Playing:
	case Complete, Paused, Ready:
		if pos == 0 {
			s.state = Ready
		} else {
			s.state = Paused
		}
	}
}

// Reset discards the trace and restores the original input.
func (s *Session) Reset() {
	s.Pause()
	s.epoch++
	s.clear()
	s.logger.Debug("reset", "algorithm", s.algorithm)
}

// SetAlgorithm switches algorithm and resets.
func (s *Session) SetAlgorithm(name string) error {
	id, err := s.registry.Resolve(name)
	if err != nil {
		return err
	}
	s.algorithm = id
	s.Reset()
	return nil
}

// SetInput replaces the input and resets.
func (s *Session) SetInput(values trace.Values) {
	s.original = values.Clone()
	s.Reset()
}

// SetSpeed changes the auto-advance rate, clamped to [MinSpeed, MaxSpeed].
func (s *Session) SetSpeed(stepsPerSec float64) {
	s.speed = clampSpeed(stepsPerSec)
}

func (s *Session) Speed() float64       { return s.speed }
func (s *Session) Algorithm() string    { return s.algorithm }
func (s *Session) State() State         { return s.state }
func (s *Session) Trace() *trace.Trace  { return s.tr }
func (s *Session) Input() trace.Values  { return s.original.Clone() }
func (s *Session) Array() trace.Values  { return s.array.Clone() }
func (s *Session) Highlight() Highlight { return s.hl.snapshot() }
func (s *Session) Done() bool           { return s.state == Complete }

// Index returns the position: the number of steps applied.
func (s *Session) Index() int { return s.pos }

// Len returns the trace length, or 0 before the trace is built.
func (s *Session) Len() int { return s.tr.Len() }

// Current returns the step on screen, if any.
func (s *Session) Current() (trace.Step, bool) {
	if s.pos == 0 {
		return trace.Step{}, false
	}
	return s.tr.At(s.pos - 1)
}

// Stats returns the counters at the current position. Steps is the number
// of steps applied.
func (s *Session) Stats() trace.Stats {
	elapsed := s.elapsed
	if s.state == Playing {
		elapsed = s.now().Sub(s.start)
	}
	return trace.Stats{
		Comparisons: s.comparisons,
		Swaps:       s.swaps,
		Steps:       s.pos,
		Elapsed:     elapsed,
	}
}
