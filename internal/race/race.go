// Package race runs several sorting algorithms side by side over the same
// input. Each lane owns a playback session with a private copy of the
// input; lanes advance one step per tick, independently of each other, and
// the coordinator records the order in which they finish.
package race

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/logging"
	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/trace"
)

// DefaultTickRate is the fixed lane speed, independent of playback speed.
const DefaultTickRate = 50 * time.Millisecond

// Progress is one lane's state after a tick.
type Progress struct {
	Lane      int            `json:"lane"`
	Algorithm string         `json:"algorithm"`
	Frame     playback.Frame `json:"frame"`
	Finished  bool           `json:"finished"`
	Elapsed   time.Duration  `json:"elapsed"`
}

// Fraction is the share of the lane's trace already applied.
func (p Progress) Fraction() float64 {
	if p.Frame.Total == 0 {
		return 0
	}
	return float64(p.Frame.Index) / float64(p.Frame.Total)
}

// Result summarizes a lane. Rank is the 1-based finishing position, or 0
// for a lane that never finished.
type Result struct {
	Lane        int           `json:"lane"`
	Algorithm   string        `json:"algorithm"`
	Name        string        `json:"name"`
	Steps       int           `json:"steps"`
	Comparisons int           `json:"comparisons"`
	Swaps       int           `json:"swaps"`
	Finished    bool          `json:"finished"`
	FinishTime  time.Duration `json:"finish_time"`
	Rank        int           `json:"rank"`
	Final       trace.Values  `json:"final"`
}

type lane struct {
	algorithm  string
	name       string
	session    *playback.Session
	finished   bool
	finishedAt time.Duration
}

type Option func(*Coordinator)

func WithTickRate(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.tickRate = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// Coordinator owns the lanes of one race. Apart from Cancel, which may be
// called from any goroutine, it must be driven by one goroutine.
type Coordinator struct {
	registry *algo.Registry
	tickRate time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu        sync.Mutex
	lanes     []*lane
	start     time.Time
	order     []int
	cancelled bool
	stop      context.CancelFunc
}

func New(registry *algo.Registry, opts ...Option) *Coordinator {
	if registry == nil {
		registry = algo.Default()
	}
	c := &Coordinator{
		registry: registry,
		tickRate: DefaultTickRate,
		now:      time.Now,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) TickRate() time.Duration { return c.tickRate }

// Start builds one lane per algorithm over a private copy of input and
// stamps the shared start time. Any previous race is discarded.
func (c *Coordinator) Start(algorithms []string, input trace.Values) error {
	if len(algorithms) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewLanes, len(algorithms))
	}

	seen := make(map[string]bool, len(algorithms))
	lanes := make([]*lane, 0, len(algorithms))
	for _, name := range algorithms {
		a, err := c.registry.Lookup(name)
		if err != nil {
			return err
		}
		if seen[a.Info.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateLane, a.Info.ID)
		}
		seen[a.Info.ID] = true

		s, err := playback.New(c.registry, a.Info.ID, input,
			playback.WithClock(c.now), playback.WithLogger(c.logger))
		if err != nil {
			return err
		}
		if err := s.EnsureTrace(); err != nil {
			return err
		}
		lanes = append(lanes, &lane{algorithm: a.Info.ID, name: a.Info.Name, session: s})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lanes = lanes
	c.order = nil
	c.cancelled = false
	c.start = c.now()
	c.logger.Info("race started", "lanes", len(lanes), "size", len(input), "tick", c.tickRate)
	return nil
}

func (c *Coordinator) progress(i int, l *lane) Progress {
	return Progress{
		Lane:      i,
		Algorithm: l.algorithm,
		Frame:     l.session.Frame(),
		Finished:  l.session.Done(),
		Elapsed:   c.now().Sub(c.start),
	}
}

// finish records a lane crossing the line. Callers hold mu.
func (c *Coordinator) finish(i int, at time.Duration) {
	l := c.lanes[i]
	if l.finished {
		return
	}
	l.finished = true
	l.finishedAt = at
	c.order = append(c.order, i)
	c.logger.Info("lane finished",
		"lane", i, "algorithm", l.algorithm, "rank", len(c.order), "elapsed", at)
	if len(c.order) == len(c.lanes) {
		c.logger.Info("race complete", "winner", c.lanes[c.order[0]].algorithm)
	}
}

func (c *Coordinator) step(i int) Progress {
	l := c.lanes[i]
	if !l.finished && !c.cancelled {
		_ = l.session.StepForward()
	}
	p := c.progress(i, l)
	if p.Finished {
		c.finish(i, p.Elapsed)
	}
	return p
}

// Tick advances every unfinished lane by exactly one step and returns the
// progress of all lanes. After Cancel, or once every lane has finished,
// it changes nothing.
func (c *Coordinator) Tick() []Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lanes == nil {
		return nil
	}
	out := make([]Progress, len(c.lanes))
	for i := range c.lanes {
		out[i] = c.step(i)
	}
	return out
}

// TickLane advances a single lane, for callers that give each lane its own
// timer.
func (c *Coordinator) TickLane(i int) (Progress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lanes == nil {
		return Progress{}, ErrNotStarted
	}
	if i < 0 || i >= len(c.lanes) {
		return Progress{}, fmt.Errorf("%w: %d of %d", ErrLaneIndex, i, len(c.lanes))
	}
	return c.step(i), nil
}

// Run advances every lane on its own goroutine and ticker until all lanes
// finish (nil), Cancel is called (ErrCancelled) or ctx ends (ctx.Err()).
// Lane goroutines report over a channel; the coordinator only records
// finishes and forwards progress to onProgress, in arrival order.
func (c *Coordinator) Run(ctx context.Context, onProgress func(Progress)) error {
	c.mu.Lock()
	if c.lanes == nil {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.cancelled {
		c.mu.Unlock()
		return ErrCancelled
	}
	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	c.stop = stop
	lanes := c.lanes
	remaining := 0
	for _, l := range lanes {
		if !l.finished {
			remaining++
		}
	}
	c.mu.Unlock()

	updates := make(chan Progress, len(lanes))
	var wg sync.WaitGroup
	for i, l := range lanes {
		if l.finished {
			continue
		}
		wg.Add(1)
		go func(i int, l *lane) {
			defer wg.Done()
			c.runLane(runCtx, i, l, updates)
		}(i, l)
	}

	defer func() {
		stop()
		wg.Wait()
		c.mu.Lock()
		c.stop = nil
		c.mu.Unlock()
	}()

	for remaining > 0 {
		select {
		case <-runCtx.Done():
			c.mu.Lock()
			cancelled := c.cancelled
			c.cancelled = true
			c.mu.Unlock()
			if cancelled {
				return ErrCancelled
			}
			return ctx.Err()
		case p := <-updates:
			if p.Finished {
				c.mu.Lock()
				c.finish(p.Lane, p.Elapsed)
				c.mu.Unlock()
				remaining--
			}
			if onProgress != nil {
				onProgress(p)
			}
		}
	}
	return nil
}

// runLane is the only goroutine touching l.session while Run is active.
func (c *Coordinator) runLane(ctx context.Context, i int, l *lane, out chan<- Progress) {
	ticker := time.NewTicker(c.tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = l.session.StepForward()
			p := c.progress(i, l)
			select {
			case out <- p:
			case <-ctx.Done():
				return
			}
			if p.Finished {
				return
			}
		}
	}
}

// Cancel stops the race immediately. Unfinished lanes stay unfinished and
// later ticks do nothing.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lanes == nil || c.cancelled {
		return
	}
	c.cancelled = true
	if c.stop != nil {
		c.stop()
	}
	c.logger.Info("race cancelled", "finished", len(c.order), "lanes", len(c.lanes))
}

func (c *Coordinator) Cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// Done reports whether every lane has finished.
func (c *Coordinator) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lanes != nil && len(c.order) == len(c.lanes)
}

// Winner returns the first lane to finish.
func (c *Coordinator) Winner() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.order) == 0 {
		return Result{}, false
	}
	return c.result(c.order[0]), true
}

// Results returns one entry per lane, in lane order.
func (c *Coordinator) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.lanes))
	for i := range c.lanes {
		out[i] = c.result(i)
	}
	return out
}

func (c *Coordinator) result(i int) Result {
	l := c.lanes[i]
	st := l.session.Stats()
	r := Result{
		Lane:        i,
		Algorithm:   l.algorithm,
		Name:        l.name,
		Steps:       st.Steps,
		Comparisons: st.Comparisons,
		Swaps:       st.Swaps,
		Finished:    l.finished,
		FinishTime:  l.finishedAt,
		Final:       l.session.Array(),
	}
	for rank, idx := range c.order {
		if idx == i {
			r.Rank = rank + 1
		}
	}
	return r
}

// Lanes returns the current progress of every lane without advancing.
func (c *Coordinator) Lanes() []Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Progress, len(c.lanes))
	for i, l := range c.lanes {
		out[i] = c.progress(i, l)
	}
	return out
}
