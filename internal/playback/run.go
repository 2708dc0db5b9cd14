package playback

import (
	"context"
	"time"
)

// Run plays the session in real time, calling onFrame after every applied
// step. It returns nil when playback completes or is paused from onFrame,
// and ctx.Err() (after pausing) when ctx is cancelled. Speed changes made
// from onFrame take effect on the next tick.
func (s *Session) Run(ctx context.Context, onFrame func(Frame)) error {
	tick, err := s.Play()
	if err != nil {
		return err
	}
	if !tick.Valid() {
		return nil
	}

	interval := s.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Pause()
			return ctx.Err()
		case <-ticker.C:
			next, ok := s.Advance(tick)
			if !ok {
				return nil
			}
			if onFrame != nil {
				onFrame(s.Frame())
			}
			if !next.Valid() {
				return nil
			}
			tick = next
			if d := s.interval(); d != interval {
				interval = d
				ticker.Reset(d)
			}
		}
	}
}
