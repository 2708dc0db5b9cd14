package playback

import (
	"log/slog"
	"math"
	"time"
)

const (
	// DefaultSpeed is the auto-advance rate in steps per second.
	DefaultSpeed = 5.0
	MinSpeed     = 1.0
	MaxSpeed     = 1000.0
)

type Option func(*Session)

// WithSpeed sets the auto-advance rate, clamped to [MinSpeed, MaxSpeed].
func WithSpeed(stepsPerSec float64) Option {
	return func(s *Session) { s.speed = clampSpeed(stepsPerSec) }
}

// WithClock replaces time.Now, for tests and synthetic time sources.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func clampSpeed(v float64) float64 {
	if math.IsNaN(v) || v < MinSpeed {
		return MinSpeed
	}
	if v > MaxSpeed {
		return MaxSpeed
	}
	return v
}
