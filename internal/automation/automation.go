// Package automation drives playback sessions from YAML scripts and runs
// batch comparisons across algorithms.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/config"
	"github.com/san-kum/sortlab/internal/logging"
	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/trace"
)

var ErrUnknownCommand = errors.New("automation: unknown command")

// Scenario is a scripted sequence of playback commands against one session.
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Algorithm   string             `yaml:"algorithm"`
	Input       config.InputConfig `yaml:"input"`
	Speed       float64            `yaml:"speed"`
	Commands    []Command          `yaml:"commands"`
}

// Command is one scripted action. Op is one of play, pause, tick, step,
// back, seek, reset, speed, algorithm, input, assert. Count repeats tick,
// step and back (default 1); tick advances with the live play token.
type Command struct {
	Op        string       `yaml:"op"`
	Count     int          `yaml:"count,omitempty"`
	Index     int          `yaml:"index,omitempty"`
	Speed     float64      `yaml:"speed,omitempty"`
	Algorithm string       `yaml:"algorithm,omitempty"`
	Values    []float64    `yaml:"values,omitempty"`
	Expect    *Expectation `yaml:"expect,omitempty"`
}

// Expectation lists the checks an assert command makes. Unset fields are
// not checked.
type Expectation struct {
	State       string    `yaml:"state,omitempty"`
	Index       *int      `yaml:"index,omitempty"`
	Comparisons *int      `yaml:"comparisons,omitempty"`
	Swaps       *int      `yaml:"swaps,omitempty"`
	Array       []float64 `yaml:"array,omitempty"`
	Sorted      *bool     `yaml:"sorted,omitempty"`
	Kind        string    `yaml:"kind,omitempty"`
}

// Entry records the session after one command.
type Entry struct {
	Command     int          `json:"command"`
	Op          string       `json:"op"`
	State       string       `json:"state"`
	Index       int          `json:"index"`
	Total       int          `json:"total"`
	Comparisons int          `json:"comparisons"`
	Swaps       int          `json:"swaps"`
	Array       trace.Values `json:"array"`
	Failures    []string     `json:"failures,omitempty"`
}

type Report struct {
	Scenario  string  `json:"scenario"`
	Algorithm string  `json:"algorithm"`
	Entries   []Entry `json:"entries"`
	Failures  int     `json:"failures"`
}

// Passed reports whether every assertion held.
func (r *Report) Passed() bool { return r.Failures == 0 }

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// RunScenario executes every command in order. Failed assertions are
// collected in the report; command errors (unknown op, bad algorithm, invalid
// input) abort the run and are returned with the partial report.
func RunScenario(ctx context.Context, sc *Scenario, registry *algo.Registry, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	name := sc.Algorithm
	if name == "" {
		name = config.DefaultAlgorithm
	}
	input := sc.Input
	if len(input.Values) == 0 && input.Max <= input.Min {
		input.Min, input.Max = config.DefaultMin, config.DefaultMax
	}

	opts := []playback.Option{playback.WithLogger(logger)}
	if sc.Speed > 0 {
		opts = append(opts, playback.WithSpeed(sc.Speed))
	}
	s, err := playback.New(registry, name, input.Generate(), opts...)
	if err != nil {
		return nil, err
	}

	r := &runner{session: s}
	report := &Report{Scenario: sc.Name, Algorithm: s.Algorithm()}

	for i, cmd := range sc.Commands {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		failures, err := r.exec(cmd)
		if err != nil {
			return report, fmt.Errorf("command %d (%s): %w", i+1, cmd.Op, err)
		}
		entry := r.entry(i+1, cmd.Op)
		entry.Failures = failures
		report.Entries = append(report.Entries, entry)
		report.Failures += len(failures)
		if len(failures) > 0 {
			logger.Warn("assertion failed", "scenario", sc.Name, "command", i+1, "failures", failures)
		}
	}
	report.Algorithm = s.Algorithm()

	logger.Info("scenario complete",
		"scenario", sc.Name,
		"commands", len(sc.Commands),
		"failures", report.Failures,
	)
	return report, nil
}

type runner struct {
	session *playback.Session
	tick    playback.Tick
}

func repeat(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (r *runner) exec(cmd Command) ([]string, error) {
	s := r.session
	switch cmd.Op {
	case "play":
		t, err := s.Play()
		if err != nil {
			return nil, err
		}
		r.tick = t
	case "pause":
		s.Pause()
	case "tick":
		for n := repeat(cmd.Count); n > 0; n-- {
			next, ok := s.Advance(r.tick)
			if !ok {
				break
			}
			r.tick = next
		}
	case "step":
		for n := repeat(cmd.Count); n > 0; n-- {
			if err := s.StepForward(); err != nil {
				return nil, err
			}
		}
	case "back":
		for n := repeat(cmd.Count); n > 0; n-- {
			s.StepBackward()
		}
	case "seek":
		if err := s.Seek(cmd.Index); err != nil {
			return nil, err
		}
	case "reset":
		s.Reset()
	case "speed":
		s.SetSpeed(cmd.Speed)
	case "algorithm":
		if err := s.SetAlgorithm(cmd.Algorithm); err != nil {
			return nil, err
		}
	case "input":
		s.SetInput(trace.Values(cmd.Values))
	case "assert":
		if cmd.Expect == nil {
			return nil, nil
		}
		return r.check(*cmd.Expect), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Op)
	}
	return nil, nil
}

func (r *runner) check(e Expectation) []string {
	s := r.session
	stats := s.Stats()
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if e.State != "" && s.State().String() != e.State {
		fail("state: want %s, got %s", e.State, s.State())
	}
	if e.Index != nil && s.Index() != *e.Index {
		fail("index: want %d, got %d", *e.Index, s.Index())
	}
	if e.Comparisons != nil && stats.Comparisons != *e.Comparisons {
		fail("comparisons: want %d, got %d", *e.Comparisons, stats.Comparisons)
	}
	if e.Swaps != nil && stats.Swaps != *e.Swaps {
		fail("swaps: want %d, got %d", *e.Swaps, stats.Swaps)
	}
	if e.Array != nil && !s.Array().Equal(trace.Values(e.Array)) {
		fail("array: want %v, got %v", e.Array, s.Array())
	}
	if e.Sorted != nil {
		arr := s.Array()
		if sorted := trace.Sortedness(arr) == 1; sorted != *e.Sorted {
			fail("sorted: want %v, got %v", *e.Sorted, sorted)
		}
	}
	if e.Kind != "" {
		step, _ := s.Current()
		if string(step.Kind) != e.Kind {
			fail("kind: want %s, got %q", e.Kind, step.Kind)
		}
	}
	return failures
}

func (r *runner) entry(n int, op string) Entry {
	s := r.session
	stats := s.Stats()
	return Entry{
		Command:     n,
		Op:          op,
		State:       s.State().String(),
		Index:       s.Index(),
		Total:       s.Len(),
		Comparisons: stats.Comparisons,
		Swaps:       stats.Swaps,
		Array:       s.Array(),
	}
}
