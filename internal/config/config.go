package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/trace"
)

const (
	DefaultAlgorithm = "bubbleSort"
	DefaultSize      = 50
	DefaultMin       = 10
	DefaultMax       = 310
	DefaultSpeed     = 5.0
	DefaultTickRate  = 50 * time.Millisecond
	DefaultDataDir   = ".sortlab"
	DefaultBackend   = "file"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Algorithm string         `yaml:"algorithm"`
	Input     InputConfig    `yaml:"input"`
	Playback  PlaybackConfig `yaml:"playback"`
	Race      RaceConfig     `yaml:"race"`
	Storage   StorageConfig  `yaml:"storage"`
	Log       LogConfig      `yaml:"log"`
}

// InputConfig describes the array to sort. Explicit Values win over the
// random generator, which draws integers in [Min, Max).
type InputConfig struct {
	Values []float64 `yaml:"values,omitempty"`
	Size   int       `yaml:"size"`
	Seed   int64     `yaml:"seed"`
	Min    int       `yaml:"min"`
	Max    int       `yaml:"max"`
}

type PlaybackConfig struct {
	Speed float64 `yaml:"speed"`
}

type RaceConfig struct {
	Algorithms []string      `yaml:"algorithms"`
	TickRate   time.Duration `yaml:"tick_rate"`
}

type StorageConfig struct {
	Dir     string `yaml:"dir"`
	Backend string `yaml:"backend"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Input: InputConfig{
			Size: DefaultSize,
			Seed: 1,
			Min:  DefaultMin,
			Max:  DefaultMax,
		},
		Playback: PlaybackConfig{Speed: DefaultSpeed},
		Race: RaceConfig{
			Algorithms: []string{"bubbleSort", "insertionSort", "quickSort"},
			TickRate:   DefaultTickRate,
		},
		Storage: StorageConfig{Dir: DefaultDataDir, Backend: DefaultBackend},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and names. Every problem wraps ErrInvalid.
func (c *Config) Validate() error {
	if _, err := algo.Default().Resolve(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, name := range c.Race.Algorithms {
		if _, err := algo.Default().Resolve(name); err != nil {
			return fmt.Errorf("%w: race: %v", ErrInvalid, err)
		}
	}
	if c.Playback.Speed < 1 || c.Playback.Speed > 1000 {
		return fmt.Errorf("%w: speed %v outside [1, 1000]", ErrInvalid, c.Playback.Speed)
	}
	if c.Race.TickRate <= 0 {
		return fmt.Errorf("%w: race tick rate must be positive, got %v", ErrInvalid, c.Race.TickRate)
	}
	if len(c.Input.Values) == 0 {
		if c.Input.Size < 0 {
			return fmt.Errorf("%w: input size %d is negative", ErrInvalid, c.Input.Size)
		}
		if c.Input.Min >= c.Input.Max {
			return fmt.Errorf("%w: input range [%d, %d) is empty", ErrInvalid, c.Input.Min, c.Input.Max)
		}
	}
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalid, c.Storage.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Generate returns the configured input: a copy of Values when set,
// otherwise Size random integers in [Min, Max) drawn from Seed.
func (in InputConfig) Generate() trace.Values {
	if len(in.Values) > 0 {
		return trace.Values(in.Values).Clone()
	}
	rng := rand.New(rand.NewSource(in.Seed))
	out := make(trace.Values, in.Size)
	span := in.Max - in.Min
	for i := range out {
		out[i] = float64(in.Min + rng.Intn(span))
	}
	return out
}
