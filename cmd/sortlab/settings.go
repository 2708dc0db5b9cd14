package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortlab/internal/config"
	"github.com/san-kum/sortlab/internal/logging"
	"github.com/san-kum/sortlab/internal/storage"
	"github.com/san-kum/sortlab/internal/trace"
)

// parseValues reads a comma separated list of numbers.
func parseValues(s string) (trace.Values, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return trace.Values{}, nil
	}
	parts := strings.Split(s, ",")
	out := make(trace.Values, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid size %q", p)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return out, nil
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// loadConfig layers defaults, the preset for mode, the config file and
// finally any flags set on the command line.
func loadConfig(cmd *cobra.Command, mode string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(mode, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(mode))
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	}

	if changed(cmd, "data") || cfg.Storage.Dir == "" {
		cfg.Storage.Dir = dataDir
	}
	if changed(cmd, "backend") {
		cfg.Storage.Backend = backend
	}
	if changed(cmd, "log-level") {
		cfg.Log.Level = logLevel
	}
	if changed(cmd, "log-format") {
		cfg.Log.Format = logFormat
	}
	if changed(cmd, "values") {
		values, err := parseValues(valuesFlag)
		if err != nil {
			return nil, err
		}
		cfg.Input.Values = values
	}
	if changed(cmd, "size") {
		cfg.Input.Values = nil
		cfg.Input.Size = size
	}
	if changed(cmd, "seed") {
		cfg.Input.Seed = seed
	}
	if changed(cmd, "speed") {
		cfg.Playback.Speed = speed
	}
	if changed(cmd, "tick") {
		d, err := time.ParseDuration(tickRate)
		if err != nil {
			return nil, fmt.Errorf("invalid tick: %w", err)
		}
		cfg.Race.TickRate = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
}

func openRepository(cfg *config.Config) (storage.Repository, error) {
	return storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
}

// openStore resolves config for commands that only read saved runs.
func openStore(cmd *cobra.Command) (storage.Repository, error) {
	cfg, err := loadConfig(cmd, "play")
	if err != nil {
		return nil, err
	}
	return openRepository(cfg)
}
