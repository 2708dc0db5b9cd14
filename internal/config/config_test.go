package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bubbleSort" {
		t.Errorf("expected algorithm bubbleSort, got %s", cfg.Algorithm)
	}
	if cfg.Playback.Speed != 5 {
		t.Errorf("expected speed 5, got %v", cfg.Playback.Speed)
	}
	if cfg.Race.TickRate != 50*time.Millisecond {
		t.Errorf("expected 50ms race tick, got %v", cfg.Race.TickRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortlab.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = "heapSort"
	cfg.Input.Values = []float64{3, 1, 2}
	cfg.Race.TickRate = 20 * time.Millisecond
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Algorithm != "heapSort" {
		t.Errorf("expected heapSort, got %s", loaded.Algorithm)
	}
	if len(loaded.Input.Values) != 3 {
		t.Errorf("expected 3 values, got %v", loaded.Input.Values)
	}
	if loaded.Race.TickRate != 20*time.Millisecond {
		t.Errorf("expected 20ms, got %v", loaded.Race.TickRate)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "algorithm: shellSort\nrace:\n  tick_rate: 10ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Algorithm != "shellSort" {
		t.Errorf("expected shellSort, got %s", cfg.Algorithm)
	}
	if cfg.Race.TickRate != 10*time.Millisecond {
		t.Errorf("expected 10ms, got %v", cfg.Race.TickRate)
	}
	if cfg.Playback.Speed != DefaultSpeed {
		t.Errorf("expected default speed, got %v", cfg.Playback.Speed)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected file backend, got %s", cfg.Storage.Backend)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("algorithm: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown algorithm", func(c *Config) { c.Algorithm = "bogoSort" }},
		{"unknown race algorithm", func(c *Config) { c.Race.Algorithms = []string{"bubble", "nope"} }},
		{"speed too low", func(c *Config) { c.Playback.Speed = 0 }},
		{"speed too high", func(c *Config) { c.Playback.Speed = 5000 }},
		{"tick rate", func(c *Config) { c.Race.TickRate = 0 }},
		{"negative size", func(c *Config) { c.Input.Size = -1 }},
		{"empty range", func(c *Config) { c.Input.Min, c.Input.Max = 5, 5 }},
		{"backend", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Input.Values = []float64{1}
	cfg.Input.Min, cfg.Input.Max = 5, 5
	if err := cfg.Validate(); err != nil {
		t.Errorf("explicit values should skip range checks: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	in := InputConfig{Size: 100, Seed: 4, Min: 10, Max: 310}
	a := in.Generate()
	b := in.Generate()
	if len(a) != 100 {
		t.Fatalf("expected 100 values, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("generation is not deterministic at %d", i)
		}
		if a[i] < 10 || a[i] >= 310 || a[i] != float64(int(a[i])) {
			t.Errorf("value %v out of range", a[i])
		}
	}

	explicit := InputConfig{Values: []float64{3, 1}, Size: 50}
	got := explicit.Generate()
	if len(got) != 2 || got[0] != 3 {
		t.Errorf("expected explicit values, got %v", got)
	}
	got[0] = 9
	if explicit.Values[0] != 3 {
		t.Error("Generate must copy explicit values")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("play", "tiny")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Playback.Speed != 2 {
		t.Errorf("expected speed 2, got %v", cfg.Playback.Speed)
	}
	if cfg.Storage.Backend != DefaultBackend {
		t.Errorf("preset should keep default backend, got %q", cfg.Storage.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	race := GetPreset("race", "nlogn")
	if race == nil || len(race.Race.Algorithms) != 4 {
		t.Fatalf("expected four-lane race preset, got %+v", race)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("play", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "tiny") != nil {
		t.Error("expected nil for nonexistent mode")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("race")
	if len(presets) == 0 {
		t.Error("expected presets for race")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent mode")
	}
	if got := Modes(); len(got) != 2 || got[0] != "play" {
		t.Errorf("unexpected modes %v", got)
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, mode := range Modes() {
		for _, name := range ListPresets(mode) {
			if err := GetPreset(mode, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", mode, name, err)
			}
		}
	}
}
