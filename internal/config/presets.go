package config

import (
	"sort"
	"time"
)

// Presets holds ready-made configurations grouped by mode ("play", "race").
var Presets = map[string]map[string]*Config{
	"play": {
		"tiny": {
			Algorithm: "bubbleSort",
			Input:     InputConfig{Values: []float64{5, 3, 8, 1}},
			Playback:  PlaybackConfig{Speed: 2},
		},
		"small": {
			Algorithm: "insertionSort",
			Input:     InputConfig{Size: 16, Seed: 7, Min: DefaultMin, Max: DefaultMax},
			Playback:  PlaybackConfig{Speed: 5},
		},
		"classroom": {
			Algorithm: "quickSort",
			Input:     InputConfig{Size: 30, Seed: 42, Min: DefaultMin, Max: DefaultMax},
			Playback:  PlaybackConfig{Speed: 10},
		},
		"duplicates": {
			Algorithm: "countingSort",
			Input:     InputConfig{Size: 40, Seed: 3, Min: 0, Max: 8},
			Playback:  PlaybackConfig{Speed: 20},
		},
		"stress": {
			Algorithm: "mergeSort",
			Input:     InputConfig{Size: 200, Seed: 99, Min: DefaultMin, Max: DefaultMax},
			Playback:  PlaybackConfig{Speed: 500},
		},
	},
	"race": {
		"quadratic": {
			Input: InputConfig{Size: 40, Seed: 5, Min: DefaultMin, Max: DefaultMax},
			Race:  RaceConfig{Algorithms: []string{"bubbleSort", "selectionSort", "insertionSort"}, TickRate: DefaultTickRate},
		},
		"nlogn": {
			Input: InputConfig{Size: 80, Seed: 5, Min: DefaultMin, Max: DefaultMax},
			Race:  RaceConfig{Algorithms: []string{"mergeSort", "quickSort", "heapSort", "shellSort"}, TickRate: DefaultTickRate},
		},
		"distribution": {
			Input: InputConfig{Size: 60, Seed: 8, Min: 0, Max: 1000},
			Race:  RaceConfig{Algorithms: []string{"radixSort", "countingSort", "quickSort"}, TickRate: DefaultTickRate},
		},
		"classic": {
			Input: InputConfig{Values: []float64{4, 2, 7, 1}},
			Race:  RaceConfig{Algorithms: []string{"bubbleSort", "insertionSort"}, TickRate: 200 * time.Millisecond},
		},
	},
}

// GetPreset returns a full configuration: defaults overlaid with the
// preset's non-zero fields. It returns nil for unknown names.
func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	p, ok := modePresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	if p.Algorithm != "" {
		cfg.Algorithm = p.Algorithm
	}
	if len(p.Input.Values) > 0 || p.Input.Size > 0 {
		cfg.Input = p.Input
	}
	if p.Playback.Speed > 0 {
		cfg.Playback.Speed = p.Playback.Speed
	}
	if len(p.Race.Algorithms) > 0 {
		cfg.Race.Algorithms = append([]string(nil), p.Race.Algorithms...)
	}
	if p.Race.TickRate > 0 {
		cfg.Race.TickRate = p.Race.TickRate
	}
	return cfg
}

// ListPresets returns preset names for a mode in sorted order.
func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Modes lists the preset groups.
func Modes() []string {
	modes := make([]string, 0, len(Presets))
	for m := range Presets {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}
