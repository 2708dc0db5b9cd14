package algo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/sortlab/internal/trace"
)

// Complexity holds the asymptotic running time of an algorithm.
type Complexity struct {
	Best    string `json:"best" yaml:"best"`
	Average string `json:"average" yaml:"average"`
	Worst   string `json:"worst" yaml:"worst"`
}

// Info describes an algorithm for listings and the TUI side panel.
type Info struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Time        Complexity `json:"time"`
	Space       string     `json:"space"`
	Stable      bool       `json:"stable"`
	Description string     `json:"description"`
}

// KeyRule restricts the values an algorithm accepts beyond finiteness.
type KeyRule int

const (
	AnyKeys KeyRule = iota
	IntegerKeys
	NonNegativeIntegerKeys
)

// Algorithm couples metadata with its trace builder.
type Algorithm struct {
	Info Info
	Keys KeyRule
	Sort func(rec *trace.Recorder) error
}

type Registry struct {
	algorithms map[string]Algorithm
	aliases    map[string]string
}

// NewRegistry returns a registry holding the nine built-in algorithms.
func NewRegistry() *Registry {
	r := &Registry{
		algorithms: make(map[string]Algorithm),
		aliases:    make(map[string]string),
	}

	r.Register(Algorithm{
		Info: Info{
			ID: "bubbleSort", Name: "Bubble Sort",
			Time:  Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)"},
			Space: "O(1)", Stable: true,
			Description: "Compares adjacent elements and swaps them if they're in wrong order",
		},
		Sort: bubbleSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "selectionSort", Name: "Selection Sort",
			Time:  Complexity{Best: "O(n²)", Average: "O(n²)", Worst: "O(n²)"},
			Space: "O(1)", Stable: false,
			Description: "Finds minimum element and places it at the beginning",
		},
		Sort: selectionSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "insertionSort", Name: "Insertion Sort",
			Time:  Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)"},
			Space: "O(1)", Stable: true,
			Description: "Builds sorted array one element at a time",
		},
		Sort: insertionSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "mergeSort", Name: "Merge Sort",
			Time:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)"},
			Space: "O(n)", Stable: true,
			Description: "Divides array into halves, sorts them, then merges back",
		},
		Sort: mergeSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "quickSort", Name: "Quick Sort",
			Time:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n²)"},
			Space: "O(log n)", Stable: false,
			Description: "Selects pivot and partitions array around it",
		},
		Sort: quickSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "heapSort", Name: "Heap Sort",
			Time:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)"},
			Space: "O(1)", Stable: false,
			Description: "Uses heap data structure to sort elements",
		},
		Sort: heapSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "radixSort", Name: "Radix Sort",
			Time:  Complexity{Best: "O(nk)", Average: "O(nk)", Worst: "O(nk)"},
			Space: "O(n + k)", Stable: true,
			Description: "Sorts by processing digits from least to most significant",
		},
		Keys: NonNegativeIntegerKeys,
		Sort: radixSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "shellSort", Name: "Shell Sort",
			Time:  Complexity{Best: "O(n log n)", Average: "O(n^1.3)", Worst: "O(n²)"},
			Space: "O(1)", Stable: false,
			Description: "Extension of insertion sort with gap sequence",
		},
		Sort: shellSort,
	})
	r.Register(Algorithm{
		Info: Info{
			ID: "countingSort", Name: "Counting Sort",
			Time:  Complexity{Best: "O(n + k)", Average: "O(n + k)", Worst: "O(n + k)"},
			Space: "O(n + k)", Stable: true,
			Description: "Counts occurrences of each element to sort",
		},
		Keys: IntegerKeys,
		Sort: countingSort,
	})

	return r
}

// Register adds or replaces an algorithm. Its ID minus a trailing "Sort",
// lowercased, becomes a short alias ("bubbleSort" -> "bubble").
func (r *Registry) Register(a Algorithm) {
	r.algorithms[a.Info.ID] = a
	if short := strings.ToLower(strings.TrimSuffix(a.Info.ID, "Sort")); short != a.Info.ID {
		r.aliases[short] = a.Info.ID
	}
}

// Lookup resolves an identifier or short alias.
func (r *Registry) Lookup(name string) (Algorithm, error) {
	if a, ok := r.algorithms[name]; ok {
		return a, nil
	}
	if id, ok := r.aliases[strings.ToLower(name)]; ok {
		return r.algorithms[id], nil
	}
	return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Resolve returns the canonical identifier for name.
func (r *Registry) Resolve(name string) (string, error) {
	a, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return a.Info.ID, nil
}

func (r *Registry) Info(name string) (Info, error) {
	a, err := r.Lookup(name)
	if err != nil {
		return Info{}, err
	}
	return a.Info, nil
}

// Names lists canonical identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos returns metadata for every algorithm, ordered by identifier.
func (r *Registry) Infos() []Info {
	names := r.Names()
	out := make([]Info, len(names))
	for i, name := range names {
		out[i] = r.algorithms[name].Info
	}
	return out
}

// Build records the named algorithm over a copy of input.
//
// Empty input yields a single sorted step over no indices. Non-finite values
// and keys a distribution sort cannot index fail with trace.ErrInvalidInput.
func (r *Registry) Build(name string, input trace.Values) (*trace.Trace, error) {
	a, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	switch a.Keys {
	case IntegerKeys:
		err = trace.ValidateKeys(input, false)
	case NonNegativeIntegerKeys:
		err = trace.ValidateKeys(input, true)
	default:
		err = trace.Validate(input)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Info.ID, err)
	}

	rec := trace.NewRecorder(a.Info.ID, input)
	if len(input) == 0 {
		rec.SortedAll()
		return rec.Finish(), nil
	}
	if err := a.Sort(rec); err != nil {
		return nil, fmt.Errorf("%s: %w", a.Info.ID, err)
	}
	return rec.Finish(), nil
}

var defaultRegistry = NewRegistry()

// Default returns the shared built-in registry. Callers must not Register on it.
func Default() *Registry { return defaultRegistry }

// Build records name over input using the built-in registry.
func Build(name string, input trace.Values) (*trace.Trace, error) {
	return defaultRegistry.Build(name, input)
}
