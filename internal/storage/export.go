package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sortlab/internal/trace"
)

type ExportData struct {
	Algorithm   string       `json:"algorithm"`
	Seed        int64        `json:"seed"`
	Size        int          `json:"size"`
	Stable      bool         `json:"stable"`
	Input       trace.Values `json:"input"`
	Final       trace.Values `json:"final"`
	Permutation []int        `json:"permutation"`
	Stats       trace.Stats  `json:"stats"`
	Steps       []trace.Step `json:"steps"`
}

func newExportData(tr *trace.Trace, seed int64) ExportData {
	return ExportData{
		Algorithm:   tr.Algorithm,
		Seed:        seed,
		Size:        len(tr.Input),
		Stable:      tr.Stable(),
		Input:       tr.Input,
		Final:       tr.Final(),
		Permutation: tr.Permutation,
		Stats:       tr.Stats,
		Steps:       tr.Steps,
	}
}

// WriteJSON writes the whole trace as indented JSON.
func WriteJSON(w io.Writer, tr *trace.Trace, seed int64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(tr, seed))
}

func ExportJSON(path string, tr *trace.Trace, seed int64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, tr, seed)
}

func ExportCSV(path string, tr *trace.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteStepsCSV(file, tr)
}
