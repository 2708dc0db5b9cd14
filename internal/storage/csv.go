package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/sortlab/internal/trace"
)

var csvHeader = []string{"index", "kind", "indices", "comparisons", "swaps", "counted", "gap"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// WriteStepsCSV writes one row per step: step fields followed by the
// snapshot as columns v0..v(n-1). Indices are space separated.
func WriteStepsCSV(w io.Writer, tr *trace.Trace) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, csvHeader...)
	for i := range tr.Input {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, s := range tr.Steps {
		row := []string{
			strconv.Itoa(i),
			string(s.Kind),
			joinInts(s.Indices),
			strconv.Itoa(s.Comparisons),
			strconv.Itoa(s.Swaps),
			strconv.Itoa(int(s.Counted)),
			strconv.Itoa(s.Gap),
		}
		for _, v := range s.Snapshot {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadStepsCSV parses the output of WriteStepsCSV.
func ReadStepsCSV(r io.Reader) ([]trace.Step, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("steps csv: missing header")
	}

	steps := make([]trace.Step, 0, len(records)-1)
	for line, rec := range records[1:] {
		if len(rec) < len(csvHeader) {
			return nil, fmt.Errorf("steps csv: row %d has %d fields", line+1, len(rec))
		}
		s, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("steps csv: row %d: %w", line+1, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func parseRow(rec []string) (trace.Step, error) {
	var s trace.Step
	var err error

	s.Kind = trace.Kind(rec[1])
	if !s.Kind.Valid() {
		return s, fmt.Errorf("unknown kind %q", rec[1])
	}
	if s.Indices, err = splitInts(rec[2]); err != nil {
		return s, err
	}
	if s.Comparisons, err = strconv.Atoi(rec[3]); err != nil {
		return s, err
	}
	if s.Swaps, err = strconv.Atoi(rec[4]); err != nil {
		return s, err
	}
	counted, err := strconv.Atoi(rec[5])
	if err != nil {
		return s, err
	}
	s.Counted = trace.Counter(counted)
	if s.Gap, err = strconv.Atoi(rec[6]); err != nil {
		return s, err
	}

	s.Snapshot = make(trace.Values, 0, len(rec)-len(csvHeader))
	for _, f := range rec[len(csvHeader):] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return s, err
		}
		s.Snapshot = append(s.Snapshot, v)
	}
	return s, nil
}
