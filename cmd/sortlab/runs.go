package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortlab/internal/export"
	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/storage"
	"github.com/san-kum/sortlab/internal/trace"
)

func listRuns(cmd *cobra.Command, args []string) error {
	repo, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer repo.Close()

	runs, err := repo.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printf(cmd, "no runs found\n")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tSTEPS\tCMP\tSWP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Steps,
			run.Comparisons,
			run.Swaps,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	repo, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer repo.Close()

	meta, err := repo.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, *trace.Trace, error) {
	repo, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	defer repo.Close()

	meta, err := repo.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := repo.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, tr, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	printf(cmd, "run: %s\n", meta.ID)
	printf(cmd, "algorithm: %s\n", meta.Algorithm)
	printf(cmd, "steps: %d\n\n", tr.Len())

	if tr.Len() < 2 {
		printf(cmd, "not enough steps to plot\n")
		return nil
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"comparisons", tr.Series(func(s trace.Step) float64 { return float64(s.Comparisons) })},
		{"swaps", tr.Series(func(s trace.Step) float64 { return float64(s.Swaps) })},
		{"sortedness", sortednessSeries(tr)},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		printf(cmd, "%s\n\n", graph)
	}
	return nil
}

// output returns the --out file, or stdout when unset.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outPath == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := storage.ExportJSON(outPath, tr, meta.Seed); err != nil {
			return err
		}
		printf(cmd, "exported to %s\n", outPath)
		return nil
	}
	return storage.WriteJSON(cmd.OutOrStdout(), tr, meta.Seed)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := storage.ExportCSV(outPath, tr); err != nil {
			return err
		}
		printf(cmd, "exported to %s\n", outPath)
		return nil
	}
	return storage.WriteStepsCSV(cmd.OutOrStdout(), tr)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	var svg string
	switch chart {
	case "":
		st, err := export.ParseStyle(style)
		if err != nil {
			return err
		}
		s, err := playback.New(nil, tr.Algorithm, tr.Input)
		if err != nil {
			return err
		}
		target := step
		if target < 0 {
			target = tr.Len() - 1
		}
		if err := s.Seek(target); err != nil {
			return err
		}
		svg = export.FrameToSVG(s.Frame(), svgWidth, svgHeight, st)
	case "comparisons":
		svg = export.SeriesToSVG(tr.Series(func(s trace.Step) float64 { return float64(s.Comparisons) }), svgWidth, svgHeight, "#F59E0B")
	case "swaps":
		svg = export.SeriesToSVG(tr.Series(func(s trace.Step) float64 { return float64(s.Swaps) }), svgWidth, svgHeight, "#EF4444")
	case "sortedness":
		svg = export.SeriesToSVG(sortednessSeries(tr), svgWidth, svgHeight, "#10B981")
	default:
		return fmt.Errorf("unknown chart %q (comparisons, swaps, sortedness)", chart)
	}
	if svg == "" {
		return fmt.Errorf("run %s has too few steps to chart", args[0])
	}

	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg+"\n"); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
