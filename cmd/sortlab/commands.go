package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/automation"
	"github.com/san-kum/sortlab/internal/config"
	"github.com/san-kum/sortlab/internal/playback"
	"github.com/san-kum/sortlab/internal/race"
	"github.com/san-kum/sortlab/internal/trace"
	"github.com/san-kum/sortlab/internal/viz"
)

func algorithmArg(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Algorithm
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "play")
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	name := algorithmArg(args, cfg)
	input := cfg.Input.Generate()

	tr, err := algo.Build(name, input)
	if err != nil {
		return err
	}

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	runID, err := repo.Save(tr, cfg.Input.Seed)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "backend", cfg.Storage.Backend)

	printf(cmd, "algorithm:   %s\n", tr.Algorithm)
	printf(cmd, "size:        %d\n", len(tr.Input))
	printf(cmd, "steps:       %d\n", tr.Len())
	printf(cmd, "comparisons: %d\n", tr.Stats.Comparisons)
	printf(cmd, "swaps:       %d\n", tr.Stats.Swaps)
	printf(cmd, "stable:      %v\n", tr.Stable())
	if len(tr.Input) <= 20 {
		printf(cmd, "input:       %v\n", tr.Input)
		printf(cmd, "sorted:      %v\n", tr.Final())
	}
	printf(cmd, "run id:      %s\n", runID)
	return nil
}

func playTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "play")
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	s, err := playback.New(nil, algorithmArg(args, cfg), cfg.Input.Generate(),
		playback.WithSpeed(cfg.Playback.Speed),
		playback.WithLogger(logger))
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewPlayer(s, nil, cfg.Input, viz.GetTheme(theme)), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runRace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "race")
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	algorithms := args
	if len(algorithms) == 0 {
		algorithms = cfg.Race.Algorithms
	}
	input := cfg.Input.Generate()
	c := race.New(nil, race.WithTickRate(cfg.Race.TickRate), race.WithLogger(logger))

	if !headless {
		p := tea.NewProgram(viz.NewRaceView(c, algorithms, input, viz.GetTheme(theme)), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	if err := c.Start(algorithms, input); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printf(cmd, "racing %s over %d elements\n", strings.Join(algorithms, ", "), len(input))
	err = c.Run(ctx, func(p race.Progress) {
		if p.Finished {
			printf(cmd, "  %-14s finished after %d steps (%s)\n", p.Algorithm, p.Frame.Index, p.Elapsed)
		}
	})
	if err != nil && !errors.Is(err, race.ErrCancelled) && !errors.Is(err, context.Canceled) {
		return err
	}

	results := c.Results()
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i].Rank, results[j].Rank
		if ri == 0 || rj == 0 {
			return ri != 0
		}
		return ri < rj
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nRANK\tALGORITHM\tSTEPS\tCOMPARISONS\tSWAPS\tTIME")
	for _, r := range results {
		rank, finish := "-", "dnf"
		if r.Finished {
			rank, finish = fmt.Sprint(r.Rank), r.FinishTime.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n", rank, r.Name, r.Steps, r.Comparisons, r.Swaps, finish)
	}
	w.Flush()

	if winner, ok := c.Winner(); ok {
		printf(cmd, "\nwinner: %s\n", winner.Name)
	}
	return nil
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	sizes, err := parseSizes(sizesFlag)
	if err != nil {
		return err
	}

	sw := &automation.Sweep{
		Algorithms: args,
		Sizes:      sizes,
		Trials:     trials,
		Seed:       seed,
		Min:        config.DefaultMin,
		Max:        config.DefaultMax,
	}
	results, err := automation.RunSweep(cmd.Context(), sw, nil, nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tSTEPS\tCOMPARISONS\tSWAPS\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%v\n",
			r.Algorithm, r.Size, r.Steps, r.Comparisons, r.Swaps, r.Stable)
	}
	return w.Flush()
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBEST\tAVERAGE\tWORST\tSPACE\tSTABLE")
	for _, info := range algo.Default().Infos() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%v\n",
			info.ID, info.Name, info.Time.Best, info.Time.Average, info.Time.Worst, info.Space, info.Stable)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	modes := config.Modes()
	if len(args) > 0 {
		modes = []string{args[0]}
	}
	for _, mode := range modes {
		presets := config.ListPresets(mode)
		if len(presets) == 0 {
			printf(cmd, "no presets for mode: %s\n", mode)
			continue
		}
		printf(cmd, "%s presets:\n", mode)
		for _, p := range presets {
			printf(cmd, "  %s\n", p)
		}
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "play")
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	report, err := automation.RunScenario(cmd.Context(), sc, nil, logger)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return err
	}
	if !report.Passed() {
		return fmt.Errorf("scenario %q: %d assertion(s) failed", sc.Name, report.Failures)
	}
	return nil
}

func printReport(cmd *cobra.Command, r *automation.Report) {
	printf(cmd, "scenario: %s (%s)\n", r.Scenario, r.Algorithm)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tOP\tSTATE\tPOS\tCMP\tSWP\tRESULT")
	for _, e := range r.Entries {
		result := "ok"
		if len(e.Failures) > 0 {
			result = "FAIL: " + strings.Join(e.Failures, "; ")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%d\t%d\t%s\n",
			e.Command, e.Op, e.State, e.Index, e.Total, e.Comparisons, e.Swaps, result)
	}
	w.Flush()
}

// sortednessSeries is shared by plot and svg.
func sortednessSeries(tr *trace.Trace) []float64 {
	return tr.Series(func(s trace.Step) float64 { return trace.Sortedness(s.Snapshot) })
}
