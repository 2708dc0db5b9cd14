package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortlab/internal/config"
)

var (
	dataDir    string
	backend    string
	configFile string
	logLevel   string
	logFormat  string

	valuesFlag string
	size       int
	seed       int64
	speed      float64
	preset     string
	theme      string

	headless bool
	tickRate string

	step      int
	outPath   string
	style     string
	chart     string
	svgWidth  int
	svgHeight int

	sizesFlag string
	trials    int
)

// main registers commands and flags and executes the root command. With no
// subcommand it opens interactive playback.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sortlab",
		Short:         "sorting algorithm step recorder and visualizer",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          playTrace,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&backend, "backend", config.DefaultBackend, "storage backend (file|sqlite)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text|json)")

	addInputFlags(rootCmd)
	rootCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed in steps per second")
	rootCmd.Flags().StringVar(&theme, "theme", "classic", "color theme")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "record a trace and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addInputFlags(runCmd)

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "interactive step-by-step playback",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playTrace,
	}
	addInputFlags(playCmd)
	playCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed in steps per second")
	playCmd.Flags().StringVar(&theme, "theme", "classic", "color theme")

	raceCmd := &cobra.Command{
		Use:   "race [algorithm...]",
		Short: "race algorithms over the same input",
		RunE:  runRace,
	}
	addInputFlags(raceCmd)
	raceCmd.Flags().BoolVar(&headless, "headless", false, "run without the TUI and print results")
	raceCmd.Flags().StringVar(&tickRate, "tick", "", "time per lane step, e.g. 50ms")
	raceCmd.Flags().StringVar(&theme, "theme", "classic", "color theme")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot counters and sortedness over steps",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's full trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's steps to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render one step, or a counter chart, as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().IntVar(&step, "step", -1, "step index to render (default last)")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().StringVar(&style, "style", "bars", "bars or dots")
	svgCmd.Flags().StringVar(&chart, "chart", "", "render a series instead: comparisons, swaps or sortedness")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm...]",
		Short: "compare step, comparison and swap counts",
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().StringVar(&sizesFlag, "sizes", "10,50,100", "comma separated input sizes")
	benchCmd.Flags().IntVar(&trials, "trials", 3, "random inputs per size")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list algorithms with their complexity",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run a scripted playback scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, playCmd, raceCmd, listCmd, showCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, svgCmd, benchCmd, algorithmsCmd, presetsCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&valuesFlag, "values", "", "comma separated input, e.g. 5,3,8,1")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "random input size")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
