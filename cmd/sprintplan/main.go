package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/jharding/sprintplan/internal/backlog"
	"github.com/jharding/sprintplan/internal/config"
	"github.com/jharding/sprintplan/internal/graph"
	"github.com/jharding/sprintplan/internal/planner"
	"github.com/jharding/sprintplan/internal/report"
	"github.com/jharding/sprintplan/internal/scheduler"
	"github.com/jharding/sprintplan/internal/tui"
)

var version = "dev"

// loadInputs reads and cross-validates the backlog and roster files.
// Warnings are logged; they flag tickets the simulation will later reject.
func loadInputs(logger *slog.Logger, backlogPath, rosterPath string) ([]*backlog.Ticket, []*backlog.Team, []backlog.Warning, error) {
	tickets, err := backlog.ReadBacklog(backlogPath)
	if err != nil {
		return nil, nil, nil, err
	}
	teams, err := backlog.ReadRoster(rosterPath)
	if err != nil {
		return nil, nil, nil, err
	}
	warnings, err := backlog.Validate(tickets, teams)
	if err != nil {
		return nil, nil, nil, err
	}
	backlog.LogWarnings(logger, warnings)
	return tickets, teams, warnings, nil
}

// orderTickets runs aggregation and priority ordering per the config.
func orderTickets(cfg *config.Config, tickets []*backlog.Ticket) ([]*backlog.Ticket, error) {
	var opts []graph.Option
	if !cfg.Planner.Memoize {
		opts = append(opts, graph.WithoutMemoization())
	}
	agg := graph.NewAggregator(tickets, opts...)
	return planner.Order(tickets, agg)
}

// writeOutputs writes plan-order.csv and schedule.csv into dir.
func writeOutputs(dir string, plan []*backlog.Ticket, matrix report.Matrix, marker string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	orderFile, err := os.Create(filepath.Join(dir, "plan-order.csv"))
	if err != nil {
		return err
	}
	defer func() { _ = orderFile.Close() }()
	if err := report.WritePlanOrderCSV(orderFile, plan); err != nil {
		return fmt.Errorf("write plan order: %w", err)
	}

	scheduleFile, err := os.Create(filepath.Join(dir, "schedule.csv"))
	if err != nil {
		return err
	}
	defer func() { _ = scheduleFile.Close() }()
	if err := report.WriteMatrixCSV(scheduleFile, matrix, marker); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	viper.SetEnvPrefix("SPRINTPLAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "sprintplan",
		Short: "Dependency-aware sprint planning for a ticket backlog",
		Long: `sprintplan orders a backlog of interdependent tickets by aggregated
value density and simulates assigning them, sprint by sprint, onto a roster
of capacity-constrained teams.

The result is a dependency-respecting priority order plus a per-team sprint
occupancy schedule.`,
		SilenceUsage: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .sprintplan/config.yaml)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Write logs to this file instead of stderr")

	// Bind all flags to viper
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// setup loads config and reconfigures the logger from global flags.
	// The returned cleanup closes the log file, if any.
	setup := func(cmd *cobra.Command) (*config.Config, *slog.Logger, func(), error) {
		if viper.GetBool(FlagVerbose) {
			logLevel.Set(slog.LevelDebug)
		}

		cfg, err := config.LoadConfig(viper.GetViper())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load config: %w", err)
		}

		cleanup := func() {}
		runLogger := logger
		if path := viper.GetString(FlagLogFile); path != "" {
			result := SetupFileLogger(path, logLevel, cfg.LogRotation)
			runLogger = result.Logger
			cleanup = func() { _ = result.Close() }
		}
		return cfg, runLogger, cleanup, nil
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sprintplan %s\n", version)
		},
	}

	planCmd := &cobra.Command{
		Use:   "plan <backlog.csv> <teams.yaml>",
		Short: "Compute the priority order and simulate the sprint schedule",
		Long: `Load the backlog and team roster, order tickets by aggregated
business-value density with dependencies first, then greedily assign them to
teams sprint by sprint.

With --output-dir the plan order and schedule are written as CSV files; the
schedule is also printed to stdout as a table (or CSV with --format csv), or
browsed interactively with --tui.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, runLogger, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed(FlagFormat) {
				cfg.Report.Format = viper.GetString(FlagFormat)
			}
			if cmd.Flags().Changed(FlagMarker) {
				cfg.Report.Marker = viper.GetString(FlagMarker)
			}
			if cmd.Flags().Changed(FlagMaxIterations) {
				cfg.Scheduler.MaxIterations = viper.GetInt(FlagMaxIterations)
			}
			if cmd.Flags().Changed(FlagNoMemoize) {
				cfg.Planner.Memoize = !viper.GetBool(FlagNoMemoize)
			}
			if cfg.Report.Format != "table" && cfg.Report.Format != "csv" {
				return fmt.Errorf("unknown format %q (want table or csv)", cfg.Report.Format)
			}

			tuiEnabled := viper.GetBool(FlagTUI)
			if tuiEnabled && !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("--tui requires a terminal")
			}
			// Keep stderr clean while the TUI owns the screen.
			if tuiEnabled && viper.GetString(FlagLogFile) == "" {
				runLogger = slog.New(slog.DiscardHandler)
			}

			tickets, teams, _, err := loadInputs(runLogger, args[0], args[1])
			if err != nil {
				return err
			}

			plan, err := orderTickets(cfg, tickets)
			if err != nil {
				return err
			}

			sched := scheduler.New(teams,
				scheduler.WithLogger(runLogger),
				scheduler.WithMaxIterations(cfg.Scheduler.MaxIterations))
			schedule, err := sched.Run(cmd.Context(), plan)
			if err != nil {
				return err
			}
			matrix := report.BuildMatrix(schedule, tickets)

			if dir := viper.GetString(FlagOutputDir); dir != "" {
				if err := writeOutputs(dir, plan, matrix, cfg.Report.Marker); err != nil {
					return err
				}
				runLogger.Info("schedule written", "dir", dir, "sprints", schedule.Sprints)
			}

			if tuiEnabled {
				return tui.Run(matrix, cfg.Report.Marker)
			}
			if cfg.Report.Format == "csv" {
				return report.WriteMatrixCSV(os.Stdout, matrix, cfg.Report.Marker)
			}
			fmt.Print(report.Render(matrix, cfg.Report.Marker))
			return nil
		},
	}
	planCmd.Flags().Bool(FlagTUI, false, "Browse the schedule in an interactive terminal UI")
	planCmd.Flags().String(FlagOutputDir, "", "Directory for plan-order.csv and schedule.csv")
	planCmd.Flags().String(FlagFormat, "table", "Stdout format: table or csv")
	planCmd.Flags().String(FlagMarker, "", "Occupancy marker for schedule cells")
	planCmd.Flags().Int(FlagMaxIterations, 0, "Simulation iteration safety budget")
	planCmd.Flags().Bool(FlagNoMemoize, false, "Disable aggregate memoization")
	planCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	orderCmd := &cobra.Command{
		Use:   "order <backlog.csv>",
		Short: "Print the dependency-respecting priority order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			tickets, err := backlog.ReadBacklog(args[0])
			if err != nil {
				return err
			}
			plan, err := orderTickets(cfg, tickets)
			if err != nil {
				return err
			}
			return report.WritePlanOrderCSV(os.Stdout, plan)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <backlog.csv> <teams.yaml>",
		Short: "Check backlog and roster references without scheduling",
		Long: `Load both inputs and report reference problems: blockedBy ids that
resolve to no ticket, potentialTeam ids absent from the roster, and tickets
no team can ever work. Exits non-zero when any problem is found.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, runLogger, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			_, _, warnings, err := loadInputs(runLogger, args[0], args[1])
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Println(w)
			}
			if len(warnings) > 0 {
				return fmt.Errorf("%d reference problem(s) found", len(warnings))
			}
			fmt.Println("ok")
			return nil
		},
	}

	rootCmd.AddCommand(versionCmd, planCmd, orderCmd, validateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
