package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"liftlog/internal/bootstrap"
	plugindto "liftlog/internal/modules/plugin/dto"
	"liftlog/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "liftlog",
		Short:         "Workout split and progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "vault path")

	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newSplitCmd(&vaultPath))
	root.AddCommand(newWorkoutCmd(&vaultPath))
	root.AddCommand(newChartCmd(&vaultPath))
	root.AddCommand(newConfigCmd(&vaultPath))
	root.AddCommand(newReindexCmd(&vaultPath))
	root.AddCommand(newPluginCmd(&vaultPath))
	return root
}

func loadApp(vaultPath string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	return app, cfg, err
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run liftlog terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newSplitCmd(vaultPath *string) *cobra.Command {
	split := &cobra.Command{Use: "split", Short: "Manage workout splits"}

	var name, color string
	var days, exercises []string
	create := &cobra.Command{
		Use:   "create --name <name>",
		Short: "Create a workout split",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SplitCLI.Create(context.Background(), name, color, days, exercises)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) note=%s\n", out.Name, out.ID, out.NotePath)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "split name")
	create.Flags().StringVar(&color, "color", "#b4befe", "accent color (#rrggbb)")
	create.Flags().StringSliceVar(&days, "days", nil, "training days, e.g. monday,thursday")
	create.Flags().StringSliceVar(&exercises, "exercises", nil, "initial exercises")
	split.AddCommand(create)

	split.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List splits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			splits, err := app.SplitCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(splits) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no splits")
				return nil
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Days", "Exercises"})
			table.SetBorder(false)
			for _, s := range splits {
				table.Append([]string{s.ID, s.Name, strings.Join(s.Days, " "), fmt.Sprintf("%d", s.Exercises)})
			}
			table.Render()
			return nil
		},
	})

	var showID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show split details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			s, err := app.SplitCLI.Get(context.Background(), showID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\ncolor: %s\nstatus: %s\ndays: %s\nnote: %s\n",
				s.ID, s.Name, s.Color, s.Status, strings.Join(s.Days, ", "), s.NotePath)
			for _, ex := range s.Exercises {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %dx%d\n", ex.Name, ex.TargetSets, ex.TargetReps)
			}
			return nil
		},
	}
	show.Flags().StringVar(&showID, "id", "", "split id")
	split.AddCommand(show)

	var exSplitID, exName string
	var exSets, exReps int
	addExercise := &cobra.Command{
		Use:   "add-exercise --split-id <id> --name <name>",
		Short: "Add an exercise to a split",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exSplitID) == "" || strings.TrimSpace(exName) == "" {
				return fmt.Errorf("--split-id and --name are required")
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			s, err := app.SplitCLI.AddExercise(context.Background(), exSplitID, exName, exSets, exReps)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d exercises\n", s.Name, len(s.Exercises))
			return nil
		},
	}
	addExercise.Flags().StringVar(&exSplitID, "split-id", "", "split id")
	addExercise.Flags().StringVar(&exName, "name", "", "exercise name")
	addExercise.Flags().IntVar(&exSets, "sets", 0, "target sets")
	addExercise.Flags().IntVar(&exReps, "reps", 0, "target reps")
	split.AddCommand(addExercise)

	var daysSplitID string
	var newDays []string
	setDays := &cobra.Command{
		Use:   "set-days --split-id <id> --days <days>",
		Short: "Replace a split's training days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(daysSplitID) == "" || len(newDays) == 0 {
				return fmt.Errorf("--split-id and --days are required")
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			s, err := app.SplitCLI.SetDays(context.Background(), daysSplitID, newDays)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s scheduled on %s\n", s.Name, strings.Join(s.Days, ", "))
			return nil
		},
	}
	setDays.Flags().StringVar(&daysSplitID, "split-id", "", "split id")
	setDays.Flags().StringSliceVar(&newDays, "days", nil, "training days")
	split.AddCommand(setDays)

	return split
}

func newWorkoutCmd(vaultPath *string) *cobra.Command {
	workout := &cobra.Command{Use: "workout", Short: "Workout session lifecycle"}

	var splitID string
	start := &cobra.Command{
		Use:   "start --split-id <id>",
		Short: "Start a workout for a split",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(splitID) == "" {
				return fmt.Errorf("--split-id is required")
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Start(context.Background(), splitID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "workout started: %s split=%s at=%s\n", out.WorkoutID, out.SplitName, out.StartedAt)
			return nil
		},
	}
	start.Flags().StringVar(&splitID, "split-id", "", "split id")
	workout.AddCommand(start)

	var exercise, unit string
	var weight float64
	var reps int
	logCmd := &cobra.Command{
		Use:   "log --exercise <name> --weight <value> --reps <n>",
		Short: "Log a set against the active workout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exercise) == "" {
				return fmt.Errorf("--exercise is required")
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.LogSet(context.Background(), exercise, weight, unit, reps)
			if err != nil {
				return err
			}
			last := out.Sets[len(out.Sets)-1]
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "set %d logged: %s %.1f kg × %d\n", len(out.Sets), last.Exercise, last.WeightKg, last.Reps)
			return nil
		},
	}
	logCmd.Flags().StringVar(&exercise, "exercise", "", "exercise name")
	logCmd.Flags().Float64Var(&weight, "weight", 0, "weight lifted")
	logCmd.Flags().StringVar(&unit, "unit", "", "weight unit: kg|lb (defaults to kg)")
	logCmd.Flags().IntVar(&reps, "reps", 0, "repetitions")
	workout.AddCommand(logCmd)

	workout.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "Finish the active workout and write its note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.End(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "workout ended: %s split=%s duration=%dmin sets=%d volume=%.1fkg note=%s\n",
				out.ID, out.SplitName, out.DurationMin, out.SetCount, out.TotalVolumeKg, out.NotePath)
			return nil
		},
	})

	workout.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the active workout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active: %s split=%s started=%s sets=%d\n", out.WorkoutID, out.SplitName, out.StartedAt, len(out.Sets))
			for i, set := range out.Sets {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %2d. %s %.1f kg × %d\n", i+1, set.Exercise, set.WeightKg, set.Reps)
			}
			return nil
		},
	})

	var historySplitID string
	history := &cobra.Command{
		Use:   "history",
		Short: "List finished workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			workouts, err := app.SessionCLI.History(context.Background(), historySplitID)
			if err != nil {
				return err
			}
			if len(workouts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no workouts")
				return nil
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"When", "Split", "Duration", "Sets", "Volume (kg)"})
			table.SetBorder(false)
			for _, w := range workouts {
				when := w.StartedAt
				if t, err := time.Parse(time.RFC3339, w.StartedAt); err == nil {
					when = humanize.Time(t)
				}
				table.Append([]string{
					when,
					w.SplitName,
					fmt.Sprintf("%d min", w.DurationMin),
					fmt.Sprintf("%d", w.SetCount),
					fmt.Sprintf("%.1f", w.TotalVolumeKg),
				})
			}
			table.Render()
			return nil
		},
	}
	history.Flags().StringVar(&historySplitID, "split-id", "", "filter by split")
	workout.AddCommand(history)

	return workout
}

func newChartCmd(vaultPath *string) *cobra.Command {
	var splitID, unit string
	var points int
	chart := &cobra.Command{
		Use:   "chart",
		Short: "Render the volume progress chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.ProgressCLI.Chart(context.Background(), splitID, unit, resolveChartPoints(points, cfg.ChartWindow))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), renderChart(out))
			return nil
		},
	}
	chart.Flags().StringVar(&splitID, "split-id", "", "filter by split")
	chart.Flags().StringVar(&unit, "unit", "", "display unit: kg|lb (defaults to preference)")
	chart.Flags().IntVar(&points, "points", 0, "number of recent workouts to include (defaults to chart_window)")
	return chart
}

func newConfigCmd(vaultPath *string) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Read and write preferences"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "get-unit",
		Short: "Show the display unit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			unit, err := app.PrefsCLI.GetUnit(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), unit)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set-unit <kg|lb>",
		Short: "Set the display unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			unit, err := app.PrefsCLI.SetUnit(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "display unit set to %s\n", unit)
			return nil
		},
	})

	return cfgCmd
}

func newReindexCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild SQLite projections from vault markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.SplitCLI.Reindex(context.Background()); err != nil {
				return err
			}
			if err := app.SessionCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newPluginCmd(vaultPath *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var commandPluginName string
	commandsCmd := &cobra.Command{
		Use:   "commands --plugin <name>",
		Short: "List commands exposed by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(commandPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			commands, err := app.PluginCLI.ListCommands(context.Background(), commandPluginName)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commands")
				return nil
			}
			for _, item := range commands {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s timeout_ms=%d title=%q\n", item.ID, item.Kind, item.TimeoutMS, item.Title)
			}
			return nil
		},
	}
	commandsCmd.Flags().StringVar(&commandPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(commandsCmd)

	var exportPluginName, exportCommandID, exportInputJSON, exportSplitID, exportWorkoutID string
	exportCmd := &cobra.Command{
		Use:   "export --plugin <name> --command <id>",
		Short: "Run an export-capability plugin command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exportPluginName) == "" || strings.TrimSpace(exportCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if err := validateJSONInput(exportInputJSON); err != nil {
				return err
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.PluginCLI.Export(context.Background(), plugindto.ExecuteInput{
				PluginName: exportPluginName,
				CommandID:  exportCommandID,
				InputJSON:  exportInputJSON,
				SplitID:    exportSplitID,
				WorkoutID:  exportWorkoutID,
				VaultPath:  *vaultPath,
				Cwd:        *vaultPath,
			})
			if err != nil {
				return err
			}
			printExecuteOutput(cmd, out)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportPluginName, "plugin", "", "plugin name")
	exportCmd.Flags().StringVar(&exportCommandID, "command", "", "command id")
	exportCmd.Flags().StringVar(&exportInputJSON, "input-json", "", "JSON input payload")
	exportCmd.Flags().StringVar(&exportSplitID, "split-id", "", "optional split id")
	exportCmd.Flags().StringVar(&exportWorkoutID, "workout-id", "", "optional workout id")
	plugin.AddCommand(exportCmd)

	var analyzePluginName, analyzeCommandID, analyzeInputJSON, analyzeSplitID string
	analyzeCmd := &cobra.Command{
		Use:   "analyze --plugin <name> --command <id> --split-id <id>",
		Short: "Run an analyze-capability plugin command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(analyzePluginName) == "" || strings.TrimSpace(analyzeCommandID) == "" || strings.TrimSpace(analyzeSplitID) == "" {
				return fmt.Errorf("--plugin, --command, and --split-id are required")
			}
			if err := validateJSONInput(analyzeInputJSON); err != nil {
				return err
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.PluginCLI.Analyze(context.Background(), plugindto.ExecuteInput{
				PluginName: analyzePluginName,
				CommandID:  analyzeCommandID,
				InputJSON:  analyzeInputJSON,
				SplitID:    analyzeSplitID,
				VaultPath:  *vaultPath,
				Cwd:        *vaultPath,
			})
			if err != nil {
				return err
			}
			printExecuteOutput(cmd, out)
			return nil
		},
	}
	analyzeCmd.Flags().StringVar(&analyzePluginName, "plugin", "", "plugin name")
	analyzeCmd.Flags().StringVar(&analyzeCommandID, "command", "", "command id")
	analyzeCmd.Flags().StringVar(&analyzeInputJSON, "input-json", "", "JSON input payload")
	analyzeCmd.Flags().StringVar(&analyzeSplitID, "split-id", "", "split id")
	plugin.AddCommand(analyzeCmd)

	var ttyPluginName, ttyCommandID, ttyInputJSON, ttySplitID, ttyWorkoutID string
	ttyCmd := &cobra.Command{
		Use:   "tty --plugin <name> --command <id>",
		Short: "Prepare and run a fullscreen tty plugin command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(ttyPluginName) == "" || strings.TrimSpace(ttyCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if err := validateJSONInput(ttyInputJSON); err != nil {
				return err
			}
			app, _, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			plan, err := app.PluginCLI.PrepareTTY(context.Background(), plugindto.TTYPrepareInput{
				PluginName: ttyPluginName,
				CommandID:  ttyCommandID,
				InputJSON:  ttyInputJSON,
				SplitID:    ttySplitID,
				WorkoutID:  ttyWorkoutID,
				VaultPath:  *vaultPath,
				Cwd:        *vaultPath,
			})
			if err != nil {
				return err
			}
			return runTTYPlan(plan)
		},
	}
	ttyCmd.Flags().StringVar(&ttyPluginName, "plugin", "", "plugin name")
	ttyCmd.Flags().StringVar(&ttyCommandID, "command", "", "command id")
	ttyCmd.Flags().StringVar(&ttyInputJSON, "input-json", "", "JSON input payload")
	ttyCmd.Flags().StringVar(&ttySplitID, "split-id", "", "optional split id")
	ttyCmd.Flags().StringVar(&ttyWorkoutID, "workout-id", "", "optional workout id")
	plugin.AddCommand(ttyCmd)

	return plugin
}

func printExecuteOutput(cmd *cobra.Command, out plugindto.ExecuteOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin=%s command=%s exit=%d\n", out.PluginName, out.CommandID, out.ExitCode)
	if strings.TrimSpace(out.Stdout) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
	}
	if strings.TrimSpace(out.Stderr) != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
	}
	if strings.TrimSpace(out.OutputJSON) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
	}
}

func validateJSONInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if !json.Valid([]byte(input)) {
		return fmt.Errorf("--input-json must be valid JSON")
	}
	return nil
}

func runTTYPlan(plan plugindto.TTYPrepareOutput) error {
	if len(plan.Argv) == 0 {
		return fmt.Errorf("plugin tty plan has empty argv")
	}
	cmd := exec.Command(plan.Argv[0], plan.Argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if plan.Cwd != "" {
		cmd.Dir = plan.Cwd
	}
	env := os.Environ()
	for key, value := range plan.Env {
		env = append(env, key+"="+value)
	}
	cmd.Env = env
	return cmd.Run()
}
