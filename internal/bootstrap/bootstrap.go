package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	bolt "go.etcd.io/bbolt"

	plugininadapter "liftlog/internal/modules/plugin/adapter/in"
	pluginoutadapter "liftlog/internal/modules/plugin/adapter/out"
	pluginservice "liftlog/internal/modules/plugin/service"
	pluginusecase "liftlog/internal/modules/plugin/usecase"
	prefsinadapter "liftlog/internal/modules/prefs/adapter/in"
	prefsoutadapter "liftlog/internal/modules/prefs/adapter/out"
	prefsin "liftlog/internal/modules/prefs/port/in"
	prefsservice "liftlog/internal/modules/prefs/service"
	prefsusecase "liftlog/internal/modules/prefs/usecase"
	progressinadapter "liftlog/internal/modules/progress/adapter/in"
	progressoutadapter "liftlog/internal/modules/progress/adapter/out"
	progressservice "liftlog/internal/modules/progress/service"
	progressusecase "liftlog/internal/modules/progress/usecase"
	sessioninadapter "liftlog/internal/modules/session/adapter/in"
	sessionoutadapter "liftlog/internal/modules/session/adapter/out"
	sessionservice "liftlog/internal/modules/session/service"
	sessionusecase "liftlog/internal/modules/session/usecase"
	splitinadapter "liftlog/internal/modules/split/adapter/in"
	splitoutadapter "liftlog/internal/modules/split/adapter/out"
	splitservice "liftlog/internal/modules/split/service"
	splitusecase "liftlog/internal/modules/split/usecase"
	"liftlog/internal/platform/clock"
	"liftlog/internal/platform/config"
	"liftlog/internal/platform/id"
	"liftlog/internal/platform/units"
	uiapp "liftlog/internal/ui/app"
)

type App struct {
	SplitCLI    splitinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	PluginCLI   plugininadapter.CLIHandler
	PrefsCLI    prefsinadapter.CLIHandler

	prefsUC prefsin.Usecase
	stateDB *bolt.DB
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	stateDB, err := bolt.Open(cfg.StatePath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	splitStore := splitoutadapter.NewVaultSplitStore(cfg.VaultPath)
	splitProjector, err := splitoutadapter.NewSQLiteSplitProjector(cfg.DBPath)
	if err != nil {
		_ = stateDB.Close()
		return nil, fmt.Errorf("new split projector: %w", err)
	}
	splitUC := splitusecase.NewInteractor(splitservice.NewSplitService(clk, ids, splitStore, splitProjector))

	workoutProjector, err := sessionoutadapter.NewSQLiteWorkoutProjector(cfg.DBPath)
	if err != nil {
		_ = stateDB.Close()
		return nil, fmt.Errorf("new workout projector: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewWorkoutService(
		clk,
		ids,
		sessionoutadapter.NewVaultWorkoutStore(cfg.VaultPath),
		workoutProjector,
		sessionoutadapter.NewBoltStateStore(stateDB),
		sessionoutadapter.NewSplitDirectoryBridge(splitUC),
	))

	prefsUC := prefsusecase.NewInteractor(prefsservice.NewPrefsService(
		prefsoutadapter.NewBoltPrefsStore(stateDB),
		units.Unit(cfg.DefaultUnit),
	))

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		progressoutadapter.NewSessionHistoryBridge(sessionUC),
		progressoutadapter.NewPrefsUnitBridge(prefsUC),
	))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.VaultPath),
		pluginoutadapter.NewGRPCHost(),
	))

	return &App{
		SplitCLI:    splitinadapter.NewCLIHandler(splitUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		PluginCLI:   plugininadapter.NewCLIHandler(pluginUC),
		PrefsCLI:    prefsinadapter.NewCLIHandler(prefsUC),
		prefsUC:     prefsUC,
		stateDB:     stateDB,
	}, nil
}

// Close releases the shared state database.
func (a *App) Close() error {
	if a.stateDB == nil {
		return nil
	}
	return a.stateDB.Close()
}

func RunTUI(cfg config.Config, app *App) error {
	unit := cfg.DefaultUnit
	if stored, err := app.PrefsCLI.GetUnit(context.Background()); err == nil && stored != "" {
		unit = stored
	}
	model := uiapp.NewModel(
		cfg.VaultPath,
		app.SplitCLI,
		app.SessionCLI,
		app.ProgressCLI,
		app.PluginCLI,
		app.PluginCLI,
		app.prefsUC,
		uiapp.ReindexBridge{Splits: app.SplitCLI.Reindex, Workouts: app.SessionCLI.Reindex},
		unit,
		cfg.ChartWindow,
	)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}
