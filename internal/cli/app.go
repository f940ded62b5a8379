// Package cli holds the dependencies shared by the egdesk commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/cli/styles"
	"github.com/egdesk/taehwa/internal/config"
	"github.com/egdesk/taehwa/internal/domain/build"
	"github.com/egdesk/taehwa/internal/infrastructure/persistence/sqlite"
	"github.com/egdesk/taehwa/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// db opens on first use, so commands that never touch sessions do not
	// create the database.
	db *sqlite.LazyDB

	// Use cases
	ListSessionsUC  *usecase.ListSessionsUseCase
	DeleteSessionUC *usecase.DeleteSessionUseCase
	SettingsUC      *usecase.ManageSettingsUseCase

	ctx context.Context
}

// NewApp loads the configuration from configFile (empty selects the XDG
// default) and prepares the shared use cases.
func NewApp(configFile string) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	// CLI commands log quietly. Browser runs build their own session logger.
	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("EGDESK_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	dbFile := cfg.Database.Path
	if dbFile == "" {
		if dbFile, err = config.GetDatabaseFile(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	db := sqlite.NewLazyDB(dbFile)
	stateRepo := sqlite.NewLazySessionStateRepository(db)

	return &App{
		Config:          cfg,
		Manager:         mgr,
		Theme:           styles.NewTheme(cfg),
		db:              db,
		ListSessionsUC:  usecase.NewListSessionsUseCase(stateRepo),
		DeleteSessionUC: usecase.NewDeleteSessionUseCase(stateRepo),
		SettingsUC:      usecase.NewManageSettingsUseCase(sqlite.NewLazySettingsRepository(db)),
		ctx:             ctx,
	}, nil
}

// Catalog returns a dispatcher that only describes commands. It has no tabs
// and must not dispatch.
func (a *App) Catalog() *command.Dispatcher {
	return command.NewDispatcher(command.Deps{Settings: a.SettingsUC})
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
