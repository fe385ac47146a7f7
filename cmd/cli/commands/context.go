package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tkhrsasaki/shiftsense/internal/config"
	"github.com/tkhrsasaki/shiftsense/pkg/db"
	"github.com/tkhrsasaki/shiftsense/pkg/postgres"
)

// AppContext holds the application dependencies shared across all
// commands. The database connection is opened lazily: only commands
// that persist or read history need it.
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	database *postgres.DB
}

// Database returns the shared history store, connecting and migrating
// on first use. It fails when no databaseURL is configured.
func (a *AppContext) Database() (db.Database, error) {
	if a.database != nil {
		return a.database, nil
	}
	if a.Cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("no databaseURL configured; history features are unavailable")
	}

	a.Logger.Debug("Connecting to history database")
	database, err := postgres.NewDB(a.Ctx, a.Cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(a.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a.database = database
	return a.database, nil
}

// Close releases the database connection if one was opened.
func (a *AppContext) Close() {
	if a.database != nil {
		a.database.Close()
	}
}
