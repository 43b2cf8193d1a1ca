// Package cli implements the sitekeeper command tree. The CLI is a thin
// consumer of the state facade and contains no business logic of its own.
package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/config"
	"github.com/dmitrijs2005/sitekeeper/internal/logging"
	"github.com/dmitrijs2005/sitekeeper/internal/migrate"
	"github.com/dmitrijs2005/sitekeeper/internal/state"
	"github.com/dmitrijs2005/sitekeeper/internal/storage"
	"github.com/dmitrijs2005/sitekeeper/internal/store"
)

// App wires the storage backend, migrator, store and state manager for one
// CLI invocation.
type App struct {
	config *config.Config
	log    logging.Logger
	store  *store.Store
	state  *state.Manager
	now    func() time.Time
}

// NewApp builds the full dependency chain from configuration. Nothing is
// shared globally: each App owns its own store and facade.
func NewApp(cfg *config.Config) (*App, error) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	log := logging.NewSlogLogger(slog.New(h))

	basePath, err := storage.ResolveBasePath(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	st := storage.NewDiskStorage(basePath)
	migrator := migrate.New(log)
	backups := migrate.NewBackupRing(st, cfg.BackupLimit)
	docStore := store.New(st, migrator, backups, log, store.WithHistoryCap(cfg.HistoryCap), store.WithIterations(cfg.Iterations))
	manager := state.New(docStore, log)

	if err := manager.Init(); err != nil {
		return nil, err
	}

	return &App{config: cfg, log: log, store: docStore, state: manager, now: time.Now}, nil
}

// newTestApp wires an App over the in-memory backend. Used by command tests.
func newTestApp(cfg *config.Config) *App {
	log := logging.NewNop()
	st := storage.NewMemStorage()
	migrator := migrate.New(log)
	backups := migrate.NewBackupRing(st, cfg.BackupLimit)
	docStore := store.New(st, migrator, backups, log, store.WithHistoryCap(cfg.HistoryCap), store.WithIterations(cfg.Iterations))
	manager := state.New(docStore, log)
	_ = manager.Init()
	return &App{config: cfg, log: log, store: docStore, state: manager, now: time.Now}
}
