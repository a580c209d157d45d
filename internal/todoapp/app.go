// Package todoapp wires configuration, the selected store and the service
// the commands run against.
package todoapp

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/todo/internal/core/config"
	"github.com/colonyops/todo/internal/core/todo"
	"github.com/colonyops/todo/internal/data/csvfile"
	"github.com/colonyops/todo/internal/data/db"
	"github.com/colonyops/todo/internal/data/stores"
)

// App is the central entry point for all todo operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Todos  *TodoService
	Config *config.Config
	Clock  todo.Clock

	store todo.Store
}

// NewApp constructs an App around an already opened store. The App owns
// the store and closes it in Close.
func NewApp(store todo.Store, cfg *config.Config, clock todo.Clock, log zerolog.Logger) *App {
	if clock == nil {
		clock = time.Now
	}
	return &App{
		Todos:  NewTodoService(store, clock, log),
		Config: cfg,
		Clock:  clock,
		store:  store,
	}
}

// Close releases the store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// OpenStore opens the backend selected in cfg at its configured location.
func OpenStore(cfg *config.Config, clock todo.Clock) (todo.Store, error) {
	switch cfg.Backend {
	case config.BackendCSV:
		store, err := csvfile.Open(cfg.CSV.Path, csvfile.WithClock(clock))
		if err != nil {
			return nil, fmt.Errorf("open csv store: %w", err)
		}
		return store, nil
	case config.BackendSQLite:
		database, err := db.Open(cfg.SQLite.DSN, db.OpenOptions{
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.SQLite.MaxIdleConns,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		return stores.NewItemStore(database, stores.WithClock(clock)), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
