// Package server wires the development backend: an in-memory person
// repository, optionally seeded, behind a REST server whose dialect, paging
// and search endpoint behavior are configurable.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/anagrafe/internal/logging"
	"github.com/dmitrijs2005/anagrafe/internal/server/config"
	"github.com/dmitrijs2005/anagrafe/internal/server/persons"
	"github.com/dmitrijs2005/anagrafe/internal/server/rest"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repo   persons.Repository
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repo, err := persons.NewMemDBRepository()
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	if c.Seed {
		if err := persons.Seed(context.Background(), repo); err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	return &App{config: c, logger: logger, repo: repo}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := rest.NewServer(app.config, app.repo, app.logger)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"dialect", app.config.Dialect,
		"paged", app.config.Paged,
		"search_mode", app.config.SearchMode,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
