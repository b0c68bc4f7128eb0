package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/anagrafe/internal/client/cache"
	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/config"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/dmitrijs2005/anagrafe/internal/client/services"
	"github.com/dmitrijs2005/anagrafe/internal/logging"
)

type App struct {
	config  *config.Config
	persons services.PersonService
	store   *cache.Store
	logger  logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	// current is the person loaded in the editor; loaded is false until a
	// find, new or edit succeeds.
	current models.Person
	loaded  bool
}

// NewApp wires the HTTP transport, read cache and person services for c.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.BaseURL, c.RequestTimeout, logger)
	if err != nil {
		return nil, err
	}

	store, err := cache.New(c.CacheTTL)
	if err != nil {
		return nil, err
	}

	persons := services.NewPersonService(
		services.NewGateway(apiClient, c.Dialect, logger),
		services.NewResolver(apiClient, c.SearchPageSize, logger),
		store,
		logger,
	)

	return &App{
		config:      c,
		persons:     persons,
		store:       store,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(),
	}, nil
}

// Run starts the cache janitor and the REPL, and blocks until the user exits,
// stdin is closed or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.store.Run(ctx, a.config.CacheSweepInterval)

	if a.interactive {
		a.println(msgWelcome)
	}
	a.logger.Info(ctx, "client started", "base_url", a.config.BaseURL, "dialect", a.config.Dialect.String())

	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	if a.loaded {
		return fmt.Sprintf("anagrafe (%s)> ", a.current.TaxCode)
	}
	return "anagrafe> "
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// report prints the user-facing text for err, if there is any.
func (a *App) report(err error, fallback string) {
	if msg := describe(err, fallback); msg != "" {
		a.println(msg)
	}
}
