// Package rest exposes the development backend over HTTP with fiber. Its
// behaviour is switchable so that clients can be exercised against the
// backend variants they must tolerate: either payload dialect, paged or
// plain lists, a missing or refusing search endpoint, and a backend that
// ignores filters.
package rest

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/logging"
	"github.com/dmitrijs2005/anagrafe/internal/server/config"
	"github.com/dmitrijs2005/anagrafe/internal/server/persons"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	address         string
	shutdownTimeout time.Duration
	app             *fiber.App
	logger          logging.Logger
}

// NewServer builds the fiber application for cfg on top of repo.
func NewServer(cfg *config.Config, repo persons.Repository, l logging.Logger) (*Server, error) {
	d, err := dialect.Parse(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	logger := l.With("module", "rest_server")

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestLogger(logger))

	h := &handler{
		repo:          repo,
		dialect:       d,
		paged:         cfg.Paged,
		ignoreFilters: cfg.IgnoreFilters,
		logger:        logger,
	}

	var r fiber.Router = app
	if cfg.Prefix != "" {
		r = app.Group(cfg.Prefix)
	}

	// The search route must be registered ahead of /persons/:id.
	switch cfg.SearchMode {
	case config.SearchNotAllowed:
		r.Get("/persons/search", statusOnly(fiber.StatusMethodNotAllowed))
	case config.SearchNotImplemented:
		r.Get("/persons/search", statusOnly(fiber.StatusNotImplemented))
	case config.SearchNotFound:
		// left unregistered: the path falls through to /persons/:id
	default:
		r.Get("/persons/search", h.list)
	}
	r.Get("/persons", h.list)
	r.Post("/persons", h.create)
	r.Get("/persons/:id", h.get)
	r.Put("/persons/:id", h.update)
	r.Delete("/persons/:id", h.remove)

	return &Server{
		address:         cfg.EndpointAddr,
		shutdownTimeout: cfg.ShutdownTimeout,
		app:             app,
		logger:          logger,
	}, nil
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(sctx); err != nil {
			s.logger.Error(sctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())
	return s.app.Listener(ln)
}
