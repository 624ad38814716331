// Package server initializes and runs the account backend: it selects the
// storage backend, runs migrations before the listener binds, and starts the
// HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/guluwater/officetools-server/internal/logging"
	"github.com/guluwater/officetools-server/internal/server/config"
	"github.com/guluwater/officetools-server/internal/server/httpapi"
	"github.com/guluwater/officetools-server/internal/server/shared/db"
	"github.com/guluwater/officetools-server/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     db.RepositoryManager
	userService *users.Service
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	manager, err := db.NewRepositoryManager(c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	// Migrations must fully complete before any request is served; a failure
	// here aborts startup.
	if err := manager.RunMigrations(context.Background()); err != nil {
		manager.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := users.NewService(manager.Users(), c.HashCost)

	return &App{config: c, logger: logger, manager: manager, userService: us}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.config.RequestTimeout)

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

	app.logger.Info(ctx, "Starting app...",
		"backend", app.config.StorageBackend, "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err.Error())
	}
}
