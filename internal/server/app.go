// Package server wires configuration, storage, services and the HTTP
// transport together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/seedstock/internal/logging"
	"github.com/dmitrijs2005/seedstock/internal/server/archive"
	"github.com/dmitrijs2005/seedstock/internal/server/auth"
	"github.com/dmitrijs2005/seedstock/internal/server/config"
	"github.com/dmitrijs2005/seedstock/internal/server/httpapi"
	"github.com/dmitrijs2005/seedstock/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/seedstock/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *httpapi.HTTPServer
}

// openRepositoryManager picks PostgreSQL when a DSN is configured and the
// in-memory store otherwise.
var openRepositoryManager = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	if dsn == "" {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	db, err := repomanager.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return repomanager.NewPostgresRepositoryManager(db), nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	rm, err := openRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	arch, err := archive.New(ctx, c)
	if err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("archive init error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	as := services.NewAccountService(rm, auth.NewBcryptHasher(c.BcryptCost), tokens, services.NewUUID)
	ps := services.NewProductService(rm, arch, services.NewUUID)

	hs := httpapi.NewHTTPServer(httpapi.Options{
		Address:        c.EndpointAddrHTTP,
		AllowedOrigins: c.AllowedOrigins,
		MaxUploadBytes: c.MaxUploadBytes,
	}, logger, as, ps, tokens)

	return &App{config: c, logger: logger, repomanager: rm, httpServer: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing store", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
