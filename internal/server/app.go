// Package server wires configuration, the credential store, the user
// service and both transports, and runs them until a shutdown signal.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/dmitrijs2005/authkernel/internal/logging"
	"github.com/dmitrijs2005/authkernel/internal/server/auth"
	"github.com/dmitrijs2005/authkernel/internal/server/config"
	"github.com/dmitrijs2005/authkernel/internal/server/metrics"
	"github.com/dmitrijs2005/authkernel/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkernel/internal/server/rest"
	"github.com/dmitrijs2005/authkernel/internal/server/services"

	gs "github.com/dmitrijs2005/authkernel/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	metrics     *metrics.Metrics
	userService *services.UserService
}

// openStore is a seam for tests.
var openStore = repomanager.New

// NewApp validates c, connects to the configured store and builds the
// user service. A store that cannot be reached is an error here, before
// anything starts listening.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, os.Stdout)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	secret := c.SecretKey
	if secret == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret generation error: %w", err)
		}
		secret = s
		logger.Warn(ctx, "no secret key configured, using a random one; tokens will not survive a restart")
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	rm, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	m := metrics.New()
	tokens := auth.NewTokenManager([]byte(secret), c.TokenValidity, c.Issuer)

	us, err := services.NewUserService(rm.Users(), hasher, tokens, logger, services.WithRecorder(m))
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	logger.Info(ctx, "store ready", "store", c.Store)

	return &App{config: c, logger: logger, repomanager: rm, metrics: m, userService: us}, nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.HTTPAddr, app.logger, app.userService, app.metrics.Registry())
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then closes the store.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	if app.config.HTTPAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "store close failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
