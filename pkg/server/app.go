package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FinCast/internal/usecase"
	"FinCast/pkg/config"
	xhttp "FinCast/pkg/http"
	applogger "FinCast/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	log        *applogger.Logger
	state      *usecase.State
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, srv *xhttp.Server, l *applogger.Logger, st *usecase.State) *App {
	return &App{
		cfg:        cfg,
		httpServer: srv,
		log:        l,
		state:      st,
	}
}

// Run serves HTTP until ctx is cancelled, SIGINT/SIGTERM arrives or the
// listener fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.log.Info("application ready",
		applogger.String("env", a.cfg.Environment),
		applogger.String("run_id", a.state.RunID),
		applogger.String("model_id", a.state.ModelID),
		applogger.Bool("model_reused", a.state.Reused),
		applogger.String("addr", a.httpServer.Addr()),
	)

	errCh := a.httpServer.Start()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			return err
		}
	}

	return a.shutdown()
}

// shutdown gracefully stops the HTTP server. Infrastructure clients are
// closed by the DI cleanup.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
