package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prize_wheel/internal/config"
	"prize_wheel/internal/config/env"
	"prize_wheel/pkg/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) initLogger() {
	cfg := env.NewLogConfig()
	logger.Set(logger.New(&logger.Config{
		Mode:  logger.ParseMode(cfg.Mode()),
		Level: cfg.Level(),
		App:   "prize_wheel",
		Dir:   cfg.Dir(),
	}))
}

// Run serves HTTP until SIGINT/SIGTERM, then drains pending outcome writes.
func (s *App) Run() error {
	err := config.Load(".env")
	s.initLogger()
	defer func() { _ = logger.L().Sync() }()
	if err != nil {
		logger.L().Warn("error loading .env file", zap.Error(err))
	}
	s.initServiceProvider()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sp := s.ServiceProvider
	r := sp.Router(ctx)
	go sp.Hub().Run(ctx)

	srv := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.L().Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)

	sp.Reporter(ctx).Close()
	sp.DBClient(ctx).Close()

	return err
}
