package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/worker"
)

// App owns the HTTP server and the background workers, and ties their
// lifetimes to one context.
type App struct {
	httpServer *http.Server
	workers    []worker.Worker
	port       int
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewApp creates the application server. The returned cleanup gracefully
// stops the HTTP server and signals the workers.
func NewApp(port int, logger *zap.Logger, engine *gin.Engine, workers []worker.Worker) (*App, func(), error) {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: engine,
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		httpServer: httpServer,
		workers:    workers,
		port:       port,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	cleanup := func() {
		app.logger.Info("Cleanup: stopping server and workers...")
		app.cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
		app.logger.Info("Cleanup finished.")
	}

	return app, cleanup, nil
}

// Run starts the workers and the HTTP server, then blocks until an interrupt
// arrives.
func (a *App) Run() error {
	for _, w := range a.workers {
		go w.Start(a.ctx)
	}

	go func() {
		a.logger.Info("server started", zap.Int("port", a.port))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("Shutting down server...")
	a.cancel()

	return nil
}
