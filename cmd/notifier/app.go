package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/cmd/notifier/handlers"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/mq/rabbitmq"
)

// NotifierApp bridges the broker and the websocket hub: it consumes
// notification events and serves the websocket endpoint clients connect to.
type NotifierApp struct {
	consumer   *rabbitmq.Consumer
	hub        *Hub
	httpServer *http.Server
	logger     *zap.Logger
}

func NewNotifierApp(port int, consumer *rabbitmq.Consumer, hub *Hub, logger *zap.Logger, messageHandlers []handlers.MessageHandler) *NotifierApp {
	for _, h := range messageHandlers {
		logger.Info("Registering handler", zap.String("queue", h.QueueName()))
		consumer.RegisterHandler(h.QueueName(), h.Handle)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/ws", hub.HandleWS)

	return &NotifierApp{
		consumer: consumer,
		hub:      hub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: engine,
		},
		logger: logger,
	}
}

// Run starts the consumer and the websocket server and blocks until the
// context is cancelled or either side fails.
func (a *NotifierApp) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting notification event consumer")
		return a.consumer.Start(gCtx)
	})

	g.Go(func() error {
		a.logger.Info("Websocket server started", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Websocket server shutdown failed", zap.Error(err))
		}
		if err := a.hub.Close(); err != nil {
			a.logger.Error("Hub close failed", zap.Error(err))
		}
		a.consumer.Close()
		return nil
	})

	return g.Wait()
}
