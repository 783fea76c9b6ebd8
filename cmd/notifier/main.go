package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
)

func main() {
	confPath := flag.String("c", "internal/conf/config.yaml", "path to config file")
	port := flag.Int("p", 0, "port for the websocket server, overrides the config file")
	flag.Parse()

	appConfig, err := conf.NewConfig(*confPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if *port > 0 {
		appConfig.Port = *port
	}

	app, cleanup, err := InitializeNotifierApp(appConfig)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize notifier app: %v", err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info("Starting notifier application")
	if err := app.Run(ctx); err != nil {
		app.logger.Error("Notifier application exited with error", zap.Error(err))
	}

	app.logger.Info("Notifier application shut down gracefully")
}
