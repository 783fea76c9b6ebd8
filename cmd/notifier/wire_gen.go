// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/cmd/notifier/handlers"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logger"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/mq/rabbitmq"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/provider"
)

// Injectors from wire.go:

// InitializeNotifierApp creates the notifier application and its dependencies.
func InitializeNotifierApp(appConfig *conf.AppConfig) (*NotifierApp, func(), error) {
	int2 := appConfig.Port
	rabbitMQConfig := appConfig.RabbitMQConfig
	logConfig := appConfig.LogConfig
	zapLogger, cleanup, err := logger.NewLogger(logConfig)
	if err != nil {
		return nil, nil, err
	}
	consumer, err := rabbitmq.NewConsumer(rabbitMQConfig, zapLogger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	manager, err := provider.ProvideJwtGenerator(appConfig)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	hub := NewHub(manager, zapLogger)
	notificationEventHandler := handlers.NewNotificationEventHandler(hub, rabbitMQConfig, zapLogger)
	v := provideHandlers(notificationEventHandler)
	notifierApp := NewNotifierApp(int2, consumer, hub, zapLogger, v)
	return notifierApp, func() {
		cleanup()
	}, nil
}

// wire.go:

// provideHandlers collects the individual MessageHandlers into a slice.
func provideHandlers(notificationHandler *handlers.NotificationEventHandler) []handlers.MessageHandler {
	return []handlers.MessageHandler{
		notificationHandler,
	}
}
