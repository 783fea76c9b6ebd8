//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/cmd/notifier/handlers"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logger"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/mq/rabbitmq"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/provider"
)

// provideHandlers collects the individual MessageHandlers into a slice.
func provideHandlers(notificationHandler *handlers.NotificationEventHandler) []handlers.MessageHandler {
	return []handlers.MessageHandler{
		notificationHandler,
	}
}

// InitializeNotifierApp creates the notifier application and its dependencies.
func InitializeNotifierApp(appConfig *conf.AppConfig) (*NotifierApp, func(), error) {
	wire.Build(
		wire.FieldsOf(new(*conf.AppConfig), "Port", "LogConfig", "RabbitMQConfig"),

		logger.NewLogger,
		provider.ProvideJwtGenerator,

		rabbitmq.NewConsumer,
		NewHub,
		wire.Bind(new(handlers.Pusher), new(*Hub)),

		handlers.NewNotificationEventHandler,
		provideHandlers,

		NewNotifierApp,
	)
	return nil, nil, nil
}
