//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/app"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/mongodb"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/limiter"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logger"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/middleware/http"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/mq"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/mq/rabbitmq"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/provider"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/service"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/worker"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/snowflake"
)

// baseProviders holds everything the API server shares with other binaries:
// config slices, storage, logic, and the roles client.
var baseProviders = wire.NewSet(
	wire.FieldsOf(new(*conf.AppConfig), "LogConfig", "MongodbConfig", "KetoConfig", "WorkerConfig", "JwtConfig", "RedisConfig", "RateLimiterConfig", "RabbitMQConfig"),
	provider.ProvideAppMode,
	logger.NewLogger,
	mongodb.NewMongoDB,
	provider.ProvideDatabase,
	provider.ProvideRolesClient,
	provider.ProvideRoleDirectory,
	provider.ProvideMachineID,
	provider.ProvideNotificationEventsTopic,
	provider.ProvideTransactionManager,
	provider.ProvideJwtGenerator,
	provider.ProvideRedisNamespace,
	provider.ProvideRedisClient,
	limiter.NewManager,
	snowflake.NewGenerator,
	mongodb.NewMonthlyRecordsDAO,
	wire.Bind(new(repository.MonthlyRecordsRepository), new(*mongodb.MonthlyRecordsDAO)),
	mongodb.NewChangeLogsDAO,
	wire.Bind(new(repository.ChangeLogsRepository), new(*mongodb.ChangeLogsDAO)),
	mongodb.NewCommentsDAO,
	wire.Bind(new(repository.CommentsRepository), new(*mongodb.CommentsDAO)),
	mongodb.NewNotificationsDAO,
	wire.Bind(new(repository.NotificationsRepository), new(*mongodb.NotificationsDAO)),
	mongodb.NewMembersDAO,
	wire.Bind(new(repository.MembersRepository), new(*mongodb.MembersDAO)),
	mongodb.NewUsersDAO,
	wire.Bind(new(repository.UsersRepository), new(*mongodb.UsersDAO)),
	mongodb.NewOutboxDAO,
	wire.Bind(new(repository.OutboxRepository), new(*mongodb.OutboxDAO)),
	logic.NotificationDispatcherProviderSet,
	logic.ReviewLogicProviderSet,
	logic.IdentityLogicProviderSet,
)

// rabbitMQProviders supplies the broker publisher and the outbox workers.
var rabbitMQProviders = wire.NewSet(
	rabbitmq.NewPublisher,
	wire.Bind(new(mq.Publisher), new(*rabbitmq.Publisher)),
	worker.NewOutboxProcessor,
	worker.NewStaleClaimReleaser,
)

func provideWorkers(p *worker.OutboxProcessor, r *worker.StaleClaimReleaser) []worker.Worker {
	return []worker.Worker{p, r}
}

func InitializeApp(appConfig *conf.AppConfig) (*app.App, func(), error) {
	wire.Build(
		baseProviders,
		rabbitMQProviders,
		wire.FieldsOf(new(*conf.AppConfig), "Port"),
		http.NewAuthMiddleware,
		service.NewAuthService,
		service.NewRecordsService,
		service.NewChangesService,
		service.NewNotificationsService,
		service.NewAdminUsersService,
		service.NewMembersService,
		provideWorkers,
		app.NewRouter,
		app.NewApp,
	)
	return nil, nil, nil
}
