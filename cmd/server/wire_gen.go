// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
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
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitializeApp(appConfig *conf.AppConfig) (*app.App, func(), error) {
	int2 := appConfig.Port
	logConfig := appConfig.LogConfig
	zapLogger, cleanup, err := logger.NewLogger(logConfig)
	if err != nil {
		return nil, nil, err
	}
	appMode := provider.ProvideAppMode(appConfig)
	manager, err := provider.ProvideJwtGenerator(appConfig)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	authMiddleware := http.NewAuthMiddleware(manager)
	rateLimiterConfig := appConfig.RateLimiterConfig
	redisConfig := appConfig.RedisConfig
	client, cleanup2, err := provider.ProvideRedisClient(redisConfig)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	redisNamespace := provider.ProvideRedisNamespace(appConfig)
	limiterManager, err := limiter.NewManager(rateLimiterConfig, client, redisNamespace)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	mongodbConfig := appConfig.MongodbConfig
	mongoClient, cleanup3, err := mongodb.NewMongoDB(mongodbConfig)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	database := provider.ProvideDatabase(mongoClient, mongodbConfig)
	usersDAO := mongodb.NewUsersDAO(database, zapLogger)
	ketoConfig := appConfig.KetoConfig
	rolesClient, cleanup4, err := provider.ProvideRolesClient(ketoConfig)
	if err != nil {
		cleanup3()
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	roleDirectory := provider.ProvideRoleDirectory(rolesClient, ketoConfig)
	identityLogic := logic.NewIdentityLogic(usersDAO, roleDirectory, zapLogger)
	jwtConfig := appConfig.JwtConfig
	authService := service.NewAuthService(identityLogic, manager, jwtConfig, zapLogger)
	monthlyRecordsDAO := mongodb.NewMonthlyRecordsDAO(database, zapLogger)
	changeLogsDAO := mongodb.NewChangeLogsDAO(database, zapLogger)
	commentsDAO := mongodb.NewCommentsDAO(database, zapLogger)
	membersDAO := mongodb.NewMembersDAO(database, zapLogger)
	transactionManager := provider.ProvideTransactionManager(appMode, mongoClient)
	notificationsDAO := mongodb.NewNotificationsDAO(database, zapLogger)
	outboxDAO := mongodb.NewOutboxDAO(database, zapLogger)
	notificationEventsTopic := provider.ProvideNotificationEventsTopic(appConfig)
	notificationEventPublisher := logic.NewNotificationEventPublisher(outboxDAO, notificationEventsTopic)
	notificationDispatcher := logic.NewNotificationDispatcher(notificationsDAO, notificationEventPublisher, zapLogger)
	uint16_2 := provider.ProvideMachineID()
	generator, err := snowflake.NewGenerator(uint16_2)
	if err != nil {
		cleanup4()
		cleanup3()
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	reviewLogic := logic.NewReviewLogic(monthlyRecordsDAO, changeLogsDAO, commentsDAO, membersDAO, transactionManager, notificationDispatcher, roleDirectory, generator, zapLogger)
	recordsService := service.NewRecordsService(reviewLogic, zapLogger)
	changesService := service.NewChangesService(reviewLogic, zapLogger)
	notificationsService := service.NewNotificationsService(notificationDispatcher, zapLogger)
	adminUsersService := service.NewAdminUsersService(identityLogic, zapLogger)
	membersService := service.NewMembersService(membersDAO, zapLogger)
	engine := app.NewRouter(appMode, zapLogger, authMiddleware, limiterManager, authService, recordsService, changesService, notificationsService, adminUsersService, membersService)
	rabbitMQConfig := appConfig.RabbitMQConfig
	publisher, err := rabbitmq.NewPublisher(rabbitMQConfig, zapLogger)
	if err != nil {
		cleanup4()
		cleanup3()
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	workerConfig := appConfig.WorkerConfig
	outboxProcessor := worker.NewOutboxProcessor(outboxDAO, publisher, zapLogger, workerConfig)
	staleClaimReleaser := worker.NewStaleClaimReleaser(outboxDAO, zapLogger, workerConfig)
	v := provideWorkers(outboxProcessor, staleClaimReleaser)
	appApp, cleanup5, err := app.NewApp(int2, zapLogger, engine, v)
	if err != nil {
		cleanup4()
		cleanup3()
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	return appApp, func() {
		cleanup5()
		cleanup4()
		cleanup3()
		cleanup2()
		cleanup()
	}, nil
}

// wire.go:

// baseProviders holds everything the API server shares with other binaries:
// config slices, storage, logic, and the roles client.
var baseProviders = wire.NewSet(wire.FieldsOf(new(*conf.AppConfig), "LogConfig", "MongodbConfig", "KetoConfig", "WorkerConfig", "JwtConfig", "RedisConfig", "RateLimiterConfig", "RabbitMQConfig"), provider.ProvideAppMode, logger.NewLogger, mongodb.NewMongoDB, provider.ProvideDatabase, provider.ProvideRolesClient, provider.ProvideRoleDirectory, provider.ProvideMachineID, provider.ProvideNotificationEventsTopic, provider.ProvideTransactionManager, provider.ProvideJwtGenerator, provider.ProvideRedisNamespace, provider.ProvideRedisClient, limiter.NewManager, snowflake.NewGenerator, mongodb.NewMonthlyRecordsDAO, wire.Bind(new(repository.MonthlyRecordsRepository), new(*mongodb.MonthlyRecordsDAO)), mongodb.NewChangeLogsDAO, wire.Bind(new(repository.ChangeLogsRepository), new(*mongodb.ChangeLogsDAO)), mongodb.NewCommentsDAO, wire.Bind(new(repository.CommentsRepository), new(*mongodb.CommentsDAO)), mongodb.NewNotificationsDAO, wire.Bind(new(repository.NotificationsRepository), new(*mongodb.NotificationsDAO)), mongodb.NewMembersDAO, wire.Bind(new(repository.MembersRepository), new(*mongodb.MembersDAO)), mongodb.NewUsersDAO, wire.Bind(new(repository.UsersRepository), new(*mongodb.UsersDAO)), mongodb.NewOutboxDAO, wire.Bind(new(repository.OutboxRepository), new(*mongodb.OutboxDAO)), logic.NotificationDispatcherProviderSet, logic.ReviewLogicProviderSet, logic.IdentityLogicProviderSet)

// rabbitMQProviders supplies the broker publisher and the outbox workers.
var rabbitMQProviders = wire.NewSet(rabbitmq.NewPublisher, wire.Bind(new(mq.Publisher), new(*rabbitmq.Publisher)), worker.NewOutboxProcessor, worker.NewStaleClaimReleaser)

func provideWorkers(p *worker.OutboxProcessor, r *worker.StaleClaimReleaser) []worker.Worker {
	return []worker.Worker{p, r}
}
