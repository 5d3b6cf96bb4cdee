package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jadwalin-service/cmd/migration"
	"jadwalin-service/internal/app/config"
	"jadwalin-service/internal/app/delivery/http/middlewares"
	"jadwalin-service/internal/app/delivery/http/routers"
	"jadwalin-service/internal/app/drivers/database"
	"jadwalin-service/internal/app/drivers/logger"
	"jadwalin-service/internal/app/drivers/messaging"
	"jadwalin-service/internal/app/services/core/audit"
	"jadwalin-service/internal/app/services/core/doctors"
	"jadwalin-service/internal/app/services/core/schedules"
	"jadwalin-service/internal/app/services/core/slots"
	"jadwalin-service/internal/app/services/shared/events"
	sharedredis "jadwalin-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	processLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		processLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	migration.Run(postgresDB)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if err := bootstrapingTheApp(bootstrap); err != nil {
		processLog.Fatalf("Error bootstrapping the application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			processLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	processLog.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		processLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		processLog.Fatalf("Error closing driver connections: %v", err)
	}

	processLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) error {
	// Shared services
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	eventPublisher, err := events.NewScheduleEventPublisher(bootstrap.RabbitMQ, bootstrap.Logger)
	if err != nil {
		return err
	}

	// Middlewares
	mw := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}
	bootstrap.Router.Use(mw.RequestIDMiddleware)
	bootstrap.Router.Use(mw.Logging(bootstrap.Logger))

	// Repositories
	scheduleRepository := schedules.NewSchedulePostgresRepository(bootstrap.PostgresDB, bootstrap.Logger)
	slotRepository := slots.NewSlotPostgresRepository(bootstrap.PostgresDB, bootstrap.Logger)
	doctorRepository := doctors.NewDoctorPostgresRepository(bootstrap.PostgresDB, bootstrap.Logger)
	auditRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Schedules
	scheduleUsecase := schedules.NewScheduleUsecase(
		scheduleRepository,
		doctorRepository,
		redisRepository,
		auditRepository,
		eventPublisher,
		bootstrap.Logger,
	)
	scheduleController := schedules.NewScheduleController(bootstrap.Logger, scheduleUsecase)

	// Slots
	slotUsecase := slots.NewSlotUsecase(
		slotRepository,
		redisRepository,
		auditRepository,
		eventPublisher,
		bootstrap.Logger,
	)
	slotController := slots.NewSlotController(bootstrap.Logger, slotUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, mw, scheduleController, slotController)
	return nil
}
