// Package main is the entry point of the procurement HTTP service
// It initializes all components and starts the HTTP server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"procurement-service/config"
	httpDelivery "procurement-service/delivery/http"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/notification"
	"procurement-service/pkg/jwt"
	"procurement-service/pkg/kafka"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
	"procurement-service/pkg/postgres"
	"procurement-service/pkg/redis"
	pgRepository "procurement-service/repository/postgres"
	"procurement-service/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName = "procurement-service"

// main is the entry point of the application
// It performs the following steps:
// 1. Loads configuration and initializes the logger
// 2. Sets up the database connection and runs migrations
// 3. Connects the Redis lock store and the Kafka notification producer
// 4. Initializes the repository, usecase and handler layers
// 5. Sets up HTTP routes and metrics
// 6. Starts the HTTP server with graceful shutdown
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewJSONDefault().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// configure logger
	appLogger := logger.NewWithOptions(
		logger.WithLevelName(cfg.Application.LogLevel),
		logger.WithService(serviceName),
	)

	// Initialize PostgreSQL client
	postgresClient, err := postgres.NewPostgresClient(cfg.Infrastructure.Postgres.ClientConfig())
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Infrastructure.Postgres.IsUseMigrate {
		if err := postgresClient.Migrate(model.AllModels()...); err != nil {
			appLogger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry, serviceName)

	// Initialize the distributed lock store
	var locker redis.Locker = redis.NoopLocker{}
	var redisClient redis.RedisClient
	if cfg.Infrastructure.Redis.Enabled {
		redisClient, err = redis.NewWithConfig(redis.Config{
			Addrs:    cfg.Infrastructure.Redis.Addrs,
			Username: cfg.Infrastructure.Redis.Username,
			Password: cfg.Infrastructure.Redis.Password,
			DB:       cfg.Infrastructure.Redis.DB,
			PoolSize: cfg.Infrastructure.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Error("Failed to initialize Redis client", "error", err)
			os.Exit(1)
		}
		locker = redis.NewLocker(redisClient, cfg.Infrastructure.Redis.LockPrefix)
	} else {
		appLogger.Warn("Redis disabled, concurrent writes are guarded by database constraints only")
	}
	lockTTL := time.Duration(cfg.Infrastructure.Redis.LockTTL) * time.Second

	// Initialize the notification producer
	var notifier notification.Notifier = notification.Noop{}
	var kafkaClient kafka.KafkaClient
	if cfg.Infrastructure.Kafka.Enabled {
		kafkaClient, err = kafka.NewWithConfig(kafka.Config{
			Brokers:  cfg.Infrastructure.Kafka.Brokers,
			ClientID: cfg.Infrastructure.Kafka.ClientID,
		})
		if err != nil {
			appLogger.Error("Failed to initialize Kafka client", "error", err)
			os.Exit(1)
		}
		notifier = notification.NewKafkaNotifier(kafkaClient, notification.Topics{
			InquiryCreated: cfg.Infrastructure.Kafka.Topics.InquiryCreated,
			OrderPlaced:    cfg.Infrastructure.Kafka.Topics.OrderPlaced,
		}, appLogger, appMetrics)
	} else {
		appLogger.Warn("Kafka disabled, notifications are dropped")
	}

	// Initialize JWT client
	jwtClient, err := jwt.NewWithConfig(jwt.TokenConfig{
		AccessTokenSecret: cfg.Security.JWT.AccessTokenSecret,
		AccessTokenExpiry: time.Duration(cfg.Security.JWT.AccessTokenExpiry) * time.Minute,
		Issuer:            cfg.Security.JWT.Issuer,
	})
	if err != nil {
		appLogger.Error("Failed to initialize JWT client", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	db := postgresClient.GetDB()
	repos := usecase.Repositories{
		Transactor:  pgRepository.NewTransactor(db, appLogger),
		Users:       pgRepository.NewUserRepository(db, appLogger),
		Ingredients: pgRepository.NewIngredientRepository(db, appLogger),
		Catalog:     pgRepository.NewCatalogRepository(db, appLogger),
		Inquiries:   pgRepository.NewInquiryRepository(db, appLogger),
		Quotes:      pgRepository.NewQuoteRepository(db, appLogger),
		Orders:      pgRepository.NewOrderRepository(db, appLogger),
		Profiles:    pgRepository.NewSupplierProfileRepository(db, appLogger),
	}

	// Initialize usecases
	gate := policy.New()
	ingredientUsecase := usecase.NewIngredientUseCase(repos, gate, appLogger)
	catalogUsecase := usecase.NewCatalogUseCase(repos, gate, appLogger)
	inquiryUsecase := usecase.NewInquiryUseCase(repos, gate, notifier, appMetrics, appLogger)
	quoteUsecase := usecase.NewQuoteUseCase(repos, gate, locker, lockTTL, appMetrics, appLogger)
	profileUsecase := usecase.NewSupplierProfileUseCase(repos, gate, appMetrics, appLogger)
	orderUsecase := usecase.NewOrderUseCase(repos, gate, profileUsecase, notifier, locker, lockTTL, appMetrics, appLogger)

	// Initialize router
	router := &httpDelivery.Router{
		IngredientHandler: httpDelivery.NewIngredientHandler(ingredientUsecase, appLogger),
		CatalogHandler:    httpDelivery.NewCatalogHandler(catalogUsecase, appLogger),
		InquiryHandler:    httpDelivery.NewInquiryHandler(inquiryUsecase, appLogger),
		QuoteHandler:      httpDelivery.NewQuoteHandler(quoteUsecase, orderUsecase, appLogger),
		OrderHandler:      httpDelivery.NewOrderHandler(orderUsecase, appLogger),
		ProfileHandler:    httpDelivery.NewProfileHandler(profileUsecase, appLogger),
		HealthHandler:     httpDelivery.NewHealthHandler(postgresClient, appLogger),
		JWTClient:         jwtClient,
		Metrics:           appMetrics,
		AppLogger:         appLogger,
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		appLogger.Info("Service starting", "name", cfg.Application.Name, "version", cfg.Application.Version, "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	// Pending notifications are delivered before the producer closes
	if kafkaClient != nil {
		if err := kafkaClient.Flush(ctx); err != nil {
			appLogger.Warn("Error flushing notifications", "error", err)
		}
		if err := kafkaClient.Close(); err != nil {
			appLogger.Warn("Error closing Kafka client", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Warn("Error closing Redis client", "error", err)
		}
	}
	if err := postgresClient.Close(); err != nil {
		appLogger.Warn("Error closing database connection", "error", err)
	}

	appLogger.Info("Server exited")
}
