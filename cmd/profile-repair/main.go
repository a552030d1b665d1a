// Command profile-repair creates the missing supplier profile of every
// supplier account and reports the accounts it could not repair
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"procurement-service/config"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
	"procurement-service/pkg/postgres"
	pgRepository "procurement-service/repository/postgres"
	"procurement-service/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	adminID := flag.Uint("admin-id", 0, "id of the admin account the repair runs as")
	flag.Parse()

	appLogger := logger.NewWithOptions(logger.WithService("profile-repair"))

	if *adminID == 0 {
		appLogger.Error("The -admin-id flag is required")
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Error("Failed to load configuration", "error", err)
		return 1
	}

	postgresClient, err := postgres.NewPostgresClient(cfg.Infrastructure.Postgres.ClientConfig())
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		return 1
	}
	defer func() {
		if err := postgresClient.Close(); err != nil {
			appLogger.Warn("Error closing database connection", "error", err)
		}
	}()

	db := postgresClient.GetDB()
	repos := usecase.Repositories{
		Transactor: pgRepository.NewTransactor(db, appLogger),
		Users:      pgRepository.NewUserRepository(db, appLogger),
		Profiles:   pgRepository.NewSupplierProfileRepository(db, appLogger),
	}
	profiles := usecase.NewSupplierProfileUseCase(repos, policy.New(), metrics.Noop{}, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	actor := model.Actor{ID: *adminID, Role: model.RoleAdmin}
	result, err := profiles.RepairMissingProfiles(ctx, actor)
	if err != nil {
		appLogger.Error("Profile repair failed", "error", err)
		return 1
	}

	for _, msg := range result.Errors {
		appLogger.Warn("Profile not repaired", "reason", msg)
	}
	appLogger.Info("Profile repair complete", "repaired", len(result.Created), "errors", len(result.Errors))
	if len(result.Errors) > 0 {
		return 1
	}
	return 0
}
