// Package postgres provides PostgreSQL database infrastructure components
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresClient defines the interface for PostgreSQL database operations
// It provides methods for database migration, health checks, getting the database instance, and closing connections
type PostgresClient interface {
	// Migrate runs auto-migration for all models
	// Returns an error if the migration fails
	Migrate(dst ...any) error
	// Ping verifies the connection is alive within the deadline carried by ctx
	Ping(ctx context.Context) error
	// GetDB returns the underlying gorm.DB instance
	GetDB() *gorm.DB
	// Close closes the database connection
	Close() error
}

type postgresClient struct {
	DB *gorm.DB
}

// DSN builds the libpq style connection string for cfg
func DSN(cfg Config) string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s search_path=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.Schema, cfg.SSLMode)
	if cfg.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", cfg.ConnectTimeout)
	}
	return dsn
}

// NewPostgresClient creates a new database client based on the configuration
// Returns a PostgresClient interface and an error if initialization fails
func NewPostgresClient(cfg Config) (PostgresClient, error) {
	return NewWithDialector(postgres.Open(DSN(cfg)), cfg)
}

// NewWithDialector opens a client over an arbitrary gorm dialector and applies
// the pool settings of cfg. Driver errors are translated so that unique
// violations surface as gorm.ErrDuplicatedKey.
func NewWithDialector(dialector gorm.Dialector, cfg Config) (PostgresClient, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	dbSQL, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.MaxIdleConns > 0 {
		dbSQL.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		dbSQL.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	dbSQL.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	dbSQL.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := dbSQL.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &postgresClient{DB: db}, nil
}

// Migrate runs auto-migration for all models
func (c *postgresClient) Migrate(dst ...any) error {
	if err := c.DB.AutoMigrate(dst...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

// Ping checks the connection
func (c *postgresClient) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// GetDB returns the underlying gorm.DB instance
func (c *postgresClient) GetDB() *gorm.DB {
	return c.DB
}

// Close closes the database connection
func (c *postgresClient) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
