// Package config handles application configuration loading and management
package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"procurement-service/pkg/postgres"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g.
// PROCUREMENT_INFRASTRUCTURE_POSTGRES_PASSWORD
const EnvPrefix = "PROCUREMENT"

// Config holds the entire application configuration
type Config struct {
	// Application contains application-level settings
	Application ApplicationConfig `mapstructure:"application"`
	// Server contains HTTP server settings
	Server ServerConfig `mapstructure:"server"`
	// Infrastructure contains infrastructure connection settings
	Infrastructure InfrastructureConfig `mapstructure:"infrastructure"`
	// Security contains security-related settings
	Security SecurityConfig `mapstructure:"security"`
}

// ApplicationConfig holds the application-level configuration
type ApplicationConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	// Port specifies the port number the server will listen on
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // in seconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // in seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // in seconds
}

// InfrastructureConfig holds the infrastructure configuration
type InfrastructureConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// SecurityConfig holds the security configuration
type SecurityConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds the settings used to validate caller tokens
type JWTConfig struct {
	// AccessTokenSecret is the secret key for signing access tokens
	AccessTokenSecret string `mapstructure:"access_token_secret"`
	// AccessTokenExpiry is the expiry time for access tokens in minutes
	AccessTokenExpiry int    `mapstructure:"access_token_expiry"`
	Issuer            string `mapstructure:"issuer"`
}

// RedisConfig holds the Redis configuration backing the resource locks
type RedisConfig struct {
	// Enabled switches the distributed locks on. When off, only the
	// database unique constraints guard concurrent quote and order writes.
	Enabled  bool     `mapstructure:"enabled"`
	Addrs    []string `mapstructure:"addrs"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`
	PoolSize int      `mapstructure:"pool_size"`
	// LockTTL bounds how long a crashed holder can block a resource, in seconds
	LockTTL int `mapstructure:"lock_ttl"`
	// LockPrefix namespaces lock keys
	LockPrefix string `mapstructure:"lock_prefix"`
}

// KafkaConfig holds the Kafka configuration of the notification producer
type KafkaConfig struct {
	// Enabled switches notification publishing on
	Enabled  bool        `mapstructure:"enabled"`
	Brokers  []string    `mapstructure:"brokers"`
	ClientID string      `mapstructure:"client_id"`
	Topics   KafkaTopics `mapstructure:"topics"`
}

// KafkaTopics holds the topic of every notification event
type KafkaTopics struct {
	InquiryCreated string `mapstructure:"inquiry_created"`
	OrderPlaced    string `mapstructure:"order_placed"`
}

// PostgresConfig holds the PostgreSQL database configuration
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Schema   string `mapstructure:"schema"`
	SSLMode  string `mapstructure:"sslmode"`
	// MaxIdleConns specifies the maximum number of idle connections in the pool
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// MaxOpenConns specifies the maximum number of open connections to the database
	MaxOpenConns    int  `mapstructure:"max_open_conns"`
	ConnMaxIdleTime int  `mapstructure:"conn_max_idle_time"` // in minutes
	ConnMaxLifetime int  `mapstructure:"conn_max_lifetime"`  // in minutes
	ConnectTimeout  int  `mapstructure:"connect_timeout"`    // in seconds
	Debug           bool `mapstructure:"debug"`
	// IsUseMigrate runs gorm AutoMigrate for every model on startup
	IsUseMigrate bool `mapstructure:"is_use_migrate"`
}

// ClientConfig converts the section into the settings of pkg/postgres
func (p PostgresConfig) ClientConfig() postgres.Config {
	return postgres.Config{
		Host:            p.Host,
		Port:            p.Port,
		User:            p.User,
		Password:        p.Password,
		DBName:          p.DBName,
		Schema:          p.Schema,
		SSLMode:         p.SSLMode,
		MaxIdleConns:    p.MaxIdleConns,
		MaxOpenConns:    p.MaxOpenConns,
		ConnMaxIdleTime: p.ConnMaxIdleTime,
		ConnMaxLifetime: p.ConnMaxLifetime,
		Debug:           p.Debug,
		ConnectTimeout:  p.ConnectTimeout,
	}
}

// LoadConfig loads the application configuration from a procurement.yaml
// file, a .env file and PROCUREMENT_* environment variables, in increasing
// order of precedence. A missing file falls back to defaults.
func LoadConfig() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	v.SetConfigName("procurement")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, err
		}
		log.Println("Config file not found, using environment variables and defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.name", "Procurement Service")
	v.SetDefault("application.version", "1.0")
	v.SetDefault("application.log_level", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)     // seconds
	v.SetDefault("server.write_timeout", 15)    // seconds
	v.SetDefault("server.shutdown_timeout", 30) // seconds
	v.SetDefault("infrastructure.postgres.host", "localhost")
	v.SetDefault("infrastructure.postgres.port", 5432)
	// No defaults for user and password - they must be provided
	v.SetDefault("infrastructure.postgres.user", "")
	v.SetDefault("infrastructure.postgres.password", "")
	v.SetDefault("infrastructure.postgres.dbname", "procurement")
	v.SetDefault("infrastructure.postgres.schema", "public")
	v.SetDefault("infrastructure.postgres.sslmode", "disable")
	v.SetDefault("infrastructure.postgres.max_idle_conns", 10)
	v.SetDefault("infrastructure.postgres.max_open_conns", 50)
	v.SetDefault("infrastructure.postgres.conn_max_idle_time", 5) // minutes
	v.SetDefault("infrastructure.postgres.conn_max_lifetime", 60) // minutes
	v.SetDefault("infrastructure.postgres.connect_timeout", 5)    // seconds
	v.SetDefault("infrastructure.postgres.debug", false)
	v.SetDefault("infrastructure.postgres.is_use_migrate", true)
	v.SetDefault("infrastructure.redis.enabled", true)
	v.SetDefault("infrastructure.redis.addrs", []string{"localhost:6379"})
	v.SetDefault("infrastructure.redis.username", "")
	v.SetDefault("infrastructure.redis.password", "")
	v.SetDefault("infrastructure.redis.db", 0)
	v.SetDefault("infrastructure.redis.pool_size", 10)
	v.SetDefault("infrastructure.redis.lock_ttl", 10) // seconds
	v.SetDefault("infrastructure.redis.lock_prefix", "procurement:lock:")
	v.SetDefault("infrastructure.kafka.enabled", true)
	v.SetDefault("infrastructure.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("infrastructure.kafka.client_id", "procurement-service")
	v.SetDefault("infrastructure.kafka.topics.inquiry_created", "procurement.inquiry.created")
	v.SetDefault("infrastructure.kafka.topics.order_placed", "procurement.order.placed")
	// No default for the JWT secret - it must be provided via config or env
	v.SetDefault("security.jwt.access_token_secret", "")
	v.SetDefault("security.jwt.access_token_expiry", 15) // minutes
	v.SetDefault("security.jwt.issuer", "procurement-service")
}

func (c *Config) validate() error {
	if c.Security.JWT.AccessTokenSecret == "" {
		return errors.New("JWT access token secret is required")
	}
	if c.Infrastructure.Postgres.User == "" {
		return errors.New("database user is required")
	}
	if c.Infrastructure.Postgres.Password == "" {
		return errors.New("database password is required")
	}
	if c.Infrastructure.Redis.Enabled && len(c.Infrastructure.Redis.Addrs) == 0 {
		return errors.New("redis addrs are required when redis is enabled")
	}
	if c.Infrastructure.Kafka.Enabled && len(c.Infrastructure.Kafka.Brokers) == 0 {
		return errors.New("kafka brokers are required when kafka is enabled")
	}
	return nil
}
