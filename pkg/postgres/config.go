package postgres

// Config holds the PostgreSQL connection and pool settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Schema   string
	SSLMode  string
	// MaxIdleConns and MaxOpenConns are left to database/sql defaults when zero
	MaxIdleConns int
	MaxOpenConns int
	// ConnMaxIdleTime and ConnMaxLifetime are expressed in minutes
	ConnMaxIdleTime int
	ConnMaxLifetime int
	// Debug switches gorm to statement logging
	Debug bool
	// ConnectTimeout is expressed in seconds
	ConnectTimeout int
}
