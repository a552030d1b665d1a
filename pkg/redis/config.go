package redis

import "time"

// Config describes the connection of the lock store
type Config struct {
	// Addrs with more than one entry select cluster or sentinel mode
	Addrs    []string
	Username string
	Password string
	DB       int
	PoolSize int
	// Timeouts left at zero keep the defaults of New
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
