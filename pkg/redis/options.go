package redis

import (
	"time"
)

// WithAddrs sets the server addresses; more than one selects cluster or sentinel mode
func WithAddrs(addrs []string) Option {
	return func(c *Client) {
		if len(addrs) > 0 {
			c.opts.Addrs = addrs
		}
	}
}

// WithUsername sets the ACL username
func WithUsername(username string) Option {
	return func(c *Client) { c.opts.Username = username }
}

// WithPassword sets the password
func WithPassword(password string) Option {
	return func(c *Client) { c.opts.Password = password }
}

// WithDB selects the logical database
func WithDB(db int) Option {
	return func(c *Client) { c.opts.DB = db }
}

// WithPoolSize sets the connection pool size
func WithPoolSize(poolSize int) Option {
	return func(c *Client) { c.opts.PoolSize = poolSize }
}

// WithDialTimeout sets the dial timeout, also used for the startup ping
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) { c.opts.DialTimeout = d }
}

// WithReadTimeout sets the socket read timeout
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) { c.opts.ReadTimeout = d }
}

// WithWriteTimeout sets the socket write timeout
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Client) { c.opts.WriteTimeout = d }
}
