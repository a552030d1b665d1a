// Package redis wraps go-redis with the options pattern and a distributed lock
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// compareAndDeleteScript deletes the key only while it still holds the
// expected value
const compareAndDeleteScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RedisClient is the subset of Redis the lock store needs
type RedisClient interface {
	// SetNX stores value under key for ttl unless the key already exists
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// CompareAndDelete removes key when it holds value and reports whether it did
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
	GetClient() redis.UniversalClient
}

// Option is a function that configures a Client
type Option func(*Client)

// Client represents a Redis client wrapper
type Client struct {
	opts   *redis.UniversalOptions
	client redis.UniversalClient
}

// New creates a new Redis client with the provided options and pings it
// within the dial timeout
func New(opts ...Option) (RedisClient, error) {
	c := &Client{
		opts: &redis.UniversalOptions{
			Addrs:        []string{"localhost:6379"},
			DialTimeout:  5 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			PoolSize:     10,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = redis.NewUniversalClient(c.opts)

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.DialTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = c.client.Close()
		return nil, err
	}
	return c, nil
}

// NewWithConfig creates a new Redis client from a config struct. Zero
// values keep the defaults of New.
func NewWithConfig(config Config) (RedisClient, error) {
	opts := []Option{
		WithAddrs(config.Addrs),
		WithUsername(config.Username),
		WithPassword(config.Password),
		WithDB(config.DB),
	}
	if config.PoolSize > 0 {
		opts = append(opts, WithPoolSize(config.PoolSize))
	}
	if config.DialTimeout > 0 {
		opts = append(opts, WithDialTimeout(config.DialTimeout))
	}
	if config.ReadTimeout > 0 {
		opts = append(opts, WithReadTimeout(config.ReadTimeout))
	}
	if config.WriteTimeout > 0 {
		opts = append(opts, WithWriteTimeout(config.WriteTimeout))
	}
	return New(opts...)
}

// NewFromClient wraps an existing go-redis client, e.g. one produced by redismock
func NewFromClient(client redis.UniversalClient) RedisClient {
	return &Client{opts: &redis.UniversalOptions{}, client: client}
}

func (r *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, value, ttl).Result()
}

func (r *Client) CompareAndDelete(ctx context.Context, key, value string) (bool, error) {
	deleted, err := r.client.Eval(ctx, compareAndDeleteScript, []string{key}, value).Int64()
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}

// Ping checks the connection
func (r *Client) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (r *Client) Close() error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Client) GetClient() redis.UniversalClient {
	return r.client
}
