package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrLockNotAcquired is returned when another holder owns the key
var ErrLockNotAcquired = errors.New("lock not acquired")

// ReleaseFunc releases a previously acquired lock
type ReleaseFunc func(ctx context.Context) error

// Locker hands out short-lived exclusive locks keyed by name
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error)
}

// RedisLocker implements Locker with SET NX PX and a token-checked release
type RedisLocker struct {
	client   RedisClient
	prefix   string
	newToken func() string
}

// NewLocker creates a Locker that namespaces keys with prefix
func NewLocker(client RedisClient, prefix string) *RedisLocker {
	return &RedisLocker{
		client:   client,
		prefix:   prefix,
		newToken: func() string { return ulid.Make().String() },
	}
}

// Acquire takes the lock or fails fast with ErrLockNotAcquired
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error) {
	fullKey := l.prefix + key
	token := l.newToken()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}

	return func(ctx context.Context) error {
		// A false result means the lock expired and may belong to someone else
		// now; it is left alone.
		if _, err := l.client.CompareAndDelete(ctx, fullKey, token); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", fullKey, err)
		}
		return nil
	}, nil
}

// NoopLocker grants every lock. Used when Redis is disabled and in tests.
type NoopLocker struct{}

// Acquire always succeeds
func (NoopLocker) Acquire(_ context.Context, _ string, _ time.Duration) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
