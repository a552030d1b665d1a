// Package usecase contains the business logic of the procurement pipeline
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/redis"
)

// Metric operation names recorded by the usecases
const (
	opInquiryCreated     = "inquiry_created"
	opQuoteSubmitted     = "quote_submitted"
	opOrderPlaced        = "order_placed"
	opProfileSelfHealed  = "profile_self_healed"
	defaultListLimit     = 20
	maxListLimit         = 100
	defaultLockTTL       = 10 * time.Second
	lockReleaseTimeout   = 2 * time.Second
	lockKeyInquiryFormat = "inquiry:%d"
	lockKeyQuoteFormat   = "quote:%d"
	lockKeyOrderFormat   = "order:%d"
)

// Repositories bundles the storage interfaces the usecases depend on
type Repositories struct {
	Transactor  repository.Transactor
	Users       repository.User
	Ingredients repository.Ingredient
	Catalog     repository.Catalog
	Inquiries   repository.Inquiry
	Quotes      repository.Quote
	Orders      repository.Order
	Profiles    repository.SupplierProfile
}

// BatchResult is the outcome of a fan-out operation where some units may fail
type BatchResult[T any] struct {
	Created []T
	Errors  []string
}

// lockGuard serializes work on one resource across service instances
type lockGuard struct {
	locker redis.Locker
	ttl    time.Duration
	logger logger.LoggerInterface
}

func newLockGuard(locker redis.Locker, ttl time.Duration, appLogger logger.LoggerInterface) lockGuard {
	if locker == nil {
		locker = redis.NoopLocker{}
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return lockGuard{locker: locker, ttl: ttl, logger: appLogger}
}

// run executes fn while holding key. A held lock fails fast with
// ErrOperationInProgress.
func (g lockGuard) run(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	release, err := g.locker.Acquire(ctx, key, g.ttl)
	if err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			g.logger.WarnContext(ctx, "Resource is locked by another request", "key", key)
			return domain.ErrOperationInProgress
		}
		g.logger.ErrorContext(ctx, "Failed to acquire lock", "key", key, "error", err)
		return fmt.Errorf("error acquiring lock: %w", err)
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lockReleaseTimeout)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			g.logger.WarnContext(ctx, "Failed to release lock", "key", key, "error", err)
		}
	}()
	return fn(ctx)
}

// transitionError explains why actor may not move res from one status to
// another, or returns nil when the move is allowed
func transitionError(authz policy.Authorizer, actor model.Actor, res policy.Resource, from, to string) error {
	if authz.CanTransition(actor, res, from, to) {
		return nil
	}
	if !authz.CanAccess(actor, res.OwnerID) {
		return domain.ErrForbidden
	}
	// the edge exists but the role may not take it
	if authz.CanTransition(model.Actor{Role: model.RoleAdmin}, res, from, to) {
		return domain.ErrForbidden
	}
	return domain.ErrInvalidTransition
}

// page clamps listing bounds
func page(offset, limit int) repository.Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return repository.Page{Offset: offset, Limit: limit}
}

// ownerScope returns nil for actors who may see every supplier's records and
// the actor's own id otherwise
func ownerScope(authz policy.Authorizer, actor model.Actor) *uint {
	if authz.CanPerform(actor, policy.OpViewAll) {
		return nil
	}
	id := actor.ID
	return &id
}

// uniqueIDs drops duplicates and keeps the first occurrence order
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
