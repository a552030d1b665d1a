// Package postgres provides the gorm implementation of the procurement repositories
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"procurement-service/domain"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
)

type txKey struct{}

// conn returns the transaction carried by ctx, or db when there is none
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translateError maps gorm sentinels onto the repository errors of the domain
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrReferenced
	}
	return err
}

func paginate(page repository.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Limit <= 0 {
			return db
		}
		return db.Offset(page.Offset).Limit(page.Limit)
	}
}

func orderByID(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id ASC")
	}
}

type transactor struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewTransactor creates the unit-of-work runner shared by all repositories
func NewTransactor(db *gorm.DB, logger logger.LoggerInterface) repository.Transactor {
	return &transactor{
		db:     db,
		logger: logger,
	}
}

// ExecuteInTransaction executes a function within a database transaction
// The function receives a transaction context that should be used for all operations
func (t *transactor) ExecuteInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	t.logger.DebugContext(ctx, "Executing operation in transaction")
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
