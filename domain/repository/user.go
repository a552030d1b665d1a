package repository

import (
	"context"

	"procurement-service/domain/model"
)

// User interface defines read access to login accounts
type User interface {
	// GetByID retrieves a user by their unique identifier
	// Returns domain.ErrNotFound when no such account exists
	GetByID(ctx context.Context, id uint) (*model.User, error)
	// GetByIDs retrieves every user whose id is in ids, ordered by id
	GetByIDs(ctx context.Context, ids []uint) ([]*model.User, error)
	// ListSuppliersWithoutProfile returns supplier accounts that have no supplier profile
	ListSuppliersWithoutProfile(ctx context.Context) ([]*model.User, error)
}
