package repository

import (
	"context"

	"procurement-service/domain/model"
)

// SupplierProfile interface defines the contract for supplier profile persistence
type SupplierProfile interface {
	// Create inserts a profile
	// Returns domain.ErrDuplicate when the account already has one
	Create(ctx context.Context, profile *model.SupplierProfile) error
	GetByID(ctx context.Context, id uint) (*model.SupplierProfile, error)
	// GetByUserID retrieves the profile linked to a supplier account
	GetByUserID(ctx context.Context, userID uint) (*model.SupplierProfile, error)
	// Update saves the editable contact and payment fields
	Update(ctx context.Context, profile *model.SupplierProfile) error
}
