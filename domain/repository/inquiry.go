package repository

import (
	"context"

	"procurement-service/domain/model"
)

// Inquiry interface defines the contract for inquiry persistence
type Inquiry interface {
	// Create inserts the inquiry together with its items
	Create(ctx context.Context, inquiry *model.Inquiry) error
	// GetByID loads an inquiry with its supplier and items, each item with its ingredient
	GetByID(ctx context.Context, id uint) (*model.Inquiry, error)
	// UpdateStatus moves an inquiry from one status to another
	// Returns domain.ErrNotFound when the inquiry is no longer in from
	UpdateStatus(ctx context.Context, id uint, from, to model.InquiryStatus) error
	// List retrieves a filtered page of inquiries, newest first, with the total count
	List(ctx context.Context, filter InquiryFilter) ([]*model.Inquiry, int, error)
}
