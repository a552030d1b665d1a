package repository

import (
	"context"
	"time"

	"procurement-service/domain/model"
)

// Quote interface defines the contract for quote persistence
type Quote interface {
	// Create inserts the quote together with its items
	// Returns domain.ErrDuplicate when the inquiry already has a quote
	Create(ctx context.Context, quote *model.Quote) error
	// GetByID loads a quote with its inquiry and items. Each item carries its
	// inquiry item and that item's ingredient.
	GetByID(ctx context.Context, id uint) (*model.Quote, error)
	GetByInquiryID(ctx context.Context, inquiryID uint) (*model.Quote, error)
	// MarkOrderPlaced moves a quoted quote to order_placed and records the acceptor
	// Returns domain.ErrNotFound when the quote is not in the quoted status
	MarkOrderPlaced(ctx context.Context, id, acceptedBy uint, at time.Time) error
	// UpdateStatus moves a quote from one status to another
	// Returns domain.ErrNotFound when the quote is not in the from status
	UpdateStatus(ctx context.Context, id uint, from, to model.QuoteStatus) error
	// Delete hard deletes a quote and its items. Orders keep their snapshot
	// and lose only the back references.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter QuoteFilter) ([]*model.Quote, int, error)
}
