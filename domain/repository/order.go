package repository

import (
	"context"

	"procurement-service/domain/model"
)

// Order interface defines the contract for order persistence
type Order interface {
	// Create inserts the order header only
	// Returns domain.ErrDuplicate when the quote already has an order
	Create(ctx context.Context, order *model.Order) error
	// CreateItems bulk inserts order lines
	CreateItems(ctx context.Context, items []*model.OrderItem) error
	// GetByID loads an order with its supplier profile and items
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	GetByQuoteID(ctx context.Context, quoteID uint) (*model.Order, error)
	// Update saves status, timestamps, tracking number and notes of an order
	// still in status from. Returns domain.ErrNotFound otherwise.
	Update(ctx context.Context, order *model.Order, from model.OrderStatus) error
	List(ctx context.Context, filter OrderFilter) ([]*model.Order, int, error)
}
