package repository

import (
	"context"

	"procurement-service/domain/model"
)

// Ingredient interface defines the contract for ingredient-related database operations
type Ingredient interface {
	// Create adds a new ingredient
	// Returns domain.ErrDuplicate when the name is taken
	Create(ctx context.Context, ingredient *model.Ingredient) error
	// GetByID retrieves an ingredient by its identifier
	GetByID(ctx context.Context, id uint) (*model.Ingredient, error)
	// GetByIDs retrieves every ingredient whose id is in ids, ordered by id
	GetByIDs(ctx context.Context, ids []uint) ([]*model.Ingredient, error)
	// Update saves name, brands and unit
	Update(ctx context.Context, ingredient *model.Ingredient) error
	// Delete removes an ingredient permanently
	Delete(ctx context.Context, id uint) error
	// List retrieves a page of ingredients ordered by name along with the total count
	List(ctx context.Context, page Page) ([]*model.Ingredient, int, error)
	// IsReferencedByOpenInquiry reports whether an open inquiry requests the ingredient
	IsReferencedByOpenInquiry(ctx context.Context, id uint) (bool, error)
}
