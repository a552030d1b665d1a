package repository

import (
	"context"

	"procurement-service/domain/model"
)

// Catalog interface defines the contract for supplier catalog operations
type Catalog interface {
	Create(ctx context.Context, entry *model.CatalogEntry) error
	GetByID(ctx context.Context, id uint) (*model.CatalogEntry, error)
	// Exists reports whether the (ingredient, supplier) pair is registered
	Exists(ctx context.Context, ingredientID, supplierID uint) (bool, error)
	// Update saves the price hint and availability flag
	Update(ctx context.Context, entry *model.CatalogEntry) error
	// Delete hard deletes an entry
	// Returns domain.ErrNotFound when nothing was deleted
	Delete(ctx context.Context, id uint) error
	// ListBySupplier returns the entries of a supplier with their ingredient
	ListBySupplier(ctx context.Context, supplierID uint) ([]*model.CatalogEntry, error)
	// ListByIngredient returns the entries for an ingredient with their supplier
	ListByIngredient(ctx context.Context, ingredientID uint, availableOnly bool) ([]*model.CatalogEntry, error)
	// OfferedIngredientIDs returns the subset of ingredientIDs the supplier has an entry for
	OfferedIngredientIDs(ctx context.Context, supplierID uint, ingredientIDs []uint) ([]uint, error)
}
