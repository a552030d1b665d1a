package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
)

// catalogRepository implements the Catalog repository interface using PostgreSQL
type catalogRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewCatalogRepository creates a new instance of catalogRepository
func NewCatalogRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Catalog {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

// Create registers an (ingredient, supplier) pair
func (r *catalogRepository) Create(ctx context.Context, entry *model.CatalogEntry) error {
	r.logger.InfoContext(ctx, "Creating catalog entry", "ingredientID", entry.IngredientID, "supplierID", entry.SupplierID)
	if err := conn(ctx, r.db).Omit("Ingredient", "Supplier").Create(entry).Error; err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrDuplicate) {
			r.logger.WarnContext(ctx, "Catalog entry already exists", "ingredientID", entry.IngredientID, "supplierID", entry.SupplierID)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to create catalog entry", "ingredientID", entry.IngredientID, "supplierID", entry.SupplierID, "error", err)
		return fmt.Errorf("failed to create catalog entry: %w", err)
	}
	r.logger.InfoContext(ctx, "Catalog entry created successfully", "id", entry.ID)
	return nil
}

// GetByID retrieves a catalog entry with its ingredient and supplier
func (r *catalogRepository) GetByID(ctx context.Context, id uint) (*model.CatalogEntry, error) {
	var entry model.CatalogEntry
	if err := conn(ctx, r.db).Preload("Ingredient").Preload("Supplier").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Catalog entry not found by ID", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get catalog entry by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get catalog entry: %w", err)
	}
	return &entry, nil
}

// Exists reports whether the pair is already registered
func (r *catalogRepository) Exists(ctx context.Context, ingredientID, supplierID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.CatalogEntry{}).
		Where("ingredient_id = ? AND supplier_id = ?", ingredientID, supplierID).
		Count(&count).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to check catalog entry", "ingredientID", ingredientID, "supplierID", supplierID, "error", err)
		return false, fmt.Errorf("failed to check catalog entry: %w", err)
	}
	return count > 0, nil
}

// Update saves price hint and availability
func (r *catalogRepository) Update(ctx context.Context, entry *model.CatalogEntry) error {
	r.logger.InfoContext(ctx, "Updating catalog entry", "id", entry.ID)
	result := conn(ctx, r.db).Model(entry).Select("price_hint", "available").Updates(entry)
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update catalog entry", "id", entry.ID, "error", result.Error)
		return fmt.Errorf("failed to update catalog entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete hard deletes a catalog entry
func (r *catalogRepository) Delete(ctx context.Context, id uint) error {
	r.logger.InfoContext(ctx, "Deleting catalog entry", "id", id)
	result := conn(ctx, r.db).Delete(&model.CatalogEntry{}, id)
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to delete catalog entry", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete catalog entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Catalog entry not found for deletion", "id", id)
		return domain.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Catalog entry deleted successfully", "id", id)
	return nil
}

// ListBySupplier returns the ingredients a supplier offers
func (r *catalogRepository) ListBySupplier(ctx context.Context, supplierID uint) ([]*model.CatalogEntry, error) {
	var entries []*model.CatalogEntry
	err := conn(ctx, r.db).Preload("Ingredient").
		Where("supplier_id = ?", supplierID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list catalog by supplier", "supplierID", supplierID, "error", err)
		return nil, fmt.Errorf("failed to list catalog by supplier: %w", err)
	}
	r.logger.InfoContext(ctx, "Catalog listed by supplier", "supplierID", supplierID, "count", len(entries))
	return entries, nil
}

// ListByIngredient returns the suppliers registered for an ingredient
func (r *catalogRepository) ListByIngredient(ctx context.Context, ingredientID uint, availableOnly bool) ([]*model.CatalogEntry, error) {
	query := conn(ctx, r.db).Preload("Supplier").Where("ingredient_id = ?", ingredientID)
	if availableOnly {
		query = query.Where("available = ?", true)
	}
	var entries []*model.CatalogEntry
	if err := query.Order("id ASC").Find(&entries).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to list catalog by ingredient", "ingredientID", ingredientID, "error", err)
		return nil, fmt.Errorf("failed to list catalog by ingredient: %w", err)
	}
	r.logger.InfoContext(ctx, "Catalog listed by ingredient", "ingredientID", ingredientID, "count", len(entries))
	return entries, nil
}

// OfferedIngredientIDs returns which of ingredientIDs the supplier has a catalog entry for
func (r *catalogRepository) OfferedIngredientIDs(ctx context.Context, supplierID uint, ingredientIDs []uint) ([]uint, error) {
	if len(ingredientIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := conn(ctx, r.db).Model(&model.CatalogEntry{}).
		Where("supplier_id = ? AND ingredient_id IN ?", supplierID, ingredientIDs).
		Order("ingredient_id ASC").
		Pluck("ingredient_id", &ids).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to resolve offered ingredients", "supplierID", supplierID, "error", err)
		return nil, fmt.Errorf("failed to resolve offered ingredients: %w", err)
	}
	return ids, nil
}
