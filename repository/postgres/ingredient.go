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

// ingredientRepository implements the Ingredient repository interface using PostgreSQL
type ingredientRepository struct {
	// db is the GORM database instance for database operations
	db *gorm.DB
	// logger is used for logging operations within the repository
	logger logger.LoggerInterface
}

// NewIngredientRepository creates a new instance of ingredientRepository
func NewIngredientRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Ingredient {
	return &ingredientRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new ingredient to the database
func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	r.logger.InfoContext(ctx, "Creating ingredient", "name", ingredient.Name)
	if err := conn(ctx, r.db).Create(ingredient).Error; err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrDuplicate) {
			r.logger.WarnContext(ctx, "Ingredient name already taken", "name", ingredient.Name)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to create ingredient", "name", ingredient.Name, "error", err)
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	r.logger.InfoContext(ctx, "Ingredient created successfully", "id", ingredient.ID, "name", ingredient.Name)
	return nil
}

// GetByID retrieves an ingredient by its unique identifier
func (r *ingredientRepository) GetByID(ctx context.Context, id uint) (*model.Ingredient, error) {
	r.logger.InfoContext(ctx, "Getting ingredient by ID", "id", id)
	var ingredient model.Ingredient
	if err := conn(ctx, r.db).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Ingredient not found by ID", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get ingredient by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ingredient, nil
}

// GetByIDs retrieves every ingredient whose id is in ids
func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uint) ([]*model.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []*model.Ingredient
	if err := conn(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&ingredients).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get ingredients by IDs", "ids", ids, "error", err)
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return ingredients, nil
}

// Update modifies name, brands and unit of an existing ingredient
func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	r.logger.InfoContext(ctx, "Updating ingredient", "id", ingredient.ID, "name", ingredient.Name)
	result := conn(ctx, r.db).Model(ingredient).Select("name", "brands", "unit").Updates(ingredient)
	if err := result.Error; err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrDuplicate) {
			r.logger.WarnContext(ctx, "Ingredient name already taken", "id", ingredient.ID, "name", ingredient.Name)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to update ingredient", "id", ingredient.ID, "error", err)
		return fmt.Errorf("failed to update ingredient: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Ingredient updated successfully", "id", ingredient.ID)
	return nil
}

// Delete removes an ingredient and its catalog entries permanently
func (r *ingredientRepository) Delete(ctx context.Context, id uint) error {
	r.logger.InfoContext(ctx, "Deleting ingredient", "id", id)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&model.CatalogEntry{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Ingredient{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrReferenced) {
			r.logger.WarnContext(ctx, "Ingredient could not be deleted", "id", id, "reason", err)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to delete ingredient", "id", id, "error", err)
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	r.logger.InfoContext(ctx, "Ingredient deleted successfully", "id", id)
	return nil
}

// List retrieves a paginated list of ingredients ordered by name
// Returns the page and the real total count
func (r *ingredientRepository) List(ctx context.Context, page repository.Page) ([]*model.Ingredient, int, error) {
	r.logger.InfoContext(ctx, "Listing ingredients", "offset", page.Offset, "limit", page.Limit)
	var ingredients []*model.Ingredient
	var total int64

	if err := conn(ctx, r.db).Model(&model.Ingredient{}).Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count ingredients", "error", err)
		return nil, 0, fmt.Errorf("failed to count ingredients: %w", err)
	}

	if err := conn(ctx, r.db).Scopes(paginate(page)).Order("name ASC").Find(&ingredients).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to list ingredients", "error", err)
		return nil, 0, fmt.Errorf("failed to list ingredients: %w", err)
	}

	r.logger.InfoContext(ctx, "Ingredients listed successfully", "count", len(ingredients), "total", total)
	return ingredients, int(total), nil
}

// IsReferencedByOpenInquiry reports whether any open inquiry requests the ingredient
func (r *ingredientRepository) IsReferencedByOpenInquiry(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.InquiryItem{}).
		Joins("JOIN inquiries ON inquiries.id = inquiry_items.inquiry_id").
		Where("inquiry_items.ingredient_id = ? AND inquiries.status = ?", id, string(model.InquiryOpen)).
		Count(&count).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to check ingredient references", "id", id, "error", err)
		return false, fmt.Errorf("failed to check ingredient references: %w", err)
	}
	return count > 0, nil
}
