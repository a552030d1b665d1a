package usecase

import (
	"context"
	"errors"
	"fmt"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/pkg/logger"
)

// IngredientUseCase defines business operations for ingredients
type IngredientUseCase interface {
	CreateIngredient(ctx context.Context, actor model.Actor, req *procurement_service.CreateIngredientRequest) (*model.Ingredient, error)
	GetIngredient(ctx context.Context, actor model.Actor, id uint) (*model.Ingredient, error)
	ListIngredients(ctx context.Context, actor model.Actor, offset, limit int) ([]*model.Ingredient, int, error)
	UpdateIngredient(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateIngredientRequest) (*model.Ingredient, error)
	DeleteIngredient(ctx context.Context, actor model.Actor, id uint) error
	// ListSuppliersForIngredient returns the available catalog entries of an ingredient
	ListSuppliersForIngredient(ctx context.Context, actor model.Actor, id uint) ([]*model.CatalogEntry, error)
}

// ingredientUseCase implements the IngredientUseCase interface
type ingredientUseCase struct {
	repos  Repositories
	authz  policy.Authorizer
	logger logger.LoggerInterface
}

// NewIngredientUseCase creates a new instance of ingredientUseCase
func NewIngredientUseCase(repos Repositories, authz policy.Authorizer, appLogger logger.LoggerInterface) IngredientUseCase {
	return &ingredientUseCase{
		repos:  repos,
		authz:  authz,
		logger: appLogger,
	}
}

// CreateIngredient creates a new ingredient with a unique name
func (uc *ingredientUseCase) CreateIngredient(ctx context.Context, actor model.Actor, req *procurement_service.CreateIngredientRequest) (*model.Ingredient, error) {
	uc.logger.InfoContext(ctx, "Creating ingredient in usecase", "name", req.Name)
	if !uc.authz.CanPerform(actor, policy.OpManageIngredients) {
		uc.logger.WarnContext(ctx, "Actor may not manage ingredients", "actorID", actor.ID, "role", actor.Role)
		return nil, domain.ErrForbidden
	}

	ingredient := procurement_service.CreateIngredientRequestToModel(req)
	if !ingredient.Unit.Valid() {
		return nil, domain.Validation("unknown unit %q", req.Unit)
	}

	if err := uc.repos.Ingredients.Create(ctx, ingredient); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrIngredientExists
		}
		uc.logger.ErrorContext(ctx, "Failed to create ingredient in repository", "name", req.Name, "error", err)
		return nil, fmt.Errorf("error creating ingredient: %w", err)
	}

	uc.logger.InfoContext(ctx, "Ingredient created successfully in usecase", "id", ingredient.ID)
	return ingredient, nil
}

// GetIngredient retrieves an ingredient by ID
func (uc *ingredientUseCase) GetIngredient(ctx context.Context, _ model.Actor, id uint) (*model.Ingredient, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	ingredient, err := uc.repos.Ingredients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("error getting ingredient: %w", err)
	}
	return ingredient, nil
}

// ListIngredients returns a page of ingredients and the total count
func (uc *ingredientUseCase) ListIngredients(ctx context.Context, _ model.Actor, offset, limit int) ([]*model.Ingredient, int, error) {
	ingredients, total, err := uc.repos.Ingredients.List(ctx, page(offset, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing ingredients: %w", err)
	}
	return ingredients, total, nil
}

// UpdateIngredient replaces the name, brands and unit of an ingredient
func (uc *ingredientUseCase) UpdateIngredient(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateIngredientRequest) (*model.Ingredient, error) {
	uc.logger.InfoContext(ctx, "Updating ingredient in usecase", "id", id)
	if !uc.authz.CanPerform(actor, policy.OpManageIngredients) {
		return nil, domain.ErrForbidden
	}
	if id == 0 {
		return nil, domain.ErrInvalidID
	}

	ingredient, err := uc.repos.Ingredients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("error getting ingredient: %w", err)
	}

	unit := model.Unit(req.Unit)
	if !unit.Valid() {
		return nil, domain.Validation("unknown unit %q", req.Unit)
	}
	ingredient.Name = req.Name
	ingredient.Brands = req.Brands
	if ingredient.Brands == nil {
		ingredient.Brands = []string{}
	}
	ingredient.Unit = unit

	if err := uc.repos.Ingredients.Update(ctx, ingredient); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, domain.ErrIngredientExists
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrIngredientNotFound
		}
		uc.logger.ErrorContext(ctx, "Failed to update ingredient in repository", "id", id, "error", err)
		return nil, fmt.Errorf("error updating ingredient: %w", err)
	}

	uc.logger.InfoContext(ctx, "Ingredient updated successfully in usecase", "id", id)
	return ingredient, nil
}

// DeleteIngredient removes an ingredient that no open inquiry requests
func (uc *ingredientUseCase) DeleteIngredient(ctx context.Context, actor model.Actor, id uint) error {
	uc.logger.InfoContext(ctx, "Deleting ingredient in usecase", "id", id)
	if !uc.authz.CanPerform(actor, policy.OpManageIngredients) {
		return domain.ErrForbidden
	}
	if id == 0 {
		return domain.ErrInvalidID
	}

	referenced, err := uc.repos.Ingredients.IsReferencedByOpenInquiry(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking ingredient references: %w", err)
	}
	if referenced {
		uc.logger.WarnContext(ctx, "Ingredient is requested by an open inquiry", "id", id)
		return domain.ErrIngredientInUse
	}

	if err := uc.repos.Ingredients.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return domain.ErrIngredientNotFound
		case errors.Is(err, domain.ErrReferenced):
			return domain.ErrIngredientInUse
		}
		uc.logger.ErrorContext(ctx, "Failed to delete ingredient in repository", "id", id, "error", err)
		return fmt.Errorf("error deleting ingredient: %w", err)
	}

	uc.logger.InfoContext(ctx, "Ingredient deleted successfully in usecase", "id", id)
	return nil
}

// ListSuppliersForIngredient returns the suppliers currently offering an ingredient
func (uc *ingredientUseCase) ListSuppliersForIngredient(ctx context.Context, actor model.Actor, id uint) ([]*model.CatalogEntry, error) {
	if _, err := uc.GetIngredient(ctx, actor, id); err != nil {
		return nil, err
	}
	entries, err := uc.repos.Catalog.ListByIngredient(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("error listing suppliers for ingredient: %w", err)
	}
	return entries, nil
}
