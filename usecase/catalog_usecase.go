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

// CatalogUseCase defines the catalog registry operations
type CatalogUseCase interface {
	// AddEntries registers the cross product of ingredients and suppliers,
	// skipping pairs that already exist. Individual pair failures are
	// reported in the result instead of failing the whole call.
	AddEntries(ctx context.Context, actor model.Actor, req *procurement_service.AddCatalogEntriesRequest) (*BatchResult[*model.CatalogEntry], error)
	UpdateEntry(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateCatalogEntryRequest) (*model.CatalogEntry, error)
	RemoveEntry(ctx context.Context, actor model.Actor, id uint) error
	ListBySupplier(ctx context.Context, actor model.Actor, supplierID uint) ([]*model.CatalogEntry, error)
	ListByIngredient(ctx context.Context, actor model.Actor, ingredientID uint) ([]*model.CatalogEntry, error)
}

type catalogUseCase struct {
	repos  Repositories
	authz  policy.Authorizer
	logger logger.LoggerInterface
}

// NewCatalogUseCase creates a new instance of catalogUseCase
func NewCatalogUseCase(repos Repositories, authz policy.Authorizer, appLogger logger.LoggerInterface) CatalogUseCase {
	return &catalogUseCase{
		repos:  repos,
		authz:  authz,
		logger: appLogger,
	}
}

func (uc *catalogUseCase) AddEntries(ctx context.Context, actor model.Actor, req *procurement_service.AddCatalogEntriesRequest) (*BatchResult[*model.CatalogEntry], error) {
	ingredientIDs := uniqueIDs(req.IngredientIDs)
	supplierIDs := uniqueIDs(req.SupplierIDs)
	uc.logger.InfoContext(ctx, "Adding catalog entries in usecase", "ingredients", len(ingredientIDs), "suppliers", len(supplierIDs))
	if !uc.authz.CanPerform(actor, policy.OpManageCatalog) {
		return nil, domain.ErrForbidden
	}
	if len(ingredientIDs) == 0 || len(supplierIDs) == 0 {
		return nil, domain.Validation("at least one ingredient and one supplier are required")
	}

	ingredients, err := uc.repos.Ingredients.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading ingredients: %w", err)
	}
	if len(ingredients) != len(ingredientIDs) {
		uc.logger.WarnContext(ctx, "Some ingredients do not exist", "requested", len(ingredientIDs), "found", len(ingredients))
		return nil, domain.ErrIngredientNotFound
	}
	suppliers, err := uc.repos.Users.GetByIDs(ctx, supplierIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading suppliers: %w", err)
	}
	if len(suppliers) != len(supplierIDs) {
		uc.logger.WarnContext(ctx, "Some suppliers do not exist", "requested", len(supplierIDs), "found", len(suppliers))
		return nil, domain.ErrSupplierNotFound
	}
	for _, supplier := range suppliers {
		if !supplier.IsSupplier() {
			uc.logger.WarnContext(ctx, "Catalog target is not a supplier", "userID", supplier.ID, "role", supplier.Role)
			return nil, domain.ErrSupplierNotFound
		}
	}

	ingredientByID := make(map[uint]*model.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		ingredientByID[ingredient.ID] = ingredient
	}
	supplierByID := make(map[uint]*model.User, len(suppliers))
	for _, supplier := range suppliers {
		supplierByID[supplier.ID] = supplier
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	result := &BatchResult[*model.CatalogEntry]{Created: []*model.CatalogEntry{}, Errors: []string{}}
	for _, ingredientID := range ingredientIDs {
		for _, supplierID := range supplierIDs {
			exists, err := uc.repos.Catalog.Exists(ctx, ingredientID, supplierID)
			if err != nil {
				uc.logger.ErrorContext(ctx, "Failed to check catalog pair", "ingredientID", ingredientID, "supplierID", supplierID, "error", err)
				result.Errors = append(result.Errors, fmt.Sprintf("Ingredient %d / supplier %d: %v", ingredientID, supplierID, err))
				continue
			}
			if exists {
				continue
			}
			entry := &model.CatalogEntry{
				IngredientID: ingredientID,
				SupplierID:   supplierID,
				PriceHint:    req.PriceHint,
				Available:    available,
			}
			if err := uc.repos.Catalog.Create(ctx, entry); err != nil {
				// a concurrent request registered the same pair
				if errors.Is(err, domain.ErrDuplicate) {
					continue
				}
				result.Errors = append(result.Errors, fmt.Sprintf("Ingredient %d / supplier %d: %v", ingredientID, supplierID, err))
				continue
			}
			entry.Ingredient = *ingredientByID[ingredientID]
			entry.Supplier = *supplierByID[supplierID]
			result.Created = append(result.Created, entry)
		}
	}

	uc.logger.InfoContext(ctx, "Catalog entries processed", "created", len(result.Created), "errors", len(result.Errors))
	return result, nil
}

// UpdateEntry changes price hint and availability. Suppliers may only edit their own entries.
func (uc *catalogUseCase) UpdateEntry(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateCatalogEntryRequest) (*model.CatalogEntry, error) {
	uc.logger.InfoContext(ctx, "Updating catalog entry in usecase", "id", id)
	if !uc.authz.CanPerform(actor, policy.OpUpdateCatalogEntry) {
		return nil, domain.ErrForbidden
	}
	entry, err := uc.repos.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCatalogEntryNotFound
		}
		return nil, fmt.Errorf("error getting catalog entry: %w", err)
	}
	if !uc.authz.CanAccess(actor, entry.SupplierID) {
		uc.logger.WarnContext(ctx, "Actor does not own catalog entry", "id", id, "actorID", actor.ID)
		return nil, domain.ErrForbidden
	}

	if req.PriceHint != nil {
		entry.PriceHint = req.PriceHint
	}
	if req.Available != nil {
		entry.Available = *req.Available
	}
	if err := uc.repos.Catalog.Update(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCatalogEntryNotFound
		}
		return nil, fmt.Errorf("error updating catalog entry: %w", err)
	}
	return entry, nil
}

// RemoveEntry hard deletes a catalog entry
func (uc *catalogUseCase) RemoveEntry(ctx context.Context, actor model.Actor, id uint) error {
	uc.logger.InfoContext(ctx, "Removing catalog entry in usecase", "id", id)
	if !uc.authz.CanPerform(actor, policy.OpManageCatalog) {
		return domain.ErrForbidden
	}
	if err := uc.repos.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCatalogEntryNotFound
		}
		return fmt.Errorf("error deleting catalog entry: %w", err)
	}
	return nil
}

func (uc *catalogUseCase) ListBySupplier(ctx context.Context, actor model.Actor, supplierID uint) ([]*model.CatalogEntry, error) {
	if !uc.authz.CanAccess(actor, supplierID) {
		return nil, domain.ErrForbidden
	}
	entries, err := uc.repos.Catalog.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("error listing catalog: %w", err)
	}
	return entries, nil
}

func (uc *catalogUseCase) ListByIngredient(ctx context.Context, actor model.Actor, ingredientID uint) ([]*model.CatalogEntry, error) {
	if !uc.authz.CanPerform(actor, policy.OpViewAll) {
		return nil, domain.ErrForbidden
	}
	entries, err := uc.repos.Catalog.ListByIngredient(ctx, ingredientID, false)
	if err != nil {
		return nil, fmt.Errorf("error listing catalog: %w", err)
	}
	return entries, nil
}
