package http

import (
	"net/http"

	"procurement-service/contracts/procurement_service"
	"procurement-service/pkg/logger"
	"procurement-service/usecase"
)

// IngredientHandler handles HTTP requests for ingredient administration
type IngredientHandler struct {
	base
	// IngredientUseCase contains business logic for ingredient operations
	IngredientUseCase usecase.IngredientUseCase
}

// NewIngredientHandler creates a new instance of IngredientHandler
func NewIngredientHandler(ingredientUseCase usecase.IngredientUseCase, appLogger logger.LoggerInterface) *IngredientHandler {
	return &IngredientHandler{
		base:              newBase(appLogger),
		IngredientUseCase: ingredientUseCase,
	}
}

// CreateHandler handles HTTP requests to create a new ingredient
// Returns a 201 status code with the created ingredient on success
// Returns a 409 status code when the name is already taken
func (h *IngredientHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req procurement_service.CreateIngredientRequest
	if !h.decode(w, r, &req) {
		return
	}

	ingredient, err := h.IngredientUseCase.CreateIngredient(ctx, actor, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to create ingredient")
		return
	}

	h.Logger.InfoContext(ctx, "Ingredient created in handler", "id", ingredient.ID)
	h.API.Created(ctx, w, procurement_service.IngredientModelToResponse(ingredient))
}

// ListHandler handles HTTP requests to list ingredients with pagination
func (h *IngredientHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	offset, limit := paginate(r)
	ingredients, total, err := h.IngredientUseCase.ListIngredients(ctx, actor, offset, limit)
	if err != nil {
		h.fail(ctx, w, err, "Failed to list ingredients")
		return
	}

	h.API.SuccessWithMeta(ctx, w, procurement_service.IngredientModelsToResponses(ingredients), pageMeta(offset, limit, total))
}

// GetByIDHandler handles HTTP requests to retrieve an ingredient by its ID
func (h *IngredientHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	ingredient, err := h.IngredientUseCase.GetIngredient(ctx, actor, id)
	if err != nil {
		h.fail(ctx, w, err, "Failed to get ingredient")
		return
	}

	h.API.Success(ctx, w, procurement_service.IngredientModelToResponse(ingredient))
}

// UpdateHandler handles HTTP requests to update an ingredient
func (h *IngredientHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req procurement_service.UpdateIngredientRequest
	if !h.decode(w, r, &req) {
		return
	}

	ingredient, err := h.IngredientUseCase.UpdateIngredient(ctx, actor, id, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to update ingredient")
		return
	}

	h.Logger.InfoContext(ctx, "Ingredient updated in handler", "id", ingredient.ID)
	h.API.Success(ctx, w, procurement_service.IngredientModelToResponse(ingredient))
}

// DeleteHandler handles HTTP requests to delete an ingredient
// Returns a 409 status code while open inquiries still reference it
func (h *IngredientHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.IngredientUseCase.DeleteIngredient(ctx, actor, id); err != nil {
		h.fail(ctx, w, err, "Failed to delete ingredient")
		return
	}

	h.Logger.InfoContext(ctx, "Ingredient deleted in handler", "id", id)
	h.API.Success(ctx, w, map[string]string{"message": "Ingredient deleted successfully"})
}

// SuppliersHandler lists the catalog entries that currently offer an ingredient
func (h *IngredientHandler) SuppliersHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.IngredientUseCase.ListSuppliersForIngredient(ctx, actor, id)
	if err != nil {
		h.fail(ctx, w, err, "Failed to list suppliers")
		return
	}

	h.API.Success(ctx, w, procurement_service.CatalogEntryModelsToResponses(entries))
}
