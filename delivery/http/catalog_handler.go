package http

import (
	"net/http"

	"procurement-service/contracts/procurement_service"
	"procurement-service/pkg/logger"
	"procurement-service/usecase"
)

// CatalogHandler handles HTTP requests for supplier catalog entries
type CatalogHandler struct {
	base
	CatalogUseCase usecase.CatalogUseCase
}

// NewCatalogHandler creates a new instance of CatalogHandler
func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, appLogger logger.LoggerInterface) *CatalogHandler {
	return &CatalogHandler{
		base:           newBase(appLogger),
		CatalogUseCase: catalogUseCase,
	}
}

// AddHandler registers every ingredient/supplier pair of the request.
// Pairs that fail individually are reported next to the created entries.
func (h *CatalogHandler) AddHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req procurement_service.AddCatalogEntriesRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.CatalogUseCase.AddEntries(ctx, actor, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to add catalog entries")
		return
	}

	h.Logger.InfoContext(ctx, "Catalog entries added in handler", "created", len(result.Created), "errors", len(result.Errors))
	h.API.Created(ctx, w, procurement_service.AddCatalogEntriesResponse{
		Created: procurement_service.CatalogEntryModelsToResponses(result.Created),
		Errors:  nonNil(result.Errors),
	})
}

// UpdateHandler changes the price hint or availability of one entry
func (h *CatalogHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req procurement_service.UpdateCatalogEntryRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.CatalogUseCase.UpdateEntry(ctx, actor, id, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to update catalog entry")
		return
	}

	h.API.Success(ctx, w, procurement_service.CatalogEntryModelToResponse(entry))
}

// DeleteHandler removes one catalog entry
func (h *CatalogHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.CatalogUseCase.RemoveEntry(ctx, actor, id); err != nil {
		h.fail(ctx, w, err, "Failed to remove catalog entry")
		return
	}

	h.API.Success(ctx, w, map[string]string{"message": "Catalog entry removed successfully"})
}

// ListBySupplierHandler lists the entries of one supplier
func (h *CatalogHandler) ListBySupplierHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	supplierID, ok := h.pathID(w, r, "supplierID")
	if !ok {
		return
	}

	entries, err := h.CatalogUseCase.ListBySupplier(ctx, actor, supplierID)
	if err != nil {
		h.fail(ctx, w, err, "Failed to list catalog")
		return
	}

	h.API.Success(ctx, w, procurement_service.CatalogEntryModelsToResponses(entries))
}

// ListByIngredientHandler lists every entry of one ingredient
func (h *CatalogHandler) ListByIngredientHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	ingredientID, ok := h.pathID(w, r, "ingredientID")
	if !ok {
		return
	}

	entries, err := h.CatalogUseCase.ListByIngredient(ctx, actor, ingredientID)
	if err != nil {
		h.fail(ctx, w, err, "Failed to list catalog")
		return
	}

	h.API.Success(ctx, w, procurement_service.CatalogEntryModelsToResponses(entries))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
