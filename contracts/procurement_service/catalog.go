package procurement_service

import (
	"procurement-service/domain/model"
)

// AddCatalogEntriesRequest registers every ingredient for every supplier
type AddCatalogEntriesRequest struct {
	IngredientIDs []uint   `json:"ingredient_ids" validate:"required,min=1,dive,gt=0"`
	SupplierIDs   []uint   `json:"supplier_ids" validate:"required,min=1,dive,gt=0"`
	PriceHint     *float64 `json:"price_hint,omitempty" validate:"omitempty,gte=0"`
	// Available defaults to true when omitted
	Available *bool `json:"available,omitempty"`
}

// UpdateCatalogEntryRequest changes the price hint or availability of one entry
type UpdateCatalogEntryRequest struct {
	PriceHint *float64 `json:"price_hint,omitempty" validate:"omitempty,gte=0"`
	Available *bool    `json:"available,omitempty"`
}

// CatalogEntryResponse represents a catalog entry in API responses
type CatalogEntryResponse struct {
	ID             uint     `json:"id"`
	IngredientID   uint     `json:"ingredient_id"`
	IngredientName string   `json:"ingredient_name,omitempty"`
	SupplierID     uint     `json:"supplier_id"`
	SupplierName   string   `json:"supplier_name,omitempty"`
	PriceHint      *float64 `json:"price_hint"`
	Available      bool     `json:"available"`
}

// AddCatalogEntriesResponse reports a partially successful catalog registration
type AddCatalogEntriesResponse struct {
	Created []CatalogEntryResponse `json:"created"`
	Errors  []string               `json:"errors"`
}

// CatalogEntryModelToResponse converts model.CatalogEntry to CatalogEntryResponse
func CatalogEntryModelToResponse(entry *model.CatalogEntry) *CatalogEntryResponse {
	return &CatalogEntryResponse{
		ID:             entry.ID,
		IngredientID:   entry.IngredientID,
		IngredientName: entry.Ingredient.Name,
		SupplierID:     entry.SupplierID,
		SupplierName:   entry.Supplier.Name,
		PriceHint:      entry.PriceHint,
		Available:      entry.Available,
	}
}

// CatalogEntryModelsToResponses converts a slice of model.CatalogEntry
func CatalogEntryModelsToResponses(entries []*model.CatalogEntry) []CatalogEntryResponse {
	responses := make([]CatalogEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = *CatalogEntryModelToResponse(entry)
	}
	return responses
}
