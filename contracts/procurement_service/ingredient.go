// Package procurement_service contains request and response contracts for the procurement service
package procurement_service

import (
	"time"

	"procurement-service/domain/model"
)

// CreateIngredientRequest represents the request payload for creating an ingredient
type CreateIngredientRequest struct {
	Name   string   `json:"name" validate:"required,notblank,max=255"`
	Brands []string `json:"brands" validate:"omitempty,unique,dive,notblank,max=255"`
	Unit   string   `json:"unit" validate:"required,oneof=L kg units pieces"`
}

// UpdateIngredientRequest represents the request payload for replacing an ingredient's name, brands and unit
type UpdateIngredientRequest struct {
	Name   string   `json:"name" validate:"required,notblank,max=255"`
	Brands []string `json:"brands" validate:"omitempty,unique,dive,notblank,max=255"`
	Unit   string   `json:"unit" validate:"required,oneof=L kg units pieces"`
}

// IngredientResponse represents an ingredient in API responses
type IngredientResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Brands    []string  `json:"brands"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateIngredientRequestToModel converts CreateIngredientRequest to model.Ingredient
func CreateIngredientRequestToModel(req *CreateIngredientRequest) *model.Ingredient {
	return &model.Ingredient{
		Name:   req.Name,
		Brands: nonNilStrings(req.Brands),
		Unit:   model.Unit(req.Unit),
	}
}

// IngredientModelToResponse converts model.Ingredient to IngredientResponse
func IngredientModelToResponse(ingredient *model.Ingredient) *IngredientResponse {
	return &IngredientResponse{
		ID:        ingredient.ID,
		Name:      ingredient.Name,
		Brands:    nonNilStrings(ingredient.Brands),
		Unit:      string(ingredient.Unit),
		CreatedAt: ingredient.CreatedAt,
		UpdatedAt: ingredient.UpdatedAt,
	}
}

// IngredientModelsToResponses converts a slice of model.Ingredient
func IngredientModelsToResponses(ingredients []*model.Ingredient) []IngredientResponse {
	responses := make([]IngredientResponse, len(ingredients))
	for i, ingredient := range ingredients {
		responses[i] = *IngredientModelToResponse(ingredient)
	}
	return responses
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
