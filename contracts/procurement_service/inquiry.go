package procurement_service

import (
	"time"

	"procurement-service/domain/model"
)

// InquiryItemRequest is one requested ingredient. An empty brand list means any brand.
type InquiryItemRequest struct {
	IngredientID uint     `json:"ingredient_id" validate:"required,gt=0"`
	Brands       []string `json:"brands" validate:"omitempty,dive,notblank,max=255"`
	Quantity     float64  `json:"quantity" validate:"required,gt=0"`
}

// CreateInquiryRequest fans one set of requested ingredients out to several suppliers
type CreateInquiryRequest struct {
	Items       []InquiryItemRequest `json:"items" validate:"required,min=1,unique=IngredientID,dive"`
	SupplierIDs []uint               `json:"supplier_ids" validate:"required,min=1,dive,gt=0"`
	Notes       string               `json:"notes" validate:"max=2000"`
}

// UpdateInquiryStatusRequest represents the request payload for an inquiry status change
type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open responded cancelled"`
}

// InquiryItemResponse represents an inquiry item in API responses
type InquiryItemResponse struct {
	ID             uint     `json:"id"`
	IngredientID   uint     `json:"ingredient_id"`
	IngredientName string   `json:"ingredient_name,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Quantity       float64  `json:"quantity"`
	Brands         []string `json:"brands"`
}

// InquiryResponse represents an inquiry in API responses
type InquiryResponse struct {
	ID           uint                  `json:"id"`
	SupplierID   uint                  `json:"supplier_id"`
	SupplierName string                `json:"supplier_name,omitempty"`
	CreatedBy    uint                  `json:"created_by"`
	Notes        string                `json:"notes"`
	Status       string                `json:"status"`
	Items        []InquiryItemResponse `json:"items"`
	CreatedAt    time.Time             `json:"created_at"`
}

// CreateInquiriesResponse reports the inquiries created by one fan-out request
type CreateInquiriesResponse struct {
	Created []InquiryResponse `json:"created"`
	Errors  []string          `json:"errors"`
}

// InquiryModelToResponse converts model.Inquiry to InquiryResponse
func InquiryModelToResponse(inquiry *model.Inquiry) *InquiryResponse {
	items := make([]InquiryItemResponse, len(inquiry.Items))
	for i, item := range inquiry.Items {
		items[i] = InquiryItemResponse{
			ID:             item.ID,
			IngredientID:   item.IngredientID,
			IngredientName: item.Ingredient.Name,
			Unit:           string(item.Ingredient.Unit),
			Quantity:       item.Quantity,
			Brands:         nonNilStrings(item.Brands),
		}
	}
	return &InquiryResponse{
		ID:           inquiry.ID,
		SupplierID:   inquiry.SupplierID,
		SupplierName: inquiry.Supplier.Name,
		CreatedBy:    inquiry.CreatedBy,
		Notes:        inquiry.Notes,
		Status:       string(inquiry.Status),
		Items:        items,
		CreatedAt:    inquiry.CreatedAt,
	}
}

// InquiryModelsToResponses converts a slice of model.Inquiry
func InquiryModelsToResponses(inquiries []*model.Inquiry) []InquiryResponse {
	responses := make([]InquiryResponse, len(inquiries))
	for i, inquiry := range inquiries {
		responses[i] = *InquiryModelToResponse(inquiry)
	}
	return responses
}
