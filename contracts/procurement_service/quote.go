package procurement_service

import (
	"time"

	"procurement-service/domain/model"
)

// QuoteItemRequest prices one brand of one inquiry item, or marks it as out of stock
type QuoteItemRequest struct {
	InquiryItemID uint     `json:"inquiry_item_id" validate:"required,gt=0"`
	BrandName     string   `json:"brand_name" validate:"max=255"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	IsNil         bool     `json:"is_nil"`
}

// SubmitQuoteRequest represents a supplier's response to an inquiry
type SubmitQuoteRequest struct {
	Items []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// AcceptQuoteRequest selects the quoted lines that become the order
type AcceptQuoteRequest struct {
	QuoteItemIDs []uint `json:"quote_item_ids" validate:"required,min=1,dive,gt=0"`
}

// QuoteItemResponse represents a quoted line in API responses
type QuoteItemResponse struct {
	ID             uint     `json:"id"`
	InquiryItemID  uint     `json:"inquiry_item_id"`
	IngredientName string   `json:"ingredient_name,omitempty"`
	Quantity       float64  `json:"quantity,omitempty"`
	BrandName      string   `json:"brand_name"`
	Price          *float64 `json:"price"`
	IsNil          bool     `json:"is_nil"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID          uint                `json:"id"`
	InquiryID   uint                `json:"inquiry_id"`
	SupplierID  uint                `json:"supplier_id"`
	Status      string              `json:"status"`
	RespondedBy uint                `json:"responded_by"`
	RespondedAt time.Time           `json:"responded_at"`
	Accepted    bool                `json:"accepted"`
	AcceptedBy  *uint               `json:"accepted_by,omitempty"`
	AcceptedAt  *time.Time          `json:"accepted_at,omitempty"`
	Items       []QuoteItemResponse `json:"items"`
}

// QuoteModelToResponse converts model.Quote to QuoteResponse
func QuoteModelToResponse(quote *model.Quote) *QuoteResponse {
	items := make([]QuoteItemResponse, len(quote.Items))
	for i, item := range quote.Items {
		items[i] = QuoteItemResponse{
			ID:             item.ID,
			InquiryItemID:  item.InquiryItemID,
			IngredientName: item.InquiryItem.Ingredient.Name,
			Quantity:       item.InquiryItem.Quantity,
			BrandName:      item.BrandName,
			Price:          item.Price,
			IsNil:          item.IsNil,
		}
	}
	return &QuoteResponse{
		ID:          quote.ID,
		InquiryID:   quote.InquiryID,
		SupplierID:  quote.SupplierID,
		Status:      string(quote.Status),
		RespondedBy: quote.RespondedBy,
		RespondedAt: quote.RespondedAt,
		Accepted:    quote.Accepted,
		AcceptedBy:  quote.AcceptedBy,
		AcceptedAt:  quote.AcceptedAt,
		Items:       items,
	}
}

// QuoteModelsToResponses converts a slice of model.Quote
func QuoteModelsToResponses(quotes []*model.Quote) []QuoteResponse {
	responses := make([]QuoteResponse, len(quotes))
	for i, quote := range quotes {
		responses[i] = *QuoteModelToResponse(quote)
	}
	return responses
}
