package procurement_service

import (
	"time"

	"procurement-service/domain/model"
)

// UpdateOrderStatusRequest advances an order and optionally records tracking details
type UpdateOrderStatusRequest struct {
	Status         string  `json:"status" validate:"required,oneof=order_placed order_shipped order_received cancelled"`
	TrackingNumber *string `json:"tracking_number,omitempty" validate:"omitempty,max=255"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// OrderItemResponse represents an order line snapshot
type OrderItemResponse struct {
	ID             uint    `json:"id"`
	QuoteItemID    *uint   `json:"quote_item_id"`
	IngredientName string  `json:"ingredient_name"`
	BrandName      string  `json:"brand_name"`
	Unit           string  `json:"unit"`
	Quantity       float64 `json:"quantity"`
	Price          float64 `json:"price"`
	LineTotal      float64 `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uint                `json:"id"`
	QuoteID           *uint               `json:"quote_id"`
	SupplierProfileID uint                `json:"supplier_profile_id"`
	SupplierName      string              `json:"supplier_name,omitempty"`
	CreatedBy         uint                `json:"created_by"`
	Status            string              `json:"status"`
	PlacedAt          time.Time           `json:"placed_at"`
	ShippedAt         *time.Time          `json:"shipped_at"`
	ArrivedAt         *time.Time          `json:"arrived_at"`
	TrackingNumber    string              `json:"tracking_number"`
	Notes             string              `json:"notes"`
	TotalAmount       float64             `json:"total_amount"`
	Items             []OrderItemResponse `json:"items"`
}

// OrderModelToResponse converts model.Order to OrderResponse
func OrderModelToResponse(order *model.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:             item.ID,
			QuoteItemID:    item.QuoteItemID,
			IngredientName: item.IngredientName,
			BrandName:      item.BrandName,
			Unit:           string(item.Unit),
			Quantity:       item.Quantity,
			Price:          item.Price,
			LineTotal:      item.LineTotal,
		}
	}
	return &OrderResponse{
		ID:                order.ID,
		QuoteID:           order.QuoteID,
		SupplierProfileID: order.SupplierProfileID,
		SupplierName:      order.SupplierProfile.Name,
		CreatedBy:         order.CreatedBy,
		Status:            string(order.Status),
		PlacedAt:          order.PlacedAt,
		ShippedAt:         order.ShippedAt,
		ArrivedAt:         order.ArrivedAt,
		TrackingNumber:    order.TrackingNumber,
		Notes:             order.Notes,
		TotalAmount:       order.TotalAmount,
		Items:             items,
	}
}

// OrderModelsToResponses converts a slice of model.Order
func OrderModelsToResponses(orders []*model.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *OrderModelToResponse(order)
	}
	return responses
}
