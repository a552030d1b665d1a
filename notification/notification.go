// Package notification delivers procurement events to the mail pipeline.
// Delivery is fire-and-forget: a failed send is logged by the implementation
// and never reported back to the operation that triggered it.
package notification

import (
	"context"
	"strings"

	"procurement-service/domain/model"
)

// Event types published to the mail pipeline
const (
	EventInquiryCreated = "inquiry_created"
	EventOrderPlaced    = "order_placed"
)

// Payload is the structured template data of one notification
type Payload interface {
	Event() string
}

// Notifier sends a payload to a set of recipients without waiting for delivery
type Notifier interface {
	Send(ctx context.Context, recipients []string, payload Payload)
}

// InquiryLine is one requested ingredient of an inquiry notification
type InquiryLine struct {
	IngredientName string  `json:"ingredient_name"`
	Brands         string  `json:"brands"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
}

// InquiryCreated tells a supplier that a new inquiry awaits a quote
type InquiryCreated struct {
	InquiryID    uint          `json:"inquiry_id"`
	SupplierName string        `json:"supplier_name"`
	Notes        string        `json:"notes,omitempty"`
	Items        []InquiryLine `json:"items"`
}

// Event implements Payload
func (InquiryCreated) Event() string { return EventInquiryCreated }

// OrderLine is one ordered line of an order notification
type OrderLine struct {
	IngredientName string  `json:"ingredient_name"`
	Brand          string  `json:"brand"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Price          float64 `json:"price"`
	Total          float64 `json:"total"`
}

// OrderPlaced is the consolidated notification of a placed order
type OrderPlaced struct {
	OrderID      uint        `json:"order_id"`
	SupplierName string      `json:"supplier_name"`
	Items        []OrderLine `json:"items"`
	GrandTotal   float64     `json:"grand_total"`
}

// Event implements Payload
func (OrderPlaced) Event() string { return EventOrderPlaced }

// NewInquiryCreated builds the payload from an inquiry loaded with its
// supplier and item ingredients
func NewInquiryCreated(inquiry *model.Inquiry) InquiryCreated {
	lines := make([]InquiryLine, 0, len(inquiry.Items))
	for _, item := range inquiry.Items {
		brands := "Any"
		if len(item.Brands) > 0 {
			brands = strings.Join(item.Brands, ", ")
		}
		lines = append(lines, InquiryLine{
			IngredientName: item.Ingredient.Name,
			Brands:         brands,
			Quantity:       item.Quantity,
			Unit:           string(item.Ingredient.Unit),
		})
	}
	return InquiryCreated{
		InquiryID:    inquiry.ID,
		SupplierName: inquiry.Supplier.Name,
		Notes:        inquiry.Notes,
		Items:        lines,
	}
}

// NewOrderPlaced builds the payload from the snapshot lines of an order
func NewOrderPlaced(order *model.Order, supplierName string) OrderPlaced {
	lines := make([]OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLine{
			IngredientName: item.IngredientName,
			Brand:          item.BrandName,
			Quantity:       item.Quantity,
			Unit:           string(item.Unit),
			Price:          item.Price,
			Total:          item.LineTotal,
		})
	}
	return OrderPlaced{
		OrderID:      order.ID,
		SupplierName: supplierName,
		Items:        lines,
		GrandTotal:   order.TotalAmount,
	}
}

// Recipients merges address lists in order, dropping blanks, placeholders
// and case-insensitive duplicates
func Recipients(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, email := range list {
			email = strings.TrimSpace(email)
			if email == "" || email == model.ProfilePlaceholder {
				continue
			}
			key := strings.ToLower(email)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, email)
		}
	}
	return out
}

// Noop drops every notification
type Noop struct{}

// Send does nothing
func (Noop) Send(context.Context, []string, Payload) {}
