package procurement_service

import (
	"procurement-service/domain/model"
)

// UpdateSupplierProfileRequest replaces the editable fields of a supplier profile
type UpdateSupplierProfileRequest struct {
	Name         string `json:"name" validate:"required,notblank,max=255"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,notblank,max=50"`
	Address      string `json:"address" validate:"required,notblank"`
	PaymentType  string `json:"payment_type" validate:"required,oneof=advance credit"`
}

// SupplierProfileResponse represents a supplier profile in API responses
type SupplierProfileResponse struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PaymentType  string `json:"payment_type"`
}

// SupplierProfileModelToResponse converts model.SupplierProfile to SupplierProfileResponse
func SupplierProfileModelToResponse(profile *model.SupplierProfile) *SupplierProfileResponse {
	return &SupplierProfileResponse{
		ID:           profile.ID,
		UserID:       profile.UserID,
		Name:         profile.Name,
		ContactEmail: profile.ContactEmail,
		Phone:        profile.Phone,
		Address:      profile.Address,
		PaymentType:  string(profile.PaymentType),
	}
}
