package model

import (
	"time"
)

// PaymentType is the payment term agreed with a supplier
type PaymentType string

const (
	PaymentAdvance PaymentType = "advance"
	PaymentCredit  PaymentType = "credit"
)

// ProfilePlaceholder fills contact fields a self-healed profile has no data for
const ProfilePlaceholder = "N/A"

// SupplierProfile is the billing and shipping identity of a supplier
// account. Each supplier account has at most one.
type SupplierProfile struct {
	ID           uint        `gorm:"primaryKey"`
	UserID       uint        `gorm:"not null;uniqueIndex"`
	User         User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Name         string      `gorm:"type:varchar(255);not null"`
	ContactEmail string      `gorm:"type:varchar(255);not null"`
	Phone        string      `gorm:"type:varchar(50);not null"`
	Address      string      `gorm:"type:text;not null"`
	PaymentType  PaymentType `gorm:"type:varchar(20);not null;check:payment_type IN ('advance','credit')"`
	CreatedAt    time.Time   `gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime"`
}

// DefaultSupplierProfile derives the profile used when a supplier has none
func DefaultSupplierProfile(user *User) *SupplierProfile {
	phone := user.Phone
	if phone == "" {
		phone = ProfilePlaceholder
	}
	return &SupplierProfile{
		UserID:       user.ID,
		Name:         user.Name,
		ContactEmail: user.Email,
		Phone:        phone,
		Address:      ProfilePlaceholder,
		PaymentType:  PaymentAdvance,
	}
}

// AllModels lists every model in migration order
func AllModels() []any {
	return []any{
		&User{},
		&Ingredient{},
		&CatalogEntry{},
		&SupplierProfile{},
		&Inquiry{},
		&InquiryItem{},
		&Quote{},
		&QuoteItem{},
		&Order{},
		&OrderItem{},
	}
}
