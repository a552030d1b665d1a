package model

import (
	"time"
)

// InquiryStatus is the lifecycle state of an inquiry
type InquiryStatus string

const (
	InquiryOpen      InquiryStatus = "open"
	InquiryResponded InquiryStatus = "responded"
	InquiryCancelled InquiryStatus = "cancelled"
)

// Inquiry is a request for pricing sent to exactly one supplier
type Inquiry struct {
	ID         uint          `gorm:"primaryKey"`
	SupplierID uint          `gorm:"not null;index"`
	Supplier   User          `gorm:"foreignKey:SupplierID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedBy  uint          `gorm:"not null"`
	Notes      string        `gorm:"type:text"`
	Status     InquiryStatus `gorm:"type:varchar(20);not null;index;check:status IN ('open','responded','cancelled')"`
	Items      []InquiryItem `gorm:"foreignKey:InquiryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt  time.Time     `gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime"`
}

// InquiryItem is one requested ingredient of an inquiry. Brands lists the
// acceptable brands; an empty list means any brand.
type InquiryItem struct {
	ID           uint       `gorm:"primaryKey"`
	InquiryID    uint       `gorm:"not null;index"`
	IngredientID uint       `gorm:"not null;index"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Quantity     float64    `gorm:"type:decimal(12,3);not null"`
	Brands       []string   `gorm:"serializer:json"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}
