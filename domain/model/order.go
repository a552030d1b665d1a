package model

import (
	"time"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "order_placed"
	OrderShipped   OrderStatus = "order_shipped"
	OrderReceived  OrderStatus = "order_received"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is the commitment created from an accepted quote. QuoteID is
// nullable so deleting the quote leaves the order history intact; it is
// unique so at most one order exists per quote.
type Order struct {
	ID                uint            `gorm:"primaryKey"`
	QuoteID           *uint           `gorm:"uniqueIndex"`
	Quote             *Quote          `gorm:"foreignKey:QuoteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	SupplierProfileID uint            `gorm:"not null;index"`
	SupplierProfile   SupplierProfile `gorm:"foreignKey:SupplierProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedBy         uint            `gorm:"not null"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null;index;check:status IN ('order_placed','order_shipped','order_received','cancelled')"`
	PlacedAt          time.Time       `gorm:"not null"`
	ShippedAt         *time.Time
	ArrivedAt         *time.Time
	TrackingNumber    string      `gorm:"type:varchar(255)"`
	Notes             string      `gorm:"type:text"`
	TotalAmount       float64     `gorm:"type:decimal(14,2);not null"`
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt         time.Time   `gorm:"autoCreateTime"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime"`
}

// OrderItem is an immutable snapshot of a quoted line taken when the order
// was placed. It never reads through to the quote, inquiry or ingredient.
type OrderItem struct {
	ID             uint       `gorm:"primaryKey"`
	OrderID        uint       `gorm:"not null;index"`
	QuoteItemID    *uint      `gorm:"index"`
	QuoteItem      *QuoteItem `gorm:"foreignKey:QuoteItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	IngredientName string     `gorm:"type:varchar(255);not null"`
	BrandName      string     `gorm:"type:varchar(255)"`
	Unit           Unit       `gorm:"type:varchar(10);not null"`
	Quantity       float64    `gorm:"type:decimal(12,3);not null"`
	Price          float64    `gorm:"type:decimal(12,2);not null"`
	LineTotal      float64    `gorm:"type:decimal(14,2);not null"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}
