package model

import (
	"time"
)

// QuoteStatus is the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteQuoted      QuoteStatus = "quoted"
	QuoteOrderPlaced QuoteStatus = "order_placed"
	QuoteCancelled   QuoteStatus = "cancelled"
)

// Quote is the single response of a supplier to an inquiry. The unique
// index on InquiryID is what makes concurrent submissions race safe.
type Quote struct {
	ID          uint        `gorm:"primaryKey"`
	InquiryID   uint        `gorm:"not null;uniqueIndex"`
	Inquiry     Inquiry     `gorm:"foreignKey:InquiryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	SupplierID  uint        `gorm:"not null;index"`
	Status      QuoteStatus `gorm:"type:varchar(20);not null;index;check:status IN ('quoted','order_placed','cancelled')"`
	RespondedBy uint        `gorm:"not null"`
	RespondedAt time.Time   `gorm:"not null"`
	Accepted    bool        `gorm:"not null"`
	AcceptedBy  *uint
	AcceptedAt  *time.Time
	Items       []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime"`
}

// QuoteItem prices one brand of one inquiry item. When IsNil is set the
// supplier has no stock and Price is always nil.
type QuoteItem struct {
	ID            uint        `gorm:"primaryKey"`
	QuoteID       uint        `gorm:"not null;index"`
	InquiryItemID uint        `gorm:"not null;index"`
	InquiryItem   InquiryItem `gorm:"foreignKey:InquiryItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	BrandName     string      `gorm:"type:varchar(255)"`
	Price         *float64    `gorm:"type:decimal(12,2)"`
	IsNil         bool        `gorm:"not null"`
	CreatedAt     time.Time   `gorm:"autoCreateTime"`
}

// Orderable reports whether the item can become an order line
func (qi *QuoteItem) Orderable() bool {
	return !qi.IsNil && qi.Price != nil
}
