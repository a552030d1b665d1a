package model

import (
	"time"
)

// CatalogEntry declares that a supplier can supply an ingredient
type CatalogEntry struct {
	ID           uint       `gorm:"primaryKey"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_catalog_ingredient_supplier"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SupplierID   uint       `gorm:"not null;uniqueIndex:idx_catalog_ingredient_supplier;index"`
	Supplier     User       `gorm:"foreignKey:SupplierID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PriceHint    *float64   `gorm:"type:decimal(10,2)"`
	Available    bool       `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// TableName keeps the historical table name
func (CatalogEntry) TableName() string {
	return "supplier_catalog"
}
