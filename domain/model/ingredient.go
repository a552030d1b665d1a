package model

import (
	"time"
)

// Unit is the unit of measure of an ingredient
type Unit string

const (
	UnitLitre  Unit = "L"
	UnitKilo   Unit = "kg"
	UnitUnits  Unit = "units"
	UnitPieces Unit = "pieces"
)

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	switch u {
	case UnitLitre, UnitKilo, UnitUnits, UnitPieces:
		return true
	}
	return false
}

// Ingredient is a purchasable item. Brands is the ordered list of brand
// names known for the ingredient and may be empty.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Brands    []string  `gorm:"serializer:json"`
	Unit      Unit      `gorm:"type:varchar(10);not null;check:unit IN ('L','kg','units','pieces')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
