package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineRequest struct {
	IngredientID uint     `json:"ingredient_id" validate:"required"`
	Quantity     float64  `json:"quantity" validate:"gt=0"`
	Brands       []string `json:"brands" validate:"dive,notblank"`
}

type inquiryRequest struct {
	SupplierIDs []uint        `json:"supplier_ids" validate:"required,min=1,unique"`
	Items       []lineRequest `json:"items" validate:"required,min=1,dive"`
	Unit        string        `json:"unit" validate:"omitempty,oneof=L kg units pieces"`
	Email       string        `json:"contact_email" validate:"omitempty,email"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := inquiryRequest{
		SupplierIDs: []uint{1, 2},
		Items:       []lineRequest{{IngredientID: 1, Quantity: 10, Brands: []string{"Nescafe"}}},
		Unit:        "L",
	}

	assert.Nil(t, ValidateStruct(&req))
}

func TestValidateStruct_ReportsJSONPaths(t *testing.T) {
	req := inquiryRequest{
		SupplierIDs: []uint{1, 1},
		Items: []lineRequest{
			{IngredientID: 1, Quantity: 0, Brands: []string{"  "}},
		},
		Unit:  "gallon",
		Email: "not-an-email",
	}

	errs := ValidateStruct(&req)
	require.NotNil(t, errs)

	assert.Equal(t, "Supplier Ids must not contain duplicates", errs["supplier_ids"])
	assert.Equal(t, "Quantity must be greater than 0", errs["items[0].quantity"])
	assert.Equal(t, "Brands[0] must not be blank", errs["items[0].brands[0]"])
	assert.Equal(t, "Unit must be one of the following: L kg units pieces", errs["unit"])
	assert.Equal(t, "Contact Email must be a valid email address", errs["contact_email"])
}

func TestValidateStruct_EmptyCollections(t *testing.T) {
	errs := NewValidator().ValidateStruct(&inquiryRequest{})
	require.NotNil(t, errs)

	assert.Equal(t, "Supplier Ids is required", errs["supplier_ids"])
	assert.Equal(t, "Items is required", errs["items"])
}

func TestValidateStruct_MinOnCollection(t *testing.T) {
	type req struct {
		IDs []uint `json:"ids" validate:"min=1"`
	}

	errs := ValidateStruct(&req{IDs: []uint{}})
	assert.Equal(t, "Ids must contain at least 1 item(s)", errs["ids"])
}

func TestPrettifyFieldName(t *testing.T) {
	assert.Equal(t, "Price Hint", prettifyFieldName("price_hint"))
	assert.Equal(t, "Tracking Number", prettifyFieldName("TrackingNumber"))
	assert.Equal(t, "Notes", prettifyFieldName("notes"))
}
