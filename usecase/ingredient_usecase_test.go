package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain"
	"procurement-service/domain/model"
)

func TestIngredientAdministration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplier, actor := f.supplier(t, "Alpha")
	flour := f.ingredient(t, "Flour", model.UnitKilo, "Bogasari")
	sugar := f.ingredient(t, "Sugar", model.UnitKilo)

	_, err := f.ingredients.CreateIngredient(ctx, actor, &procurement_service.CreateIngredientRequest{Name: "Salt", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.ingredients.CreateIngredient(ctx, f.admin, &procurement_service.CreateIngredientRequest{Name: "Flour", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrIngredientExists)
	_, err = f.ingredients.UpdateIngredient(ctx, f.admin, sugar.ID, &procurement_service.UpdateIngredientRequest{Name: "Flour", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrIngredientExists)
	_, err = f.ingredients.GetIngredient(ctx, actor, 4242)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	list, total, err := f.ingredients.ListIngredients(ctx, actor, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "Flour", list[0].Name)
	assert.Equal(t, []string{"Bogasari"}, list[0].Brands)

	f.offer(t, flour.ID, supplier.ID)
	f.inquire(t, supplier.ID, procurement_service.InquiryItemRequest{IngredientID: flour.ID, Quantity: 2})
	assert.ErrorIs(t, f.ingredients.DeleteIngredient(ctx, f.admin, flour.ID), domain.ErrIngredientInUse)

	f.offer(t, sugar.ID, supplier.ID)
	require.NoError(t, f.ingredients.DeleteIngredient(ctx, f.admin, sugar.ID))
	assert.ErrorIs(t, f.ingredients.DeleteIngredient(ctx, f.admin, sugar.ID), domain.ErrIngredientNotFound)

	var entries int64
	require.NoError(t, f.db.Model(&model.CatalogEntry{}).Where("ingredient_id = ?", sugar.ID).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestUpdateIngredient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	flour := f.ingredient(t, "Flour", model.UnitKilo, "Bogasari")

	updated, err := f.ingredients.UpdateIngredient(ctx, f.admin, flour.ID, &procurement_service.UpdateIngredientRequest{
		Name: "Wheat Flour",
		Unit: string(model.UnitPieces),
	})
	require.NoError(t, err)
	assert.Equal(t, "Wheat Flour", updated.Name)
	assert.Equal(t, model.UnitPieces, updated.Unit)
	assert.Equal(t, []string{}, updated.Brands, "omitted brands clear the list")

	stored, err := f.ingredients.GetIngredient(ctx, f.admin, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wheat Flour", stored.Name)
	assert.Empty(t, stored.Brands)

	_, err = f.ingredients.UpdateIngredient(ctx, f.admin, flour.ID, &procurement_service.UpdateIngredientRequest{Name: "Wheat Flour", Unit: "tons"})
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = f.ingredients.UpdateIngredient(ctx, f.admin, 4242, &procurement_service.UpdateIngredientRequest{Name: "Salt", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	_, err = f.ingredients.UpdateIngredient(ctx, f.admin, 0, &procurement_service.UpdateIngredientRequest{Name: "Salt", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListSuppliersForIngredient_OnlyAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha, alphaActor := f.supplier(t, "Alpha")
	beta, _ := f.supplier(t, "Beta")
	flour := f.ingredient(t, "Flour", model.UnitKilo)
	f.offer(t, flour.ID, alpha.ID)
	f.offer(t, flour.ID, beta.ID)

	entries, err := f.catalog.ListBySupplier(ctx, alphaActor, alpha.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	unavailable := false
	_, err = f.catalog.UpdateEntry(ctx, alphaActor, entries[0].ID, &procurement_service.UpdateCatalogEntryRequest{Available: &unavailable})
	require.NoError(t, err)

	suppliers, err := f.ingredients.ListSuppliersForIngredient(ctx, f.admin, flour.ID)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, beta.ID, suppliers[0].SupplierID)

	_, err = f.ingredients.ListSuppliersForIngredient(ctx, f.admin, 4242)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}
