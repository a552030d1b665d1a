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

func TestAddEntries_CrossProductSkipsExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha, _ := f.supplier(t, "Alpha")
	beta, _ := f.supplier(t, "Beta")
	flour := f.ingredient(t, "Flour", model.UnitKilo)
	sugar := f.ingredient(t, "Sugar", model.UnitKilo)
	f.offer(t, flour.ID, alpha.ID)

	result, err := f.catalog.AddEntries(ctx, f.admin, &procurement_service.AddCatalogEntriesRequest{
		IngredientIDs: []uint{flour.ID, sugar.ID, flour.ID},
		SupplierIDs:   []uint{alpha.ID, beta.ID},
		PriceHint:     price(1.25),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Created, 3)
	for _, entry := range result.Created {
		assert.True(t, entry.Available)
		require.NotNil(t, entry.PriceHint)
		assert.Equal(t, 1.25, *entry.PriceHint)
		assert.NotEmpty(t, entry.Ingredient.Name)
		assert.NotEmpty(t, entry.Supplier.Name)
	}

	var total int64
	require.NoError(t, f.db.Model(&model.CatalogEntry{}).Count(&total).Error)
	assert.Equal(t, int64(4), total)
}

func TestAddEntries_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha, actor := f.supplier(t, "Alpha")
	flour := f.ingredient(t, "Flour", model.UnitKilo)

	_, err := f.catalog.AddEntries(ctx, actor, &procurement_service.AddCatalogEntriesRequest{IngredientIDs: []uint{flour.ID}, SupplierIDs: []uint{alpha.ID}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.catalog.AddEntries(ctx, f.admin, &procurement_service.AddCatalogEntriesRequest{IngredientIDs: []uint{flour.ID, 4242}, SupplierIDs: []uint{alpha.ID}})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	_, err = f.catalog.AddEntries(ctx, f.admin, &procurement_service.AddCatalogEntriesRequest{IngredientIDs: []uint{flour.ID}, SupplierIDs: []uint{alpha.ID, f.admin.ID}})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound, "admins cannot be catalog suppliers")

	var total int64
	require.NoError(t, f.db.Model(&model.CatalogEntry{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestUpdateEntry_OwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha, alphaActor := f.supplier(t, "Alpha")
	_, betaActor := f.supplier(t, "Beta")
	flour := f.ingredient(t, "Flour", model.UnitKilo)
	f.offer(t, flour.ID, alpha.ID)
	entries, err := f.catalog.ListBySupplier(ctx, alphaActor, alpha.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	id := entries[0].ID

	unavailable := false
	_, err = f.catalog.UpdateEntry(ctx, betaActor, id, &procurement_service.UpdateCatalogEntryRequest{Available: &unavailable})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.catalog.UpdateEntry(ctx, alphaActor, id, &procurement_service.UpdateCatalogEntryRequest{Available: &unavailable, PriceHint: price(3)})
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, 3.0, *updated.PriceHint)

	suppliers, err := f.ingredients.ListSuppliersForIngredient(ctx, f.admin, flour.ID)
	require.NoError(t, err)
	assert.Empty(t, suppliers, "unavailable entries are not eligible")

	all, err := f.catalog.ListByIngredient(ctx, f.admin, flour.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.catalog.UpdateEntry(ctx, f.admin, 4242, &procurement_service.UpdateCatalogEntryRequest{})
	assert.ErrorIs(t, err, domain.ErrCatalogEntryNotFound)
}

func TestCatalogListingAndRemoval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha, alphaActor := f.supplier(t, "Alpha")
	_, betaActor := f.supplier(t, "Beta")
	flour := f.ingredient(t, "Flour", model.UnitKilo)
	f.offer(t, flour.ID, alpha.ID)

	_, err := f.catalog.ListBySupplier(ctx, betaActor, alpha.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.catalog.ListByIngredient(ctx, alphaActor, flour.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	entries, err := f.catalog.ListBySupplier(ctx, f.admin, alpha.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Flour", entries[0].Ingredient.Name)

	assert.ErrorIs(t, f.catalog.RemoveEntry(ctx, alphaActor, entries[0].ID), domain.ErrForbidden)
	require.NoError(t, f.catalog.RemoveEntry(ctx, f.admin, entries[0].ID))
	assert.ErrorIs(t, f.catalog.RemoveEntry(ctx, f.admin, entries[0].ID), domain.ErrCatalogEntryNotFound)
}
