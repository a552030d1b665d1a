package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/pkg/metrics"
)

func TestEnsureSupplierProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplier, _ := f.supplier(t, "Alpha")

	first, err := f.profiles.EnsureSupplierProfile(ctx, supplier.ID)
	require.NoError(t, err)
	second, err := f.profiles.EnsureSupplierProfile(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.recorder.count(opProfileSelfHealed, metrics.OutcomeSuccess))

	_, err = f.profiles.EnsureSupplierProfile(ctx, 4242)
	assert.ErrorIs(t, err, domain.ErrSupplierAccountNotFound)
	assert.Equal(t, 1, f.recorder.count(opProfileSelfHealed, metrics.OutcomeFailure))

	_, err = f.profiles.EnsureSupplierProfile(ctx, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrNotASupplier)
}

func TestEnsureSupplierProfile_InsideTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplier, _ := f.supplier(t, "Alpha")

	var healed *model.SupplierProfile
	err := f.repos.Transactor.ExecuteInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		healed, err = f.profiles.EnsureSupplierProfile(txCtx, supplier.ID)
		return err
	})
	require.NoError(t, err)

	stored, err := f.repos.Profiles.GetByUserID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, healed.ID, stored.ID)
}

func TestGetMyProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplier, actor := f.supplier(t, "Alpha")

	profile, err := f.profiles.GetMyProfile(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, supplier.ID, profile.UserID)

	_, err = f.profiles.GetMyProfile(ctx, f.admin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplier, actor := f.supplier(t, "Alpha")
	_, stranger := f.supplier(t, "Beta")
	req := &procurement_service.UpdateSupplierProfileRequest{
		Name:         "Alpha Trading",
		ContactEmail: "billing@alpha.test",
		Phone:        "+62 21 555",
		Address:      "Jl. Sudirman 1",
		PaymentType:  string(model.PaymentCredit),
	}

	_, err := f.profiles.UpdateProfile(ctx, stranger, supplier.ID, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.profiles.UpdateProfile(ctx, actor, supplier.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Trading", updated.Name)
	assert.Equal(t, model.PaymentCredit, updated.PaymentType)

	stored, err := f.repos.Profiles.GetByUserID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "billing@alpha.test", stored.ContactEmail)
	assert.Equal(t, "Jl. Sudirman 1", stored.Address)

	req.PaymentType = "barter"
	_, err = f.profiles.UpdateProfile(ctx, f.admin, supplier.ID, req)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestRepairMissingProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alpha, actor := f.supplier(t, "Alpha")
	f.supplier(t, "Beta")
	f.supplier(t, "Gamma")
	_, err := f.profiles.EnsureSupplierProfile(ctx, alpha.ID)
	require.NoError(t, err)

	_, err = f.profiles.RepairMissingProfiles(ctx, actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	result, err := f.profiles.RepairMissingProfiles(ctx, f.admin)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Created, 2)
	assert.Equal(t, "Beta", result.Created[0].Name)
	assert.Equal(t, "Gamma", result.Created[1].Name)

	again, err := f.profiles.RepairMissingProfiles(ctx, f.admin)
	require.NoError(t, err)
	assert.Empty(t, again.Created)
}
