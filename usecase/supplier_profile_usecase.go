package usecase

import (
	"context"
	"errors"
	"fmt"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
)

// SupplierProfileUseCase manages the billing identity of supplier accounts
type SupplierProfileUseCase interface {
	// EnsureSupplierProfile returns the profile of a supplier account,
	// creating one from the account defaults when it is missing. It joins
	// the caller's transaction when ctx carries one.
	EnsureSupplierProfile(ctx context.Context, userID uint) (*model.SupplierProfile, error)
	GetMyProfile(ctx context.Context, actor model.Actor) (*model.SupplierProfile, error)
	UpdateProfile(ctx context.Context, actor model.Actor, userID uint, req *procurement_service.UpdateSupplierProfileRequest) (*model.SupplierProfile, error)
	// RepairMissingProfiles self-heals every supplier account without a profile
	RepairMissingProfiles(ctx context.Context, actor model.Actor) (*BatchResult[*model.SupplierProfile], error)
}

type supplierProfileUseCase struct {
	repos    Repositories
	authz    policy.Authorizer
	recorder metrics.Recorder
	logger   logger.LoggerInterface
}

// NewSupplierProfileUseCase creates a new instance of supplierProfileUseCase
func NewSupplierProfileUseCase(repos Repositories, authz policy.Authorizer, recorder metrics.Recorder, appLogger logger.LoggerInterface) SupplierProfileUseCase {
	return &supplierProfileUseCase{
		repos:    repos,
		authz:    authz,
		recorder: recorder,
		logger:   appLogger,
	}
}

func (uc *supplierProfileUseCase) EnsureSupplierProfile(ctx context.Context, userID uint) (*model.SupplierProfile, error) {
	profile, err := uc.repos.Profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("error getting supplier profile: %w", err)
	}

	uc.logger.WarnContext(ctx, "Supplier profile missing, self-healing", "userID", userID)
	user, err := uc.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.ErrorContext(ctx, "Supplier account missing, cannot self-heal profile", "userID", userID)
			uc.recorder.RecordOperation(opProfileSelfHealed, metrics.OutcomeFailure)
			return nil, domain.ErrSupplierAccountNotFound
		}
		return nil, fmt.Errorf("error getting supplier account: %w", err)
	}
	if !user.IsSupplier() {
		return nil, domain.ErrNotASupplier
	}

	profile = model.DefaultSupplierProfile(user)
	if err := uc.repos.Profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// another request healed the same account first
			existing, getErr := uc.repos.Profiles.GetByUserID(ctx, userID)
			if getErr != nil {
				return nil, fmt.Errorf("error reloading supplier profile: %w", getErr)
			}
			return existing, nil
		}
		uc.recorder.RecordOperation(opProfileSelfHealed, metrics.OutcomeFailure)
		uc.logger.ErrorContext(ctx, "Failed to create supplier profile", "userID", userID, "error", err)
		return nil, fmt.Errorf("error creating supplier profile: %w", err)
	}

	uc.recorder.RecordOperation(opProfileSelfHealed, metrics.OutcomeSuccess)
	uc.logger.InfoContext(ctx, "Supplier profile self-healed", "userID", userID, "profileID", profile.ID)
	return profile, nil
}

// GetMyProfile returns the caller's own profile
func (uc *supplierProfileUseCase) GetMyProfile(ctx context.Context, actor model.Actor) (*model.SupplierProfile, error) {
	if !actor.IsSupplier() {
		return nil, domain.ErrForbidden
	}
	return uc.EnsureSupplierProfile(ctx, actor.ID)
}

func (uc *supplierProfileUseCase) UpdateProfile(ctx context.Context, actor model.Actor, userID uint, req *procurement_service.UpdateSupplierProfileRequest) (*model.SupplierProfile, error) {
	uc.logger.InfoContext(ctx, "Updating supplier profile in usecase", "userID", userID)
	if !uc.authz.CanPerform(actor, policy.OpManageProfile) || !uc.authz.CanAccess(actor, userID) {
		return nil, domain.ErrForbidden
	}
	paymentType := model.PaymentType(req.PaymentType)
	if paymentType != model.PaymentAdvance && paymentType != model.PaymentCredit {
		return nil, domain.Validation("unknown payment type %q", req.PaymentType)
	}

	var profile *model.SupplierProfile
	err := uc.repos.Transactor.ExecuteInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		profile, err = uc.EnsureSupplierProfile(txCtx, userID)
		if err != nil {
			return err
		}
		profile.Name = req.Name
		profile.ContactEmail = req.ContactEmail
		profile.Phone = req.Phone
		profile.Address = req.Address
		profile.PaymentType = paymentType
		if err := uc.repos.Profiles.Update(txCtx, profile); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrSupplierProfileNotFound
			}
			return fmt.Errorf("error updating supplier profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "Supplier profile updated in usecase", "userID", userID, "profileID", profile.ID)
	return profile, nil
}

func (uc *supplierProfileUseCase) RepairMissingProfiles(ctx context.Context, actor model.Actor) (*BatchResult[*model.SupplierProfile], error) {
	uc.logger.InfoContext(ctx, "Repairing missing supplier profiles")
	if !uc.authz.CanPerform(actor, policy.OpRepairProfiles) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.repos.Users.ListSuppliersWithoutProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing suppliers without profile: %w", err)
	}

	result := &BatchResult[*model.SupplierProfile]{Created: []*model.SupplierProfile{}, Errors: []string{}}
	for _, user := range users {
		profile, err := uc.EnsureSupplierProfile(ctx, user.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Supplier %d (%s): %v", user.ID, user.Email, err))
			continue
		}
		result.Created = append(result.Created, profile)
	}
	uc.logger.InfoContext(ctx, "Supplier profile repair finished", "repaired", len(result.Created), "errors", len(result.Errors))
	return result, nil
}
