package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
)

// supplierProfileRepository implements the SupplierProfile repository interface using PostgreSQL
type supplierProfileRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewSupplierProfileRepository creates a new instance of supplierProfileRepository
func NewSupplierProfileRepository(db *gorm.DB, logger logger.LoggerInterface) repository.SupplierProfile {
	return &supplierProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a supplier profile. The insert runs in its own
// (nested) transaction so a unique violation rolls back to a savepoint
// and leaves an enclosing unit of work usable.
func (r *supplierProfileRepository) Create(ctx context.Context, profile *model.SupplierProfile) error {
	r.logger.InfoContext(ctx, "Creating supplier profile", "userID", profile.UserID)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(profile).Error
	})
	if err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrDuplicate) {
			r.logger.WarnContext(ctx, "Supplier profile already exists", "userID", profile.UserID)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to create supplier profile", "userID", profile.UserID, "error", err)
		return fmt.Errorf("failed to create supplier profile: %w", err)
	}
	r.logger.InfoContext(ctx, "Supplier profile created successfully", "id", profile.ID, "userID", profile.UserID)
	return nil
}

// GetByID retrieves a supplier profile by its identifier
func (r *supplierProfileRepository) GetByID(ctx context.Context, id uint) (*model.SupplierProfile, error) {
	var profile model.SupplierProfile
	if err := conn(ctx, r.db).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Supplier profile not found by ID", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get supplier profile by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get supplier profile: %w", err)
	}
	return &profile, nil
}

// GetByUserID retrieves the profile of a supplier account
func (r *supplierProfileRepository) GetByUserID(ctx context.Context, userID uint) (*model.SupplierProfile, error) {
	var profile model.SupplierProfile
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get supplier profile by user ID", "userID", userID, "error", err)
		return nil, fmt.Errorf("failed to get supplier profile: %w", err)
	}
	return &profile, nil
}

// Update saves the contact and payment fields of a profile
func (r *supplierProfileRepository) Update(ctx context.Context, profile *model.SupplierProfile) error {
	r.logger.InfoContext(ctx, "Updating supplier profile", "id", profile.ID)
	result := conn(ctx, r.db).Model(profile).
		Select("name", "contact_email", "phone", "address", "payment_type").
		Updates(profile)
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update supplier profile", "id", profile.ID, "error", result.Error)
		return fmt.Errorf("failed to update supplier profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Supplier profile updated successfully", "id", profile.ID)
	return nil
}
