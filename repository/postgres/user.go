package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
)

// userRepository implements the User repository interface using PostgreSQL
type userRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB, logger logger.LoggerInterface) repository.User {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user by their unique identifier
func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	r.logger.InfoContext(ctx, "Getting user by ID", "id", id)
	var user model.User
	if err := conn(ctx, r.db).First(&user, id).Error; err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.WarnContext(ctx, "User not found by ID", "id", id)
			return nil, err
		}
		r.logger.ErrorContext(ctx, "Failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByIDs retrieves every user whose id is in ids
func (r *userRepository) GetByIDs(ctx context.Context, ids []uint) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*model.User
	if err := conn(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&users).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get users by IDs", "ids", ids, "error", err)
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	r.logger.InfoContext(ctx, "Users retrieved by IDs", "requested", len(ids), "found", len(users))
	return users, nil
}

// ListSuppliersWithoutProfile returns supplier accounts with no supplier profile row
func (r *userRepository) ListSuppliersWithoutProfile(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := conn(ctx, r.db).
		Joins("LEFT JOIN supplier_profiles ON supplier_profiles.user_id = users.id").
		Where("users.role = ? AND supplier_profiles.id IS NULL", string(model.RoleSupplier)).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list suppliers without profile", "error", err)
		return nil, fmt.Errorf("failed to list suppliers without profile: %w", err)
	}
	r.logger.InfoContext(ctx, "Suppliers without profile listed", "count", len(users))
	return users, nil
}
