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

// inquiryRepository implements the Inquiry repository interface using PostgreSQL
type inquiryRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewInquiryRepository creates a new instance of inquiryRepository
func NewInquiryRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Inquiry {
	return &inquiryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the inquiry header and then its items
func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	r.logger.InfoContext(ctx, "Creating inquiry", "supplierID", inquiry.SupplierID, "items", len(inquiry.Items))
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(inquiry).Error; err != nil {
			return err
		}
		if len(inquiry.Items) == 0 {
			return nil
		}
		for i := range inquiry.Items {
			inquiry.Items[i].InquiryID = inquiry.ID
		}
		return tx.Omit(clause.Associations).Create(&inquiry.Items).Error
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create inquiry", "supplierID", inquiry.SupplierID, "error", err)
		return fmt.Errorf("failed to create inquiry: %w", translateError(err))
	}
	r.logger.InfoContext(ctx, "Inquiry created successfully", "id", inquiry.ID, "supplierID", inquiry.SupplierID)
	return nil
}

// GetByID loads an inquiry with its supplier and items
func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (*model.Inquiry, error) {
	r.logger.InfoContext(ctx, "Getting inquiry by ID", "id", id)
	var inquiry model.Inquiry
	err := conn(ctx, r.db).
		Preload("Supplier").
		Preload("Items", orderByID("inquiry_items")).
		Preload("Items.Ingredient").
		First(&inquiry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Inquiry not found by ID", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get inquiry by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return &inquiry, nil
}

// UpdateStatus moves an inquiry between two statuses
func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uint, from, to model.InquiryStatus) error {
	r.logger.InfoContext(ctx, "Updating inquiry status", "id", id, "from", from, "to", to)
	result := conn(ctx, r.db).Model(&model.Inquiry{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update inquiry status", "id", id, "to", to, "error", result.Error)
		return fmt.Errorf("failed to update inquiry status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Inquiry not in expected status", "id", id, "from", from)
		return domain.ErrNotFound
	}
	return nil
}

// List retrieves a filtered, paginated list of inquiries, newest first
func (r *inquiryRepository) List(ctx context.Context, filter repository.InquiryFilter) ([]*model.Inquiry, int, error) {
	r.logger.InfoContext(ctx, "Listing inquiries", "status", filter.Status, "offset", filter.Offset, "limit", filter.Limit)
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.SupplierID != nil {
			db = db.Where("supplier_id = ?", *filter.SupplierID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := conn(ctx, r.db).Model(&model.Inquiry{}).Scopes(scope).Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count inquiries", "error", err)
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	var inquiries []*model.Inquiry
	err := conn(ctx, r.db).
		Scopes(scope, paginate(filter.Page)).
		Preload("Supplier").
		Preload("Items", orderByID("inquiry_items")).
		Preload("Items.Ingredient").
		Order("created_at DESC").Order("id DESC").
		Find(&inquiries).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list inquiries", "error", err)
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, int(total), nil
}
