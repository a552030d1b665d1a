package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
)

// quoteRepository implements the Quote repository interface using PostgreSQL
type quoteRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewQuoteRepository creates a new instance of quoteRepository
func NewQuoteRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Quote {
	return &quoteRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the quote header and then its items. The unique index on
// inquiry_id rejects a second quote for the same inquiry.
func (r *quoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	r.logger.InfoContext(ctx, "Creating quote", "inquiryID", quote.InquiryID, "items", len(quote.Items))
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quote).Error; err != nil {
			return err
		}
		if len(quote.Items) == 0 {
			return nil
		}
		for i := range quote.Items {
			quote.Items[i].QuoteID = quote.ID
		}
		return tx.Omit(clause.Associations).Create(&quote.Items).Error
	})
	if err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrDuplicate) {
			r.logger.WarnContext(ctx, "Quote already exists for inquiry", "inquiryID", quote.InquiryID)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to create quote", "inquiryID", quote.InquiryID, "error", err)
		return fmt.Errorf("failed to create quote: %w", err)
	}
	r.logger.InfoContext(ctx, "Quote created successfully", "id", quote.ID, "inquiryID", quote.InquiryID)
	return nil
}

// GetByID deep loads a quote down to the ingredient of every quoted line
func (r *quoteRepository) GetByID(ctx context.Context, id uint) (*model.Quote, error) {
	r.logger.InfoContext(ctx, "Getting quote by ID", "id", id)
	var quote model.Quote
	err := conn(ctx, r.db).
		Preload("Inquiry").
		Preload("Inquiry.Supplier").
		Preload("Items", orderByID("quote_items")).
		Preload("Items.InquiryItem").
		Preload("Items.InquiryItem.Ingredient").
		First(&quote, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Quote not found by ID", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get quote by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &quote, nil
}

// GetByInquiryID retrieves the quote answering an inquiry
func (r *quoteRepository) GetByInquiryID(ctx context.Context, inquiryID uint) (*model.Quote, error) {
	var quote model.Quote
	err := conn(ctx, r.db).Where("inquiry_id = ?", inquiryID).First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get quote by inquiry ID", "inquiryID", inquiryID, "error", err)
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &quote, nil
}

// MarkOrderPlaced records the acceptance of a quote still in the quoted status
func (r *quoteRepository) MarkOrderPlaced(ctx context.Context, id, acceptedBy uint, at time.Time) error {
	r.logger.InfoContext(ctx, "Marking quote as order placed", "id", id, "acceptedBy", acceptedBy)
	result := conn(ctx, r.db).Model(&model.Quote{}).
		Where("id = ? AND status = ?", id, string(model.QuoteQuoted)).
		Updates(map[string]any{
			"status":      string(model.QuoteOrderPlaced),
			"accepted":    true,
			"accepted_by": acceptedBy,
			"accepted_at": at,
		})
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to mark quote as order placed", "id", id, "error", result.Error)
		return fmt.Errorf("failed to update quote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Quote not awaiting acceptance", "id", id)
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus moves a quote between two statuses
func (r *quoteRepository) UpdateStatus(ctx context.Context, id uint, from, to model.QuoteStatus) error {
	r.logger.InfoContext(ctx, "Updating quote status", "id", id, "from", from, "to", to)
	result := conn(ctx, r.db).Model(&model.Quote{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update quote status", "id", id, "error", result.Error)
		return fmt.Errorf("failed to update quote status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Quote not in expected status", "id", id, "from", from)
		return domain.ErrNotFound
	}
	return nil
}

// Delete hard deletes a quote and its items. Orders placed from the quote
// keep their snapshot lines; only their back references are cleared.
func (r *quoteRepository) Delete(ctx context.Context, id uint) error {
	r.logger.InfoContext(ctx, "Deleting quote", "id", id)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&model.QuoteItem{}).Select("id").Where("quote_id = ?", id)
		if err := tx.Model(&model.OrderItem{}).Where("quote_item_id IN (?)", itemIDs).Update("quote_item_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Order{}).Where("quote_id = ?", id).Update("quote_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", id).Delete(&model.QuoteItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Quote{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.WarnContext(ctx, "Quote not found for deletion", "id", id)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to delete quote", "id", id, "error", err)
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	r.logger.InfoContext(ctx, "Quote deleted successfully", "id", id)
	return nil
}

// List retrieves a filtered, paginated list of quotes, newest first
func (r *quoteRepository) List(ctx context.Context, filter repository.QuoteFilter) ([]*model.Quote, int, error) {
	r.logger.InfoContext(ctx, "Listing quotes", "status", filter.Status, "offset", filter.Offset, "limit", filter.Limit)
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
	if err := conn(ctx, r.db).Model(&model.Quote{}).Scopes(scope).Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count quotes", "error", err)
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	var quotes []*model.Quote
	err := conn(ctx, r.db).
		Scopes(scope, paginate(filter.Page)).
		Preload("Inquiry").
		Preload("Inquiry.Supplier").
		Preload("Items", orderByID("quote_items")).
		Order("id DESC").
		Find(&quotes).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list quotes", "error", err)
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, int(total), nil
}
