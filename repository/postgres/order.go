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

// orderRepository implements the Order repository interface using PostgreSQL
type orderRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewOrderRepository creates a new instance of orderRepository
func NewOrderRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Order {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the order header. The unique index on quote_id rejects a
// second order for the same quote.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	r.logger.InfoContext(ctx, "Creating order", "quoteID", order.QuoteID, "supplierProfileID", order.SupplierProfileID)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(order).Error; err != nil {
		err = translateError(err)
		if errors.Is(err, domain.ErrDuplicate) {
			r.logger.WarnContext(ctx, "Order already exists for quote", "quoteID", order.QuoteID)
			return err
		}
		r.logger.ErrorContext(ctx, "Failed to create order", "quoteID", order.QuoteID, "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}
	r.logger.InfoContext(ctx, "Order created successfully", "id", order.ID)
	return nil
}

// CreateItems bulk inserts order lines
func (r *orderRepository) CreateItems(ctx context.Context, items []*model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&items).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create order items", "orderID", items[0].OrderID, "error", err)
		return fmt.Errorf("failed to create order items: %w", translateError(err))
	}
	r.logger.InfoContext(ctx, "Order items created successfully", "orderID", items[0].OrderID, "count", len(items))
	return nil
}

// GetByID loads an order with its supplier profile and lines
func (r *orderRepository) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	r.logger.InfoContext(ctx, "Getting order by ID", "id", id)
	var order model.Order
	err := conn(ctx, r.db).
		Preload("SupplierProfile").
		Preload("Items", orderByID("order_items")).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Order not found by ID", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get order by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetByQuoteID retrieves the order placed from a quote
func (r *orderRepository) GetByQuoteID(ctx context.Context, quoteID uint) (*model.Order, error) {
	var order model.Order
	if err := conn(ctx, r.db).Where("quote_id = ?", quoteID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get order by quote ID", "quoteID", quoteID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// Update saves the mutable tracking fields of an order that is still in
// status from
func (r *orderRepository) Update(ctx context.Context, order *model.Order, from model.OrderStatus) error {
	r.logger.InfoContext(ctx, "Updating order", "id", order.ID, "from", from, "status", order.Status)
	result := conn(ctx, r.db).Model(order).
		Where("status = ?", string(from)).
		Select("status", "shipped_at", "arrived_at", "tracking_number", "notes").
		Updates(order)
	if result.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update order", "id", order.ID, "error", result.Error)
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Order not in expected status", "id", order.ID, "from", from)
		return domain.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Order updated successfully", "id", order.ID, "status", order.Status)
	return nil
}

// List retrieves a filtered, paginated list of orders, newest first
func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*model.Order, int, error) {
	r.logger.InfoContext(ctx, "Listing orders", "status", filter.Status, "offset", filter.Offset, "limit", filter.Limit)
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.SupplierUserID != nil {
			profiles := r.db.Model(&model.SupplierProfile{}).Select("id").Where("user_id = ?", *filter.SupplierUserID)
			db = db.Where("supplier_profile_id IN (?)", profiles)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := conn(ctx, r.db).Model(&model.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to count orders", "error", err)
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []*model.Order
	err := conn(ctx, r.db).
		Scopes(scope, paginate(filter.Page)).
		Preload("SupplierProfile").
		Preload("Items", orderByID("order_items")).
		Order("placed_at DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list orders", "error", err)
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, int(total), nil
}
