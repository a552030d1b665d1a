package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/domain/repository"
	"procurement-service/notification"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
	"procurement-service/pkg/redis"
	"procurement-service/report"
)

// OrderUseCase defines the order conversion and status tracking operations
type OrderUseCase interface {
	// AcceptQuote converts the selected priced lines of a quote into an
	// order. Selected ids that are unknown or marked no stock are skipped.
	AcceptQuote(ctx context.Context, actor model.Actor, quoteID uint, req *procurement_service.AcceptQuoteRequest) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateOrderStatusRequest) (*model.Order, error)
	GetOrder(ctx context.Context, actor model.Actor, id uint) (*model.Order, error)
	ListOrders(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Order, int, error)
	// ExportOrder renders the purchase order workbook and its file name
	ExportOrder(ctx context.Context, actor model.Actor, id uint) (string, *bytes.Buffer, error)
}

type orderUseCase struct {
	repos    Repositories
	authz    policy.Authorizer
	profiles SupplierProfileUseCase
	notifier notification.Notifier
	guard    lockGuard
	recorder metrics.Recorder
	logger   logger.LoggerInterface
	now      func() time.Time
}

// NewOrderUseCase creates a new instance of orderUseCase
func NewOrderUseCase(
	repos Repositories,
	authz policy.Authorizer,
	profiles SupplierProfileUseCase,
	notifier notification.Notifier,
	locker redis.Locker,
	lockTTL time.Duration,
	recorder metrics.Recorder,
	appLogger logger.LoggerInterface,
) OrderUseCase {
	return &orderUseCase{
		repos:    repos,
		authz:    authz,
		profiles: profiles,
		notifier: notifier,
		guard:    newLockGuard(locker, lockTTL, appLogger),
		recorder: recorder,
		logger:   appLogger,
		now:      time.Now,
	}
}

func (uc *orderUseCase) AcceptQuote(ctx context.Context, actor model.Actor, quoteID uint, req *procurement_service.AcceptQuoteRequest) (*model.Order, error) {
	selected := uniqueIDs(req.QuoteItemIDs)
	uc.logger.InfoContext(ctx, "Accepting quote in usecase", "quoteID", quoteID, "selected", len(selected))
	if !uc.authz.CanPerform(actor, policy.OpAcceptQuote) {
		uc.logger.WarnContext(ctx, "Actor may not accept quotes", "actorID", actor.ID, "role", actor.Role)
		return nil, domain.ErrForbidden
	}
	if quoteID == 0 {
		return nil, domain.ErrInvalidID
	}
	if len(selected) == 0 {
		return nil, domain.ErrEmptySelection
	}

	var (
		order    *model.Order
		supplier model.User
	)
	err := uc.guard.run(ctx, fmt.Sprintf(lockKeyQuoteFormat, quoteID), func(ctx context.Context) error {
		return uc.repos.Transactor.ExecuteInTransaction(ctx, func(txCtx context.Context) error {
			quote, err := uc.repos.Quotes.GetByID(txCtx, quoteID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrQuoteNotFound
				}
				return fmt.Errorf("error getting quote: %w", err)
			}
			if _, err := uc.repos.Orders.GetByQuoteID(txCtx, quoteID); err == nil {
				uc.logger.WarnContext(txCtx, "Quote already converted to an order", "quoteID", quoteID)
				return domain.ErrOrderExists
			} else if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("error checking existing order: %w", err)
			}
			res := policy.Resource{Entity: policy.EntityQuote, OwnerID: quote.SupplierID}
			if err := transitionError(uc.authz, actor, res, string(quote.Status), string(model.QuoteOrderPlaced)); err != nil {
				if errors.Is(err, domain.ErrInvalidTransition) {
					return domain.ErrQuoteNotQuoted
				}
				return err
			}
			if quote.Status != model.QuoteQuoted {
				return domain.ErrQuoteNotQuoted
			}

			lines := uc.selectLines(txCtx, quote, selected)
			if len(lines) == 0 {
				return domain.ErrNoSelectableQuoteItems
			}

			profile, err := uc.profiles.EnsureSupplierProfile(txCtx, quote.SupplierID)
			if err != nil {
				return err
			}

			placedAt := uc.now()
			var total float64
			for _, line := range lines {
				total += line.LineTotal
			}
			order = &model.Order{
				QuoteID:           &quote.ID,
				SupplierProfileID: profile.ID,
				CreatedBy:         actor.ID,
				Status:            model.OrderPlaced,
				PlacedAt:          placedAt,
				TotalAmount:       roundCents(total),
			}
			if err := uc.repos.Orders.Create(txCtx, order); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					return domain.ErrOrderExists
				}
				return fmt.Errorf("error creating order: %w", err)
			}

			items := make([]*model.OrderItem, len(lines))
			for i := range lines {
				lines[i].OrderID = order.ID
				items[i] = &lines[i]
			}
			if err := uc.repos.Orders.CreateItems(txCtx, items); err != nil {
				return fmt.Errorf("error creating order items: %w", err)
			}

			if err := uc.repos.Quotes.MarkOrderPlaced(txCtx, quote.ID, actor.ID, placedAt); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrQuoteNotQuoted
				}
				return fmt.Errorf("error marking quote as order placed: %w", err)
			}

			order.Items = lines
			order.SupplierProfile = *profile
			supplier = quote.Inquiry.Supplier
			return nil
		})
	})
	if err != nil {
		var appErr *domain.AppError
		if !errors.As(err, &appErr) {
			uc.logger.ErrorContext(ctx, "Failed to accept quote", "quoteID", quoteID, "error", err)
			uc.recorder.RecordOperation(opOrderPlaced, metrics.OutcomeFailure)
		}
		return nil, err
	}

	uc.recorder.RecordOperation(opOrderPlaced, metrics.OutcomeSuccess)
	recipients := notification.Recipients(supplier.NotificationEmails(), []string{order.SupplierProfile.ContactEmail})
	uc.notifier.Send(ctx, recipients, notification.NewOrderPlaced(order, order.SupplierProfile.Name))

	uc.logger.InfoContext(ctx, "Quote accepted successfully in usecase", "quoteID", quoteID, "orderID", order.ID, "lines", len(order.Items), "total", order.TotalAmount)
	return order, nil
}

// selectLines snapshots the selected orderable quote items in selection order
func (uc *orderUseCase) selectLines(ctx context.Context, quote *model.Quote, selected []uint) []model.OrderItem {
	byID := make(map[uint]*model.QuoteItem, len(quote.Items))
	for i := range quote.Items {
		byID[quote.Items[i].ID] = &quote.Items[i]
	}
	lines := make([]model.OrderItem, 0, len(selected))
	for _, id := range selected {
		item, ok := byID[id]
		if !ok || !item.Orderable() {
			uc.logger.WarnContext(ctx, "Skipping unselectable quote item", "quoteID", quote.ID, "quoteItemID", id, "found", ok)
			continue
		}
		itemID := item.ID
		quantity := item.InquiryItem.Quantity
		price := *item.Price
		lines = append(lines, model.OrderItem{
			QuoteItemID:    &itemID,
			IngredientName: item.InquiryItem.Ingredient.Name,
			BrandName:      item.BrandName,
			Unit:           item.InquiryItem.Ingredient.Unit,
			Quantity:       quantity,
			Price:          price,
			LineTotal:      roundCents(quantity * price),
		})
	}
	return lines
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// UpdateOrderStatus advances an order one step, or cancels it. Each
// timestamp is stamped once, on the first transition into its status.
func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, actor model.Actor, id uint, req *procurement_service.UpdateOrderStatusRequest) (*model.Order, error) {
	status := model.OrderStatus(req.Status)
	uc.logger.InfoContext(ctx, "Updating order status in usecase", "id", id, "status", status)
	if !policy.IsKnownStatus(policy.EntityOrder, string(status)) {
		return nil, domain.Validation("unknown order status %q", req.Status)
	}

	if id == 0 {
		return nil, domain.ErrInvalidID
	}

	var order *model.Order
	err := uc.guard.run(ctx, fmt.Sprintf(lockKeyOrderFormat, id), func(ctx context.Context) error {
		return uc.repos.Transactor.ExecuteInTransaction(ctx, func(txCtx context.Context) error {
			current, err := uc.repos.Orders.GetByID(txCtx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrOrderNotFound
				}
				return fmt.Errorf("error getting order: %w", err)
			}

			from := current.Status
			res := policy.Resource{Entity: policy.EntityOrder, OwnerID: current.SupplierProfile.UserID}
			if err := transitionError(uc.authz, actor, res, string(from), string(status)); err != nil {
				uc.logger.WarnContext(txCtx, "Order status transition rejected", "id", id, "from", from, "to", status, "actorID", actor.ID)
				return err
			}

			now := uc.now()
			current.Status = status
			switch status {
			case model.OrderShipped:
				if current.ShippedAt == nil {
					current.ShippedAt = &now
				}
			case model.OrderReceived:
				if current.ArrivedAt == nil {
					current.ArrivedAt = &now
				}
			}
			if req.TrackingNumber != nil {
				current.TrackingNumber = *req.TrackingNumber
			}
			if req.Notes != nil {
				current.Notes = *req.Notes
			}

			if err := uc.repos.Orders.Update(txCtx, current, from); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.logger.WarnContext(txCtx, "Order status changed concurrently", "id", id, "from", from)
					return domain.ErrStatusChanged
				}
				return fmt.Errorf("error updating order: %w", err)
			}
			order = current
			return nil
		})
	})
	if err != nil {
		var appErr *domain.AppError
		if !errors.As(err, &appErr) {
			uc.logger.ErrorContext(ctx, "Failed to update order status", "id", id, "error", err)
		}
		return nil, err
	}
	uc.logger.InfoContext(ctx, "Order status updated in usecase", "id", id, "status", status)
	return order, nil
}

// GetOrder retrieves an order visible to the actor
func (uc *orderUseCase) GetOrder(ctx context.Context, actor model.Actor, id uint) (*model.Order, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	order, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("error getting order: %w", err)
	}
	if !uc.authz.CanAccess(actor, order.SupplierProfile.UserID) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ListOrders lists every order for admins and the orders of their own profile for suppliers
func (uc *orderUseCase) ListOrders(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Order, int, error) {
	if status != "" && !policy.IsKnownStatus(policy.EntityOrder, status) {
		return nil, 0, domain.Validation("unknown order status %q", status)
	}
	filter := repository.OrderFilter{
		Page:           page(offset, limit),
		SupplierUserID: ownerScope(uc.authz, actor),
		Status:         status,
	}
	orders, total, err := uc.repos.Orders.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing orders: %w", err)
	}
	return orders, total, nil
}

func (uc *orderUseCase) ExportOrder(ctx context.Context, actor model.Actor, id uint) (string, *bytes.Buffer, error) {
	if !uc.authz.CanPerform(actor, policy.OpExportOrder) {
		return "", nil, domain.ErrForbidden
	}
	order, err := uc.GetOrder(ctx, actor, id)
	if err != nil {
		return "", nil, err
	}
	buf, err := report.OrderWorkbook(order)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Failed to render order workbook", "id", id, "error", err)
		return "", nil, fmt.Errorf("error rendering order workbook: %w", err)
	}
	uc.logger.InfoContext(ctx, "Order exported", "id", id, "bytes", buf.Len())
	return report.OrderFileName(order), buf, nil
}
