package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
	"procurement-service/pkg/redis"
)

// QuoteUseCase defines the quote engine operations
type QuoteUseCase interface {
	// SubmitQuote records the single response of the target supplier to an
	// inquiry and moves the inquiry to responded
	SubmitQuote(ctx context.Context, actor model.Actor, inquiryID uint, req *procurement_service.SubmitQuoteRequest) (*model.Quote, error)
	GetQuote(ctx context.Context, actor model.Actor, id uint) (*model.Quote, error)
	ListQuotes(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Quote, int, error)
	// DeleteQuote hard deletes a quote in any status. The inquiry keeps its status.
	DeleteQuote(ctx context.Context, actor model.Actor, id uint) error
	CancelQuote(ctx context.Context, actor model.Actor, id uint) (*model.Quote, error)
}

type quoteUseCase struct {
	repos    Repositories
	authz    policy.Authorizer
	guard    lockGuard
	recorder metrics.Recorder
	logger   logger.LoggerInterface
	now      func() time.Time
}

// NewQuoteUseCase creates a new instance of quoteUseCase
func NewQuoteUseCase(repos Repositories, authz policy.Authorizer, locker redis.Locker, lockTTL time.Duration, recorder metrics.Recorder, appLogger logger.LoggerInterface) QuoteUseCase {
	return &quoteUseCase{
		repos:    repos,
		authz:    authz,
		guard:    newLockGuard(locker, lockTTL, appLogger),
		recorder: recorder,
		logger:   appLogger,
		now:      time.Now,
	}
}

func (uc *quoteUseCase) SubmitQuote(ctx context.Context, actor model.Actor, inquiryID uint, req *procurement_service.SubmitQuoteRequest) (*model.Quote, error) {
	uc.logger.InfoContext(ctx, "Submitting quote in usecase", "inquiryID", inquiryID, "items", len(req.Items))
	if !uc.authz.CanPerform(actor, policy.OpSubmitQuote) {
		uc.logger.WarnContext(ctx, "Actor may not submit quotes", "actorID", actor.ID, "role", actor.Role)
		return nil, domain.ErrForbidden
	}
	if inquiryID == 0 {
		return nil, domain.ErrInvalidID
	}
	if len(req.Items) == 0 {
		return nil, domain.Validation("at least one quote item is required")
	}

	var quote *model.Quote
	err := uc.guard.run(ctx, fmt.Sprintf(lockKeyInquiryFormat, inquiryID), func(ctx context.Context) error {
		return uc.repos.Transactor.ExecuteInTransaction(ctx, func(txCtx context.Context) error {
			inquiry, err := uc.repos.Inquiries.GetByID(txCtx, inquiryID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrInquiryNotFound
				}
				return fmt.Errorf("error getting inquiry: %w", err)
			}
			if !uc.authz.CanAccess(actor, inquiry.SupplierID) {
				uc.logger.WarnContext(txCtx, "Supplier is not the inquiry target", "inquiryID", inquiryID, "actorID", actor.ID)
				return domain.ErrForbidden
			}
			if inquiry.Status == model.InquiryCancelled {
				return domain.ErrInquiryCancelled
			}

			if _, err := uc.repos.Quotes.GetByInquiryID(txCtx, inquiryID); err == nil {
				uc.logger.WarnContext(txCtx, "Inquiry already has a quote", "inquiryID", inquiryID)
				return domain.ErrQuoteExists
			} else if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("error checking existing quote: %w", err)
			}

			items, err := buildQuoteItems(inquiry, req.Items)
			if err != nil {
				return err
			}
			created := &model.Quote{
				InquiryID:   inquiry.ID,
				SupplierID:  inquiry.SupplierID,
				Status:      model.QuoteQuoted,
				RespondedBy: actor.ID,
				RespondedAt: uc.now(),
				Items:       items,
			}
			if err := uc.repos.Quotes.Create(txCtx, created); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					return domain.ErrQuoteExists
				}
				return fmt.Errorf("error creating quote: %w", err)
			}

			// also guards a responded inquiry against a concurrent cancel
			if err := uc.repos.Inquiries.UpdateStatus(txCtx, inquiry.ID, inquiry.Status, model.InquiryResponded); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.logger.WarnContext(txCtx, "Inquiry status changed while quoting", "inquiryID", inquiryID, "from", inquiry.Status)
					return domain.ErrStatusChanged
				}
				return fmt.Errorf("error marking inquiry responded: %w", err)
			}

			quote, err = uc.repos.Quotes.GetByID(txCtx, created.ID)
			return err
		})
	})
	if err != nil {
		var appErr *domain.AppError
		if !errors.As(err, &appErr) {
			uc.logger.ErrorContext(ctx, "Failed to submit quote", "inquiryID", inquiryID, "error", err)
			uc.recorder.RecordOperation(opQuoteSubmitted, metrics.OutcomeFailure)
		}
		return nil, err
	}

	uc.recorder.RecordOperation(opQuoteSubmitted, metrics.OutcomeSuccess)
	uc.logger.InfoContext(ctx, "Quote submitted successfully in usecase", "id", quote.ID, "inquiryID", inquiryID)
	return quote, nil
}

// buildQuoteItems checks every response row against the inquiry. Coverage
// of every requested brand is not enforced.
func buildQuoteItems(inquiry *model.Inquiry, rows []procurement_service.QuoteItemRequest) ([]model.QuoteItem, error) {
	belongs := make(map[uint]bool, len(inquiry.Items))
	for _, item := range inquiry.Items {
		belongs[item.ID] = true
	}
	items := make([]model.QuoteItem, 0, len(rows))
	for _, row := range rows {
		if !belongs[row.InquiryItemID] {
			return nil, domain.Validation("inquiry item %d does not belong to inquiry %d", row.InquiryItemID, inquiry.ID)
		}
		item := model.QuoteItem{
			InquiryItemID: row.InquiryItemID,
			BrandName:     row.BrandName,
			IsNil:         row.IsNil,
		}
		if !row.IsNil {
			if row.Price == nil {
				return nil, domain.Validation("price is required for inquiry item %d brand %q", row.InquiryItemID, row.BrandName)
			}
			if *row.Price <= 0 {
				return nil, domain.Validation("price for inquiry item %d brand %q must be positive", row.InquiryItemID, row.BrandName)
			}
			price := *row.Price
			item.Price = &price
		}
		items = append(items, item)
	}
	return items, nil
}

// GetQuote retrieves a quote visible to the actor
func (uc *quoteUseCase) GetQuote(ctx context.Context, actor model.Actor, id uint) (*model.Quote, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	quote, err := uc.repos.Quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("error getting quote: %w", err)
	}
	if !uc.authz.CanAccess(actor, quote.SupplierID) {
		return nil, domain.ErrForbidden
	}
	return quote, nil
}

// ListQuotes lists quotes; status quoted yields the ones awaiting action
func (uc *quoteUseCase) ListQuotes(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Quote, int, error) {
	if status != "" && !policy.IsKnownStatus(policy.EntityQuote, status) {
		return nil, 0, domain.Validation("unknown quote status %q", status)
	}
	filter := repository.QuoteFilter{
		Page:       page(offset, limit),
		SupplierID: ownerScope(uc.authz, actor),
		Status:     status,
	}
	quotes, total, err := uc.repos.Quotes.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing quotes: %w", err)
	}
	return quotes, total, nil
}

func (uc *quoteUseCase) DeleteQuote(ctx context.Context, actor model.Actor, id uint) error {
	uc.logger.InfoContext(ctx, "Deleting quote in usecase", "id", id)
	if !uc.authz.CanPerform(actor, policy.OpDeleteQuote) {
		return domain.ErrForbidden
	}
	if id == 0 {
		return domain.ErrInvalidID
	}
	if err := uc.repos.Quotes.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrQuoteNotFound
		}
		uc.logger.ErrorContext(ctx, "Failed to delete quote in repository", "id", id, "error", err)
		return fmt.Errorf("error deleting quote: %w", err)
	}
	uc.logger.InfoContext(ctx, "Quote deleted successfully in usecase", "id", id)
	return nil
}

// CancelQuote moves a quote awaiting action to cancelled
func (uc *quoteUseCase) CancelQuote(ctx context.Context, actor model.Actor, id uint) (*model.Quote, error) {
	uc.logger.InfoContext(ctx, "Cancelling quote in usecase", "id", id)
	if !uc.authz.CanPerform(actor, policy.OpCancelQuote) {
		return nil, domain.ErrForbidden
	}
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	quote, err := uc.repos.Quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("error getting quote: %w", err)
	}
	res := policy.Resource{Entity: policy.EntityQuote, OwnerID: quote.SupplierID}
	if quote.Status == model.QuoteCancelled {
		return quote, nil
	}
	if err := transitionError(uc.authz, actor, res, string(quote.Status), string(model.QuoteCancelled)); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, domain.ErrQuoteNotQuoted
		}
		return nil, err
	}
	if err := uc.repos.Quotes.UpdateStatus(ctx, id, model.QuoteQuoted, model.QuoteCancelled); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrQuoteNotQuoted
		}
		return nil, fmt.Errorf("error cancelling quote: %w", err)
	}
	quote.Status = model.QuoteCancelled
	uc.logger.InfoContext(ctx, "Quote cancelled successfully in usecase", "id", id)
	return quote, nil
}
