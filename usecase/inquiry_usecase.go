package usecase

import (
	"context"
	"errors"
	"fmt"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/policy"
	"procurement-service/domain/repository"
	"procurement-service/notification"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
)

// InquiryUseCase defines the inquiry engine operations
type InquiryUseCase interface {
	// CreateInquiry fans the requested items out into one inquiry per
	// supplier, keeping only the items each supplier's catalog offers.
	// Every supplier is handled in its own transaction.
	CreateInquiry(ctx context.Context, actor model.Actor, req *procurement_service.CreateInquiryRequest) (*BatchResult[*model.Inquiry], error)
	UpdateStatus(ctx context.Context, actor model.Actor, id uint, status model.InquiryStatus) (*model.Inquiry, error)
	GetInquiry(ctx context.Context, actor model.Actor, id uint) (*model.Inquiry, error)
	ListInquiries(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Inquiry, int, error)
}

type inquiryUseCase struct {
	repos    Repositories
	authz    policy.Authorizer
	notifier notification.Notifier
	recorder metrics.Recorder
	logger   logger.LoggerInterface
}

// NewInquiryUseCase creates a new instance of inquiryUseCase
func NewInquiryUseCase(repos Repositories, authz policy.Authorizer, notifier notification.Notifier, recorder metrics.Recorder, appLogger logger.LoggerInterface) InquiryUseCase {
	return &inquiryUseCase{
		repos:    repos,
		authz:    authz,
		notifier: notifier,
		recorder: recorder,
		logger:   appLogger,
	}
}

func (uc *inquiryUseCase) CreateInquiry(ctx context.Context, actor model.Actor, req *procurement_service.CreateInquiryRequest) (*BatchResult[*model.Inquiry], error) {
	supplierIDs := uniqueIDs(req.SupplierIDs)
	uc.logger.InfoContext(ctx, "Creating inquiries in usecase", "items", len(req.Items), "suppliers", len(supplierIDs))
	if !uc.authz.CanPerform(actor, policy.OpCreateInquiry) {
		uc.logger.WarnContext(ctx, "Actor may not create inquiries", "actorID", actor.ID, "role", actor.Role)
		return nil, domain.ErrForbidden
	}
	if len(req.Items) == 0 {
		return nil, domain.Validation("at least one ingredient is required")
	}
	if len(supplierIDs) == 0 {
		return nil, domain.Validation("at least one supplier is required")
	}
	requestedIDs := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, domain.Validation("quantity for ingredient %d must be positive", item.IngredientID)
		}
		requestedIDs = append(requestedIDs, item.IngredientID)
	}

	result := &BatchResult[*model.Inquiry]{Created: []*model.Inquiry{}, Errors: []string{}}
	for _, supplierID := range supplierIDs {
		supplier, err := uc.repos.Users.GetByID(ctx, supplierID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			uc.logger.ErrorContext(ctx, "Failed to load supplier", "supplierID", supplierID, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("Error for Supplier %d: %v", supplierID, err))
			uc.recorder.RecordOperation(opInquiryCreated, metrics.OutcomeFailure)
			continue
		}
		if supplier == nil || !supplier.IsSupplier() {
			uc.logger.WarnContext(ctx, "Inquiry target is not a valid supplier", "supplierID", supplierID)
			result.Errors = append(result.Errors, fmt.Sprintf("User %d is not a valid supplier", supplierID))
			uc.recorder.RecordOperation(opInquiryCreated, metrics.OutcomeSkipped)
			continue
		}

		inquiry, err := uc.createForSupplier(ctx, actor, supplier, req, requestedIDs)
		if err != nil {
			if errors.Is(err, errNothingOffered) {
				uc.logger.WarnContext(ctx, "Supplier offers none of the requested ingredients", "supplierID", supplierID)
				result.Errors = append(result.Errors, fmt.Sprintf("Supplier %s does not offer any of the selected ingredients", supplier.Name))
				uc.recorder.RecordOperation(opInquiryCreated, metrics.OutcomeSkipped)
				continue
			}
			uc.logger.ErrorContext(ctx, "Failed to create inquiry for supplier", "supplierID", supplierID, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("Error for Supplier %d: %v", supplierID, err))
			uc.recorder.RecordOperation(opInquiryCreated, metrics.OutcomeFailure)
			continue
		}

		result.Created = append(result.Created, inquiry)
		uc.recorder.RecordOperation(opInquiryCreated, metrics.OutcomeSuccess)
		uc.notifier.Send(ctx, notification.Recipients(supplier.NotificationEmails()), notification.NewInquiryCreated(inquiry))
	}

	uc.logger.InfoContext(ctx, "Inquiries processed", "created", len(result.Created), "errors", len(result.Errors))
	return result, nil
}

var errNothingOffered = errors.New("supplier offers none of the requested ingredients")

// createForSupplier creates one inquiry in one transaction and returns it
// fully loaded for the notification
func (uc *inquiryUseCase) createForSupplier(ctx context.Context, actor model.Actor, supplier *model.User, req *procurement_service.CreateInquiryRequest, requestedIDs []uint) (*model.Inquiry, error) {
	var created *model.Inquiry
	err := uc.repos.Transactor.ExecuteInTransaction(ctx, func(txCtx context.Context) error {
		offeredIDs, err := uc.repos.Catalog.OfferedIngredientIDs(txCtx, supplier.ID, requestedIDs)
		if err != nil {
			return err
		}
		offered := make(map[uint]bool, len(offeredIDs))
		for _, id := range offeredIDs {
			offered[id] = true
		}

		inquiry := &model.Inquiry{
			SupplierID: supplier.ID,
			CreatedBy:  actor.ID,
			Notes:      req.Notes,
			Status:     model.InquiryOpen,
		}
		for _, item := range req.Items {
			if !offered[item.IngredientID] {
				continue
			}
			brands := item.Brands
			if brands == nil {
				brands = []string{}
			}
			inquiry.Items = append(inquiry.Items, model.InquiryItem{
				IngredientID: item.IngredientID,
				Quantity:     item.Quantity,
				Brands:       brands,
			})
		}
		if len(inquiry.Items) == 0 {
			return errNothingOffered
		}

		if err := uc.repos.Inquiries.Create(txCtx, inquiry); err != nil {
			return err
		}
		created, err = uc.repos.Inquiries.GetByID(txCtx, inquiry.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus moves an inquiry along its state machine. Re-applying the
// current status returns the inquiry unchanged.
func (uc *inquiryUseCase) UpdateStatus(ctx context.Context, actor model.Actor, id uint, status model.InquiryStatus) (*model.Inquiry, error) {
	uc.logger.InfoContext(ctx, "Updating inquiry status in usecase", "id", id, "status", status)
	if !policy.IsKnownStatus(policy.EntityInquiry, string(status)) {
		return nil, domain.Validation("unknown inquiry status %q", status)
	}
	inquiry, err := uc.repos.Inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, fmt.Errorf("error getting inquiry: %w", err)
	}

	res := policy.Resource{Entity: policy.EntityInquiry, OwnerID: inquiry.SupplierID}
	if err := transitionError(uc.authz, actor, res, string(inquiry.Status), string(status)); err != nil {
		uc.logger.WarnContext(ctx, "Inquiry status transition rejected", "id", id, "from", inquiry.Status, "to", status, "actorID", actor.ID)
		return nil, err
	}
	if inquiry.Status == status {
		return inquiry, nil
	}

	if err := uc.repos.Inquiries.UpdateStatus(ctx, id, inquiry.Status, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Inquiry status changed concurrently", "id", id, "from", inquiry.Status)
			return nil, domain.ErrStatusChanged
		}
		return nil, fmt.Errorf("error updating inquiry status: %w", err)
	}
	inquiry.Status = status
	uc.logger.InfoContext(ctx, "Inquiry status updated in usecase", "id", id, "status", status)
	return inquiry, nil
}

// GetInquiry retrieves an inquiry visible to the actor
func (uc *inquiryUseCase) GetInquiry(ctx context.Context, actor model.Actor, id uint) (*model.Inquiry, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	inquiry, err := uc.repos.Inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, fmt.Errorf("error getting inquiry: %w", err)
	}
	if !uc.authz.CanAccess(actor, inquiry.SupplierID) {
		return nil, domain.ErrForbidden
	}
	return inquiry, nil
}

// ListInquiries lists every inquiry for admins and only their own for suppliers
func (uc *inquiryUseCase) ListInquiries(ctx context.Context, actor model.Actor, status string, offset, limit int) ([]*model.Inquiry, int, error) {
	if status != "" && !policy.IsKnownStatus(policy.EntityInquiry, status) {
		return nil, 0, domain.Validation("unknown inquiry status %q", status)
	}
	filter := repository.InquiryFilter{
		Page:       page(offset, limit),
		SupplierID: ownerScope(uc.authz, actor),
		Status:     status,
	}
	inquiries, total, err := uc.repos.Inquiries.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing inquiries: %w", err)
	}
	return inquiries, total, nil
}
