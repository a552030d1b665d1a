package http

import (
	"net/http"

	"procurement-service/contracts/procurement_service"
	"procurement-service/domain/model"
	"procurement-service/pkg/logger"
	"procurement-service/usecase"
)

// InquiryHandler handles HTTP requests for inquiries
type InquiryHandler struct {
	base
	InquiryUseCase usecase.InquiryUseCase
}

// NewInquiryHandler creates a new instance of InquiryHandler
func NewInquiryHandler(inquiryUseCase usecase.InquiryUseCase, appLogger logger.LoggerInterface) *InquiryHandler {
	return &InquiryHandler{
		base:           newBase(appLogger),
		InquiryUseCase: inquiryUseCase,
	}
}

// CreateHandler fans a request out into one inquiry per supplier
// Returns a 201 status code when at least one inquiry was created
// Returns a 422 status code with the per-supplier errors when none were
func (h *InquiryHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req procurement_service.CreateInquiryRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.InquiryUseCase.CreateInquiry(ctx, actor, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to create inquiries")
		return
	}

	h.Logger.InfoContext(ctx, "Inquiries created in handler", "created", len(result.Created), "errors", len(result.Errors))
	h.API.Partial(ctx, w, procurement_service.CreateInquiriesResponse{
		Created: procurement_service.InquiryModelsToResponses(result.Created),
		Errors:  nonNil(result.Errors),
	}, len(result.Created), len(result.Errors))
}

// ListHandler lists inquiries visible to the caller, optionally filtered by status
func (h *InquiryHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	offset, limit := paginate(r)
	inquiries, total, err := h.InquiryUseCase.ListInquiries(ctx, actor, r.URL.Query().Get("status"), offset, limit)
	if err != nil {
		h.fail(ctx, w, err, "Failed to list inquiries")
		return
	}

	h.API.SuccessWithMeta(ctx, w, procurement_service.InquiryModelsToResponses(inquiries), pageMeta(offset, limit, total))
}

// GetByIDHandler retrieves one inquiry with its items
func (h *InquiryHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	inquiry, err := h.InquiryUseCase.GetInquiry(ctx, actor, id)
	if err != nil {
		h.fail(ctx, w, err, "Failed to get inquiry")
		return
	}

	h.API.Success(ctx, w, procurement_service.InquiryModelToResponse(inquiry))
}

// UpdateStatusHandler moves an inquiry to a new status
func (h *InquiryHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req procurement_service.UpdateInquiryStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	inquiry, err := h.InquiryUseCase.UpdateStatus(ctx, actor, id, model.InquiryStatus(req.Status))
	if err != nil {
		h.fail(ctx, w, err, "Failed to update inquiry status")
		return
	}

	h.Logger.InfoContext(ctx, "Inquiry status updated in handler", "id", id, "status", inquiry.Status)
	h.API.Success(ctx, w, procurement_service.InquiryModelToResponse(inquiry))
}
