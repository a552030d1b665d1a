package http

import (
	"net/http"

	"procurement-service/contracts/procurement_service"
	"procurement-service/pkg/logger"
	"procurement-service/usecase"
)

// QuoteHandler handles HTTP requests for quotes, including their
// acceptance into orders
type QuoteHandler struct {
	base
	QuoteUseCase usecase.QuoteUseCase
	OrderUseCase usecase.OrderUseCase
}

// NewQuoteHandler creates a new instance of QuoteHandler
func NewQuoteHandler(quoteUseCase usecase.QuoteUseCase, orderUseCase usecase.OrderUseCase, appLogger logger.LoggerInterface) *QuoteHandler {
	return &QuoteHandler{
		base:         newBase(appLogger),
		QuoteUseCase: quoteUseCase,
		OrderUseCase: orderUseCase,
	}
}

// SubmitHandler records the supplier's quote for an inquiry
// Returns a 409 status code when the inquiry was already quoted or cancelled
func (h *QuoteHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	inquiryID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req procurement_service.SubmitQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	quote, err := h.QuoteUseCase.SubmitQuote(ctx, actor, inquiryID, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to submit quote")
		return
	}

	h.Logger.InfoContext(ctx, "Quote submitted in handler", "id", quote.ID, "inquiryID", inquiryID)
	h.API.Created(ctx, w, procurement_service.QuoteModelToResponse(quote))
}

// ListHandler lists quotes visible to the caller, optionally filtered by status
func (h *QuoteHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	offset, limit := paginate(r)
	quotes, total, err := h.QuoteUseCase.ListQuotes(ctx, actor, r.URL.Query().Get("status"), offset, limit)
	if err != nil {
		h.fail(ctx, w, err, "Failed to list quotes")
		return
	}

	h.API.SuccessWithMeta(ctx, w, procurement_service.QuoteModelsToResponses(quotes), pageMeta(offset, limit, total))
}

// GetByIDHandler retrieves one quote with its items
func (h *QuoteHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	quote, err := h.QuoteUseCase.GetQuote(ctx, actor, id)
	if err != nil {
		h.fail(ctx, w, err, "Failed to get quote")
		return
	}

	h.API.Success(ctx, w, procurement_service.QuoteModelToResponse(quote))
}

// DeleteHandler hard deletes a quote
func (h *QuoteHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.QuoteUseCase.DeleteQuote(ctx, actor, id); err != nil {
		h.fail(ctx, w, err, "Failed to delete quote")
		return
	}

	h.Logger.InfoContext(ctx, "Quote deleted in handler", "id", id)
	h.API.Success(ctx, w, map[string]string{"message": "Quote deleted successfully"})
}

// CancelHandler cancels a quote that is still awaiting action
func (h *QuoteHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	quote, err := h.QuoteUseCase.CancelQuote(ctx, actor, id)
	if err != nil {
		h.fail(ctx, w, err, "Failed to cancel quote")
		return
	}

	h.API.Success(ctx, w, procurement_service.QuoteModelToResponse(quote))
}

// AcceptHandler converts the selected quote items into an order
// Returns a 201 status code with the order on success
// Returns a 400 status code when none of the selected items can be ordered
// Returns a 409 status code when the quote was already accepted or is
// being accepted by another request
func (h *QuoteHandler) AcceptHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req procurement_service.AcceptQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.OrderUseCase.AcceptQuote(ctx, actor, id, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to accept quote")
		return
	}

	h.Logger.InfoContext(ctx, "Quote accepted in handler", "quoteID", id, "orderID", order.ID)
	h.API.Created(ctx, w, procurement_service.OrderModelToResponse(order))
}
