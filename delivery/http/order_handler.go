package http

import (
	"fmt"
	"net/http"
	"strconv"

	"procurement-service/contracts/procurement_service"
	"procurement-service/pkg/logger"
	"procurement-service/report"
	"procurement-service/usecase"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	base
	OrderUseCase usecase.OrderUseCase
}

// NewOrderHandler creates a new instance of OrderHandler
func NewOrderHandler(orderUseCase usecase.OrderUseCase, appLogger logger.LoggerInterface) *OrderHandler {
	return &OrderHandler{
		base:         newBase(appLogger),
		OrderUseCase: orderUseCase,
	}
}

// ListHandler lists orders visible to the caller, optionally filtered by status
func (h *OrderHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	offset, limit := paginate(r)
	orders, total, err := h.OrderUseCase.ListOrders(ctx, actor, r.URL.Query().Get("status"), offset, limit)
	if err != nil {
		h.fail(ctx, w, err, "Failed to list orders")
		return
	}

	h.API.SuccessWithMeta(ctx, w, procurement_service.OrderModelsToResponses(orders), pageMeta(offset, limit, total))
}

// GetByIDHandler retrieves one order with its snapshot lines
func (h *OrderHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.OrderUseCase.GetOrder(ctx, actor, id)
	if err != nil {
		h.fail(ctx, w, err, "Failed to get order")
		return
	}

	h.API.Success(ctx, w, procurement_service.OrderModelToResponse(order))
}

// UpdateStatusHandler advances the delivery status of an order
func (h *OrderHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req procurement_service.UpdateOrderStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.OrderUseCase.UpdateOrderStatus(ctx, actor, id, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to update order status")
		return
	}

	h.Logger.InfoContext(ctx, "Order status updated in handler", "id", id, "status", order.Status)
	h.API.Success(ctx, w, procurement_service.OrderModelToResponse(order))
}

// ExportHandler streams the purchase order workbook of an order
func (h *OrderHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	fileName, buf, err := h.OrderUseCase.ExportOrder(ctx, actor, id)
	if err != nil {
		h.fail(ctx, w, err, "Failed to export order")
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.WarnContext(ctx, "Failed to write order export", "id", id, "error", err)
	}
}
