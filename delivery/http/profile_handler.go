package http

import (
	"net/http"

	"procurement-service/contracts/procurement_service"
	"procurement-service/pkg/logger"
	"procurement-service/usecase"
)

// ProfileHandler handles HTTP requests for supplier profiles
type ProfileHandler struct {
	base
	ProfileUseCase usecase.SupplierProfileUseCase
}

// NewProfileHandler creates a new instance of ProfileHandler
func NewProfileHandler(profileUseCase usecase.SupplierProfileUseCase, appLogger logger.LoggerInterface) *ProfileHandler {
	return &ProfileHandler{
		base:           newBase(appLogger),
		ProfileUseCase: profileUseCase,
	}
}

// MeHandler returns the caller's supplier profile, creating it on first use
func (h *ProfileHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	profile, err := h.ProfileUseCase.GetMyProfile(ctx, actor)
	if err != nil {
		h.fail(ctx, w, err, "Failed to get profile")
		return
	}

	h.API.Success(ctx, w, procurement_service.SupplierProfileModelToResponse(profile))
}

// UpdateHandler changes the contact and payment details of a supplier profile
func (h *ProfileHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userID")
	if !ok {
		return
	}

	var req procurement_service.UpdateSupplierProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	profile, err := h.ProfileUseCase.UpdateProfile(ctx, actor, userID, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to update profile")
		return
	}

	h.Logger.InfoContext(ctx, "Supplier profile updated in handler", "userID", userID)
	h.API.Success(ctx, w, procurement_service.SupplierProfileModelToResponse(profile))
}
