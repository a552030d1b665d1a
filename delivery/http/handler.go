// Package http contains HTTP delivery implementations for the application
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/pkg/api"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/validator"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// base carries the collaborators every resource handler shares
type base struct {
	Logger logger.LoggerInterface
	API    api.Api
}

func newBase(appLogger logger.LoggerInterface) base {
	return base{Logger: appLogger, API: api.NewWithLogger(appLogger)}
}

// actor returns the caller resolved by JWTMiddleware and answers 401 when
// the route was mounted without it
func (b base) actor(w http.ResponseWriter, r *http.Request) (model.Actor, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		b.API.Unauthorized(r.Context(), w, "Missing caller identity")
	}
	return actor, ok
}

// pathID parses a positive integer URL parameter
func (b base) pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		b.API.BadRequest(r.Context(), w, domain.ErrInvalidID.Message)
		return 0, false
	}
	return uint(id), true
}

// decode reads and validates a JSON body, answering 400 or 422 itself
func (b base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		b.Logger.WarnContext(ctx, "Invalid request body", "path", r.URL.Path, "error", err)
		b.API.BadRequest(ctx, w, "Invalid request body")
		return false
	}
	if validationErrors := validator.ValidateStruct(dst); validationErrors != nil {
		b.Logger.WarnContext(ctx, "Validation failed", "path", r.URL.Path, "errors", validationErrors)
		b.API.ValidationError(ctx, w, convertValidationErrors(validationErrors))
		return false
	}
	return true
}

// fail maps a usecase error to its response. AppErrors carry their own
// status; anything else is logged and hidden behind a 500.
func (b base) fail(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		b.Logger.ErrorContext(ctx, fallback, "error", err)
		b.API.InternalServerError(ctx, w, fallback)
		return
	}

	switch appErr.Code {
	case http.StatusBadRequest:
		b.API.BadRequest(ctx, w, appErr.Message)
	case http.StatusForbidden:
		b.API.Forbidden(ctx, w, appErr.Message)
	case http.StatusNotFound:
		b.API.NotFound(ctx, w, appErr.Message)
	case http.StatusConflict:
		b.API.Conflict(ctx, w, appErr.Message)
	default:
		b.Logger.ErrorContext(ctx, fallback, "error", err)
		b.API.InternalServerError(ctx, w, fallback)
	}
}

// paginate reads offset and limit, clamping limit to maxPageLimit
func paginate(r *http.Request) (int, int) {
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}

func pageMeta(offset, limit, total int) *api.Meta {
	return &api.Meta{Pagination: api.NewPagination(offset, limit, total)}
}

func convertValidationErrors(validationErrors map[string]string) []api.ErrorDetail {
	details := make([]api.ErrorDetail, 0, len(validationErrors))
	for field, message := range validationErrors {
		details = append(details, api.ErrorDetail{
			Field:   field,
			Message: message,
		})
	}
	return details
}
