package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var response Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response), "Failed to decode response")
	return response
}

func TestApi_Success(t *testing.T) {
	w := httptest.NewRecorder()
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")

	New().Success(ctx, w, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	response := decodeResponse(t, w)
	assert.Equal(t, StatusSuccess, response.Status)
	assert.Equal(t, "req-1", response.RequestID)
	assert.NotNil(t, response.Data)
	assert.Nil(t, response.Error)
}

func TestApi_Created(t *testing.T) {
	w := httptest.NewRecorder()

	New().Created(context.Background(), w, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, StatusSuccess, decodeResponse(t, w).Status)
}

func TestApi_ErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		call     func(a Api, w http.ResponseWriter)
		wantCode int
		wantErr  string
	}{
		{"bad request", func(a Api, w http.ResponseWriter) { a.BadRequest(context.Background(), w, "bad") }, http.StatusBadRequest, "BAD_REQUEST"},
		{"unauthorized", func(a Api, w http.ResponseWriter) { a.Unauthorized(context.Background(), w, "no token") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(a Api, w http.ResponseWriter) { a.Forbidden(context.Background(), w, "nope") }, http.StatusForbidden, "FORBIDDEN"},
		{"not found", func(a Api, w http.ResponseWriter) { a.NotFound(context.Background(), w, "quote not found") }, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", func(a Api, w http.ResponseWriter) { a.Conflict(context.Background(), w, "duplicate") }, http.StatusConflict, "CONFLICT"},
		{"internal", func(a Api, w http.ResponseWriter) { a.InternalServerError(context.Background(), w, "boom") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.call(New(), w)

			assert.Equal(t, tt.wantCode, w.Code)
			response := decodeResponse(t, w)
			assert.Equal(t, StatusError, response.Status)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.wantErr, response.Error.Code)
		})
	}
}

func TestApi_ValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	details := []ErrorDetail{{Field: "Quantity", Message: "Quantity must be greater than 0"}}

	New().ValidationError(context.Background(), w, details)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response := decodeResponse(t, w)
	require.NotNil(t, response.Error)
	assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	assert.Equal(t, details, response.Error.Details)
}

func TestApi_Partial(t *testing.T) {
	tests := []struct {
		name       string
		created    int
		failed     int
		wantCode   int
		wantStatus string
	}{
		{"all created", 2, 0, http.StatusCreated, StatusSuccess},
		{"some failed", 1, 1, http.StatusCreated, StatusPartial},
		{"all failed", 0, 2, http.StatusUnprocessableEntity, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			New().Partial(context.Background(), w, map[string]any{"errors": []string{}}, tt.created, tt.failed)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantStatus, decodeResponse(t, w).Status)
		})
	}
}

func TestApi_SuccessWithMeta(t *testing.T) {
	w := httptest.NewRecorder()

	New().SuccessWithMeta(context.Background(), w, []int{1, 2}, &Meta{Pagination: NewPagination(0, 2, 5)})

	response := decodeResponse(t, w)
	require.NotNil(t, response.Meta)
	require.NotNil(t, response.Meta.Pagination)
	assert.Equal(t, 3, response.Meta.Pagination.TotalPages)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name                 string
		offset, limit, total int
		want                 Pagination
	}{
		{"empty", 0, 10, 0, Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0}},
		{"first page", 0, 10, 25, Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNextPage: true}},
		{"middle page", 10, 10, 25, Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3, HasNextPage: true, HasPrevPage: true}},
		{"last page", 20, 10, 25, Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3, HasPrevPage: true}},
		{"offset past end", 40, 10, 25, Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3, HasPrevPage: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *NewPagination(tt.offset, tt.limit, tt.total))
		})
	}
}
