// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive-backend/internal/pagination"
	"github.com/taskhive/taskhive-backend/internal/repository"
	"github.com/taskhive/taskhive-backend/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	Field       string               `json:"field,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// PageMeta describes the full result set behind one returned page.
type PageMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// PagePayload is the envelope for list endpoints: the page under data, the
// set description under meta.
type PagePayload struct {
	Data any      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	// List-query validation failures carry the offending parameter and raw
	// value; echo the parameter so clients can fix the request.
	if errors.Is(err, pagination.ErrInvalidQuery) {
		payload := ErrorPayload{Error: "invalid_query", Message: "invalid list query parameters"}
		if ve, ok := pagination.AsValidation(err); ok {
			payload.Field = ve.Field
			payload.Message = ve.Error()
		}
		return http.StatusBadRequest, payload
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	case errors.Is(err, pagination.ErrInternalConsistency):
		// Data layer broke its paging contract; a bug, not client input.
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// WritePage writes a paginated result in the data/meta envelope.
func WritePage[T any](c *gin.Context, res pagination.PageResult[T]) {
	c.JSON(http.StatusOK, PagePayload{
		Data: res.Items,
		Meta: PageMeta{Total: res.TotalCount, Page: res.Page, PageSize: res.PageSize},
	})
}
