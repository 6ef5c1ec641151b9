package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderlust/internal/mirror"
	"wanderlust/internal/repository"
	"wanderlust/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SuccessResponse acknowledges a mutation without a body of its own.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unclassified errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(code, ErrorResponse{Message: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Message: err.Error()})
}

// respondBadRequest sends a 400 with message.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/mirror errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, mirror.ErrInvalidRating),
		errors.Is(err, mirror.ErrEmptyComment):
		return http.StatusBadRequest

	// Identity errors
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, mirror.ErrLoginRequired):
		return http.StatusUnauthorized

	// Ownership errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateAccount),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
