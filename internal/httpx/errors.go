package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evstore/storefront/internal/apperr"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: cart item not found
	Error string `json:"error"`
	// Error kind, stable across releases
	// example: not_found
	Kind apperr.Kind `json:"kind"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidTransition, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindEmptyCart:
		return http.StatusUnprocessableEntity
	case apperr.KindStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError aborts the request with the status and body derived from err.
// Storage and unknown errors are not echoed to the client.
func WriteError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	msg := err.Error()
	switch kind {
	case apperr.KindStorage:
		msg = "storage unavailable, try again"
	case apperr.KindUnknown:
		msg = "internal error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusFor(kind), HTTPError{Error: msg, Kind: kind})
}

// ParamUUID parses a path parameter as a UUID, writing a 400 on failure.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		WriteError(c, apperr.Invalid(name, "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
