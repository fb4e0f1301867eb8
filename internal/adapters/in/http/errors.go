package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newErrorResponse(code int, message string) errorResponse {
	return errorResponse{Code: code, Message: message}
}

// statusCodeOf maps core failures onto HTTP status codes. Order matters:
// a missing reason is reported as bad input before any generic check.
func statusCodeOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNoActiveGracePeriod),
		errors.Is(err, order.ErrGracePeriodExpired),
		errors.Is(err, order.ErrIneligibleForReassignment),
		errors.Is(err, order.ErrIneligibleForEscalationAction),
		errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, order.ErrMissingRequiredReason),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// outcomeOf labels err for the action counter.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	switch statusCodeOf(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "invalid"
	default:
		return "error"
	}
}
