package http

import (
	"errors"
	"net/http"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an engine error to the HTTP status reported to the caller.
// Ledger and transition conflicts are 409, domain rules the request broke are 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrUnsupportedSource),
		errors.Is(err, errs.ErrBackwardTransition),
		errors.Is(err, errs.ErrFrozenEntity),
		errors.Is(err, errs.ErrAlreadyCompleted),
		errors.Is(err, errs.ErrBeneficiaryMismatch),
		errors.Is(err, errs.ErrTransactionExhausted),
		errors.Is(err, errs.ErrAllocationExceedsRequest),
		errors.Is(err, errs.ErrBatchUnderfunded):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPreconditionNotMet),
		errors.Is(err, errs.ErrMissingEligibilityFields),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged and their text
// is not sent to the caller.
func (s *Server) fail(ctx echo.Context, op string, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"operation", op,
			"error", err,
		)
		return ctx.JSON(status, Error{Code: status, Message: "Failed to " + op})
	}

	s.logger.DebugContext(ctx.Request().Context(), "request rejected",
		"operation", op,
		"status", status,
		"error", err,
	)
	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
