package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound},
		{"missing transaction", errs.NewLedgerError(errs.ErrTransactionNotFound, "txn", ""), http.StatusNotFound},
		{"forbidden", errs.NewForbiddenError("record bank transaction", "SECURITY"), http.StatusForbidden},
		{"backward transition", errs.NewTransitionError(errs.ErrBackwardTransition, "vehicle", "GATE_IN", "ARRIVED"), http.StatusConflict},
		{"frozen order", errs.NewTransitionError(errs.ErrFrozenEntity, "order", "HOLD", "GATE_IN"), http.StatusConflict},
		{"exhausted transaction", errs.NewLedgerError(errs.ErrTransactionExhausted, "txn", ""), http.StatusConflict},
		{"underfunded batch", errs.NewLedgerError(errs.ErrBatchUnderfunded, "batch", ""), http.StatusConflict},
		{"duplicate", errs.NewConflictError("soNumber", nil), http.StatusConflict},
		{"missing POD", errs.NewPreconditionNotMetError("POD document", "vehicle 1"), http.StatusUnprocessableEntity},
		{"missing fields", errs.NewMissingEligibilityFieldsError([]string{"pinCode"}), http.StatusUnprocessableEntity},
		{"validation", errors.Join(errs.NewValueIsRequiredError("orderIds"), errs.NewValueIsInvalidError("status")), http.StatusUnprocessableEntity},
		{"ceiling", errs.NewValueIsOutOfRangeError("requestedAmount", 11, 0, 10), http.StatusUnprocessableEntity},
		{"wrapped", fmt.Errorf("assign: %w", errs.NewObjectNotFoundError("order", "1")), http.StatusNotFound},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
