package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("duplicate key")

	tests := []struct {
		name     string
		err      error
		expected string
		kind     error
	}{
		{
			name:     "missing order",
			err:      errs.NewObjectNotFoundError("orderID", "so-1"),
			expected: "object not found: so-1",
			kind:     errs.ErrObjectNotFound,
		},
		{
			name:     "missing vehicle with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("vehicleID", "v-1", errors.New("record not found")),
			expected: "object not found: param is: vehicleID, ID is: v-1 (cause: record not found)",
			kind:     errs.ErrObjectNotFound,
		},
		{
			name:     "invalid source",
			err:      errs.NewValueIsInvalidError("source"),
			expected: "value is invalid: source",
			kind:     errs.ErrValueIsInvalid,
		},
		{
			name:     "invalid role with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("role", errors.New("unknown role DRIVER")),
			expected: "value is invalid: role (cause: unknown role DRIVER)",
			kind:     errs.ErrValueIsInvalid,
		},
		{
			name:     "loading quantity out of range",
			err:      errs.NewValueIsOutOfRangeError("loadingQuantity", -5, 0, 1000),
			expected: "value is invalid: -5 is loadingQuantity, min value is 0, max value is 1000",
			kind:     errs.ErrValueIsOutOfRange,
		},
		{
			name:     "missing vehicle number",
			err:      errs.NewValueIsRequiredError("vehicleNumber"),
			expected: "value is required: vehicleNumber",
			kind:     errs.ErrValueIsRequired,
		},
		{
			name:     "duplicate order number",
			err:      errs.NewConflictError("soNumber", cause),
			expected: "conflict: soNumber (cause: duplicate key)",
			kind:     errs.ErrConflict,
		},
		{
			name:     "conflict without cause",
			err:      errs.NewConflictError("transactionCode", nil),
			expected: "conflict: transactionCode",
			kind:     errs.ErrConflict,
		},
		{
			name:     "restricted role",
			err:      errs.NewForbiddenError("set vehicle financials", "SECURITY"),
			expected: "forbidden: set vehicle financials is not allowed for role SECURITY",
			kind:     errs.ErrForbidden,
		},
		{
			name:     "backward vehicle move",
			err:      errs.NewTransitionError(errs.ErrBackwardTransition, "vehicle", "GATE_IN", "ARRIVED"),
			expected: "backward transition: vehicle GATE_IN -> ARRIVED",
			kind:     errs.ErrBackwardTransition,
		},
		{
			name:     "frozen order",
			err:      errs.NewTransitionError(errs.ErrFrozenEntity, "order", "HOLD", "GATE_IN"),
			expected: "entity is frozen: order HOLD -> GATE_IN",
			kind:     errs.ErrFrozenEntity,
		},
		{
			name:     "order lacks dispatch fields",
			err:      errs.NewMissingEligibilityFieldsError([]string{"caseLot", "pinCode"}),
			expected: "missing eligibility fields: caseLot, pinCode",
			kind:     errs.ErrMissingEligibilityFields,
		},
		{
			name:     "missing POD",
			err:      errs.NewPreconditionNotMetError("POD document", "vehicle 42"),
			expected: "precondition not met: POD document for vehicle 42",
			kind:     errs.ErrPreconditionNotMet,
		},
		{
			name:     "completed request",
			err:      errs.NewLedgerError(errs.ErrAlreadyCompleted, "req-1", ""),
			expected: "payment request already completed: req-1",
			kind:     errs.ErrAlreadyCompleted,
		},
		{
			name:     "allocation over the request",
			err:      errs.NewLedgerError(errs.ErrAllocationExceedsRequest, "req-1", "1100 > 1000"),
			expected: "allocation exceeds request: req-1 (1100 > 1000)",
			kind:     errs.ErrAllocationExceedsRequest,
		},
		{
			name:     "underfunded batch",
			err:      errs.NewLedgerError(errs.ErrBatchUnderfunded, "batch", "900 < 1000"),
			expected: "batch allocations do not cover the outstanding amount: batch (900 < 1000)",
			kind:     errs.ErrBatchUnderfunded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.kind)
		})
	}
}

func TestValueIsOutOfRangeError_KeepsMessageOnOneLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("remarks", "line1\nline2\r", "a", "z")

	assert.NotContains(t, err.Error(), "\n")
	assert.NotContains(t, err.Error(), "\r")
}

func TestConflictError_ExposesCause(t *testing.T) {
	domainErr := errors.New("vehicle already carries a different trip reference")
	err := errs.NewConflictError("tripReference", fmt.Errorf("%w: MP09AA0001", domainErr))

	require.ErrorIs(t, err, errs.ErrConflict)
	require.ErrorIs(t, err, domainErr)
	assert.NotErrorIs(t, errs.NewConflictError("tripReference", nil), domainErr)

	wrapped := fmt.Errorf("assign vehicle: %w", err)
	require.ErrorIs(t, wrapped, domainErr)

	var target *errs.ConflictError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "tripReference", target.ParamName)
}

func TestTransitionError_MatchesThroughJoin(t *testing.T) {
	err := errs.NewTransitionError(errs.ErrFrozenEntity, "order", "HOLD", "GATE_IN")
	joined := errors.Join(errors.New("sync"), err)

	require.ErrorIs(t, joined, errs.ErrFrozenEntity)
	assert.NotErrorIs(t, joined, errs.ErrBackwardTransition)

	var target *errs.TransitionError
	require.ErrorAs(t, joined, &target)
	assert.Equal(t, "order", target.Entity)
	assert.Equal(t, "HOLD", target.From)
	assert.Equal(t, "GATE_IN", target.To)
}

func TestLedgerError_NotFoundKinds(t *testing.T) {
	t.Run("missing transaction is also a not found error", func(t *testing.T) {
		err := errs.NewLedgerError(errs.ErrTransactionNotFound, "txn-9", "")

		require.ErrorIs(t, err, errs.ErrTransactionNotFound)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("other ledger kinds are not", func(t *testing.T) {
		for _, kind := range []error{
			errs.ErrBeneficiaryMismatch,
			errs.ErrTransactionExhausted,
			errs.ErrAllocationExceedsRequest,
		} {
			err := errs.NewLedgerError(kind, "req-1", "")

			require.ErrorIs(t, err, kind)
			assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
		}
	})
}

func TestMissingEligibilityFieldsError_KeepsFields(t *testing.T) {
	err := fmt.Errorf("advance order: %w", errs.NewMissingEligibilityFieldsError([]string{"invoiceNumber"}))

	var target *errs.MissingEligibilityFieldsError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, []string{"invoiceNumber"}, target.Fields)
}
