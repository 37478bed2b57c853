package errs

import (
	"errors"
	"fmt"
)

// Ledger errors are raised while allocating bank transaction funds to payment requests.
var (
	ErrAlreadyCompleted         = errors.New("payment request already completed")
	ErrTransactionNotFound      = errors.New("bank transaction not found")
	ErrBeneficiaryMismatch      = errors.New("beneficiary mismatch")
	ErrTransactionExhausted     = errors.New("bank transaction exhausted")
	ErrAllocationExceedsRequest = errors.New("allocation exceeds request")
	ErrBatchUnderfunded         = errors.New("batch allocations do not cover the outstanding amount")
)

// LedgerError carries the ledger sentinel in Kind and the identifier of the
// request or transaction that tripped it.
type LedgerError struct {
	Kind   error
	Ref    string
	Detail string
}

func NewLedgerError(kind error, ref, detail string) *LedgerError {
	return &LedgerError{
		Kind:   kind,
		Ref:    ref,
		Detail: detail,
	}
}

func (e *LedgerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Ref)
	}
	return fmt.Sprintf("%v: %s (%s)", e.Kind, e.Ref, e.Detail)
}

// Unwrap returns both the ledger kind and ErrObjectNotFound for missing transactions,
// so callers mapping generic not-found errors still match.
func (e *LedgerError) Unwrap() []error {
	if errors.Is(e.Kind, ErrTransactionNotFound) {
		return []error{e.Kind, ErrObjectNotFound}
	}
	return []error{e.Kind}
}
