package payment

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// TransactionType is the purpose of a payment request.
type TransactionType int

const (
	TypeUnknown TransactionType = iota
	TypeAdvanceShipping
	TypeBalanceShipping
	TypeFullShippingCharges
	TypeUnloadingCharge
	TypeUnloadingDetention
	TypeMiscellaneous
)

func getTransactionTypeStrings() map[TransactionType]string {
	return map[TransactionType]string{
		TypeAdvanceShipping:     "ADVANCE_SHIPPING",
		TypeBalanceShipping:     "BALANCE_SHIPPING",
		TypeFullShippingCharges: "FULL_SHIPPING_CHARGES",
		TypeUnloadingCharge:     "UNLOADING_CHARGE",
		TypeUnloadingDetention:  "UNLOADING_DETENTION",
		TypeMiscellaneous:       "MISCELLANEOUS",
	}
}

func (t TransactionType) String() string {
	if s, ok := getTransactionTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}

func (t TransactionType) Validate() error {
	if _, ok := getTransactionTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("transactionType", fmt.Errorf("%d is not a valid transaction type", t))
	}
	return nil
}

// ParseTransactionType resolves a wire name; unknown names return TypeUnknown.
func ParseTransactionType(s string) TransactionType {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, str := range getTransactionTypeStrings() {
		if str == name {
			return t
		}
	}
	return TypeUnknown
}

// IsShippingCharge reports the types that together pay for the trip itself.
func (t TransactionType) IsShippingCharge() bool {
	return t == TypeAdvanceShipping || t == TypeBalanceShipping || t == TypeFullShippingCharges
}

// SettlesTrip reports the types that close the trip: they need a proof of
// delivery and their completion may complete the vehicle.
func (t TransactionType) SettlesTrip() bool {
	return t == TypeBalanceShipping || t == TypeFullShippingCharges
}

// RequestStatus is PENDING until the ledger fully funds the request.
type RequestStatus int

const (
	StatusUnknown RequestStatus = iota
	StatusPending
	StatusCompleted
)

func getRequestStatusStrings() map[RequestStatus]string {
	return map[RequestStatus]string{
		StatusPending:   "PENDING",
		StatusCompleted: "COMPLETED",
	}
}

func (s RequestStatus) String() string {
	if str, ok := getRequestStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s RequestStatus) Validate() error {
	if _, ok := getRequestStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}
