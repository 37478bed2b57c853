package payment

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
	ErrBeneficiaryIsRequired   = errs.NewValueIsRequiredError("beneficiaryId")
)

// Request is a demand for payment of one type against a vehicle and,
// optionally, one of its orders.
type Request struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	vehicleID kernel.UUID
	orderID   *kernel.UUID

	transactionType TransactionType
	requestedAmount decimal.Decimal
	beneficiaryID   string

	status      RequestStatus
	paymentDate *time.Time
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewRequest creates a PENDING request. Ceilings that depend on the vehicle are
// checked separately by CheckCeilings.
func NewRequest(
	id, tenantID, vehicleID kernel.UUID,
	orderID *kernel.UUID,
	transactionType TransactionType,
	requestedAmount decimal.Decimal,
	beneficiaryID string,
	createdAt time.Time,
) (*Request, error) {
	beneficiaryID = strings.TrimSpace(beneficiaryID)

	var orderErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}
	var beneficiaryErr error
	if beneficiaryID == "" {
		beneficiaryErr = ErrBeneficiaryIsRequired
	}

	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		vehicleID.Validate(),
		orderErr,
		transactionType.Validate(),
		kernel.ValidatePositiveAmount("requestedAmount", requestedAmount),
		beneficiaryErr,
	); err != nil {
		return nil, err
	}

	return &Request{
		id:              id,
		tenantID:        tenantID,
		vehicleID:       vehicleID,
		orderID:         copyID(orderID),
		transactionType: transactionType,
		requestedAmount: requestedAmount,
		beneficiaryID:   beneficiaryID,
		status:          StatusPending,
		createdAt:       createdAt.UTC(),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RequestSnapshot carries the persisted state of a request.
type RequestSnapshot struct {
	ID              kernel.UUID
	TenantID        kernel.UUID
	VehicleID       kernel.UUID
	OrderID         *kernel.UUID
	TransactionType TransactionType
	RequestedAmount decimal.Decimal
	BeneficiaryID   string
	Status          RequestStatus
	PaymentDate     *time.Time
	CreatedAt       time.Time
}

func RestoreRequest(s RequestSnapshot) (*Request, error) {
	r, err := NewRequest(s.ID, s.TenantID, s.VehicleID, s.OrderID, s.TransactionType,
		s.RequestedAmount, s.BeneficiaryID, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if s.Status == StatusCompleted && s.PaymentDate == nil {
		return nil, errs.NewValueIsRequiredError("paymentDate")
	}
	r.status = s.Status
	r.paymentDate = s.PaymentDate
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r *Request) ID() kernel.UUID { return r.id }
func (r *Request) TenantID() kernel.UUID { return r.tenantID }
func (r *Request) VehicleID() kernel.UUID { return r.vehicleID }
func (r *Request) OrderID() *kernel.UUID { return copyID(r.orderID) }
func (r *Request) TransactionType() TransactionType { return r.transactionType }
func (r *Request) RequestedAmount() decimal.Decimal { return r.requestedAmount }
func (r *Request) BeneficiaryID() string { return r.beneficiaryID }
func (r *Request) Status() RequestStatus { return r.status }
func (r *Request) CreatedAt() time.Time { return r.createdAt }
func (r *Request) IsCompleted() bool { return r.status == StatusCompleted }

// PaymentDate is set once the request completes.
func (r *Request) PaymentDate() *time.Time {
	if r.paymentDate == nil {
		return nil
	}
	d := *r.paymentDate
	return &d
}

// EnsurePending fails with ErrAlreadyCompleted once the request completed.
func (r *Request) EnsurePending() error {
	if r.status == StatusCompleted {
		return errs.NewLedgerError(errs.ErrAlreadyCompleted, r.id.String(), "")
	}
	return nil
}

// Outstanding is the amount still needed after allocated has been applied; never negative.
func (r *Request) Outstanding(allocated decimal.Decimal) decimal.Decimal {
	rest := r.requestedAmount.Sub(allocated)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// Complete marks the request COMPLETED. It happens exactly once.
func (r *Request) Complete(paymentDate time.Time) error {
	if err := r.EnsurePending(); err != nil {
		return err
	}
	d := paymentDate.UTC()
	r.status = StatusCompleted
	r.paymentDate = &d
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
