package http

import (
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type NewOrder struct {
	SoNumber        string           `json:"soNumber"`
	CaseCount       float64          `json:"caseCount"`
	CaseLot         string           `json:"caseLot"`
	DestinationTown string           `json:"destinationTown"`
	PinCode         string           `json:"pinCode"`
	TruckSize       float64          `json:"truckSize"`
	TruckType       string           `json:"truckType"`
	TripReference   string           `json:"tripReference"`
	FreightCost     *decimal.Decimal `json:"freightCost"`
	Source          string           `json:"source"`
	Status          string           `json:"status"`
}

func (n NewOrder) fields() order.EligibilityFields {
	return order.EligibilityFields{
		SoNumber:        n.SoNumber,
		CaseCount:       n.CaseCount,
		CaseLot:         n.CaseLot,
		DestinationTown: n.DestinationTown,
		PinCode:         n.PinCode,
		TruckSize:       n.TruckSize,
		TruckType:       n.TruckType,
	}
}

type OrderFieldsPatch struct {
	SoNumber        *string          `json:"soNumber"`
	CaseCount       *float64         `json:"caseCount"`
	CaseLot         *string          `json:"caseLot"`
	DestinationTown *string          `json:"destinationTown"`
	PinCode         *string          `json:"pinCode"`
	TruckSize       *float64         `json:"truckSize"`
	TruckType       *string          `json:"truckType"`
	TripReference   *string          `json:"tripReference"`
	FreightCost     *decimal.Decimal `json:"freightCost"`
	Source          string           `json:"source"`
}

func (p OrderFieldsPatch) patch() order.Patch {
	return order.Patch{
		SoNumber:        p.SoNumber,
		CaseCount:       p.CaseCount,
		CaseLot:         p.CaseLot,
		DestinationTown: p.DestinationTown,
		PinCode:         p.PinCode,
		TruckSize:       p.TruckSize,
		TruckType:       p.TruckType,
		TripReference:   p.TripReference,
		FreightCost:     p.FreightCost,
	}
}

type StatusChange struct {
	Status          string           `json:"status"`
	LoadingQuantity *decimal.Decimal `json:"loadingQuantity,omitempty"`
}

type AvailabilityChange struct {
	Action string `json:"action"`
}

type VehicleAssignment struct {
	VehicleNumber string   `json:"vehicleNumber"`
	OrderIDs      []string `json:"orderIds"`
}

type VehicleFinancials struct {
	Amount  *decimal.Decimal `json:"amount"`
	Expense *decimal.Decimal `json:"expense"`
}

type DetentionTimes struct {
	ReachedAt  *time.Time `json:"reachedAt"`
	UnloadedAt *time.Time `json:"unloadedAt"`
}

type NewGatePass struct {
	VehicleID *string `json:"vehicleId"`
	OrderID   *string `json:"orderId"`
}

type GateMovement struct {
	Direction string `json:"direction"`
}

type NewBankTransaction struct {
	Code            string          `json:"code"`
	BeneficiaryID   string          `json:"beneficiaryId"`
	TotalPaidAmount decimal.Decimal `json:"totalPaidAmount"`
	TransactionDate time.Time       `json:"transactionDate"`
	ProofDocument   string          `json:"proofDocument"`
}

type NewPaymentRequest struct {
	VehicleID       string          `json:"vehicleId"`
	OrderID         *string         `json:"orderId"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	BeneficiaryID   string          `json:"beneficiaryId"`
}

// TransactionLeg names a bank transaction to draw from. A missing amount
// draws as much as the transaction and the request allow.
type TransactionLeg struct {
	TransactionID string           `json:"transactionId"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

type TransactionLinks struct {
	Transactions []TransactionLeg `json:"transactions"`
}

type BatchCompletion struct {
	PaymentRequestIDs []string         `json:"paymentRequestIds"`
	Transactions      []TransactionLeg `json:"transactions"`
}

type Created struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

type OrderStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type FieldsUpdate struct {
	Applied  []string `json:"applied"`
	Skipped  []string `json:"skipped"`
	Advanced bool     `json:"advanced"`
}

type SkippedOrder struct {
	OrderID string `json:"orderId"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

type SyncResult struct {
	VehicleStatus string         `json:"vehicleStatus"`
	UpdatedOrders int            `json:"updatedOrders"`
	Skipped       []SkippedOrder `json:"skipped"`
}

type VehicleAssigned struct {
	VehicleID string `json:"vehicleId"`
	Created   bool   `json:"created"`
}

type Allocation struct {
	ID               string          `json:"id"`
	PaymentRequestID string          `json:"paymentRequestId"`
	TransactionID    string          `json:"transactionId"`
	Amount           decimal.Decimal `json:"amount"`
}

type Completion struct {
	VehicleID string      `json:"vehicleId,omitempty"`
	Outcome   string      `json:"outcome"`
	Reason    string      `json:"reason,omitempty"`
	Sync      *SyncResult `json:"sync,omitempty"`
}

type LinkResult struct {
	Allocations    []Allocation    `json:"allocations"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	Completed      bool            `json:"completed"`
	Completion     *Completion     `json:"completion,omitempty"`
}

type BatchResult struct {
	Allocations []Allocation `json:"allocations"`
	Completed   []string     `json:"completed"`
	Completions []Completion `json:"completions"`
}

type LedgerLine struct {
	ID              string          `json:"id"`
	TransactionType string          `json:"transactionType"`
	Status          string          `json:"status"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	Allocated       decimal.Decimal `json:"allocated"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	PaymentDate     *time.Time      `json:"paymentDate,omitempty"`
}

type VehicleOrder struct {
	ID          string           `json:"id"`
	SoNumber    string           `json:"soNumber"`
	Status      string           `json:"status"`
	FreightCost decimal.Decimal  `json:"freightCost"`
	VehicleCost decimal.Decimal  `json:"vehicleCost"`
	Profit      *decimal.Decimal `json:"profit,omitempty"`
}

func toLegs(in []TransactionLeg) ([]commands.TransactionLeg, error) {
	legs := make([]commands.TransactionLeg, 0, len(in))
	for _, l := range in {
		ids, err := requiredIDs("transactionId", []string{l.TransactionID})
		if err != nil {
			return nil, err
		}
		leg := commands.TransactionLeg{TransactionID: ids[0]}
		if l.Amount != nil {
			leg.Amount = *l.Amount
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func toSyncResult(r services.SyncReport) SyncResult {
	skipped := make([]SkippedOrder, 0)
	for _, res := range r.Skipped() {
		s := SkippedOrder{
			OrderID: res.OrderID.String(),
			Outcome: res.Outcome.String(),
		}
		if res.Err != nil {
			s.Reason = res.Err.Error()
		}
		skipped = append(skipped, s)
	}
	return SyncResult{
		VehicleStatus: r.VehicleStatus.String(),
		UpdatedOrders: r.UpdatedCount(),
		Skipped:       skipped,
	}
}

func toCompletion(vehicleID string, d services.CompletionDecision) Completion {
	c := Completion{
		VehicleID: vehicleID,
		Outcome:   d.Outcome.String(),
	}
	if d.Err != nil {
		c.Reason = d.Err.Error()
	}
	if d.Outcome == services.CompletionAdvanced {
		sync := toSyncResult(d.Sync)
		c.Sync = &sync
	}
	return c
}

func toAllocations(in []*payment.Allocation) []Allocation {
	out := make([]Allocation, 0, len(in))
	for _, a := range in {
		out = append(out, Allocation{
			ID:               a.ID().String(),
			PaymentRequestID: a.RequestID().String(),
			TransactionID:    a.TransactionID().String(),
			Amount:           a.Amount(),
		})
	}
	return out
}

func toFieldNames(fields []order.Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.String())
	}
	return names
}

func toLedgerLines(in []queries.GetVehicleLedgerQueryResponse) []LedgerLine {
	out := make([]LedgerLine, 0, len(in))
	for _, l := range in {
		out = append(out, LedgerLine{
			ID:              l.ID.String(),
			TransactionType: l.TransactionType.String(),
			Status:          l.Status.String(),
			RequestedAmount: l.RequestedAmount,
			Allocated:       l.Allocated,
			Outstanding:     l.Outstanding,
			PaymentDate:     l.PaymentDate,
		})
	}
	return out
}

func toVehicleOrders(in []queries.GetVehicleOrdersQueryResponse) []VehicleOrder {
	out := make([]VehicleOrder, 0, len(in))
	for _, o := range in {
		out = append(out, VehicleOrder{
			ID:          o.ID.String(),
			SoNumber:    o.SoNumber,
			Status:      o.Status.String(),
			FreightCost: o.FreightCost,
			VehicleCost: o.VehicleCost,
			Profit:      o.Profit,
		})
	}
	return out
}
