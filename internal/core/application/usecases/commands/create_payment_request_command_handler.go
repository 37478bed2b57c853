package commands

import (
	"context"

	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/ports"
)

// CreatePaymentRequestCommandHandler checks a new request against the vehicle
// it pays for and stores it as PENDING.
type CreatePaymentRequestCommandHandler struct {
	uowFactory UoWFactory
	documents  ports.DocumentStore
}

func NewCreatePaymentRequestCommandHandler(
	uowFactory UoWFactory,
	documents ports.DocumentStore,
) CreatePaymentRequestCommandHandler {
	return CreatePaymentRequestCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
	}
}

func (h CreatePaymentRequestCommandHandler) Handle(ctx context.Context, cmd CreatePaymentRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	tenantID := cmd.Caller().TenantID()

	req, err := payment.NewRequest(
		cmd.RequestID(),
		tenantID,
		cmd.VehicleID(),
		cmd.OrderID(),
		cmd.TransactionType(),
		cmd.Amount(),
		cmd.BeneficiaryID(),
		cmd.At(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Locking the vehicle serializes concurrent requests against its shipping ceiling.
	v, err := uow.VehicleRepository().GetForUpdate(ctx, tenantID, cmd.VehicleID())
	if err != nil {
		return err
	}
	if id := cmd.OrderID(); id != nil {
		if _, err = uow.OrderRepository().Get(ctx, tenantID, *id); err != nil {
			return err
		}
	}

	requestRepo := uow.PaymentRequestRepository()
	existing, err := requestRepo.ListByVehicle(ctx, tenantID, v.ID())
	if err != nil {
		return err
	}

	pod := false
	if cmd.TransactionType().SettlesTrip() {
		if pod, err = h.documents.DocumentExists(ctx, tenantID, v.ID(), ports.DocumentPOD); err != nil {
			return err
		}
	}

	milestones := v.Milestones()
	if err = payment.CheckCeilings(payment.CreationContext{
		Type:             cmd.TransactionType(),
		Amount:           cmd.Amount(),
		VehicleAmount:    v.Amount(),
		LoadingQuantity:  v.LoadingQuantity(),
		ExistingShipping: existing,
		ReachedAt:        milestones.ReachedAt,
		UnloadedAt:       milestones.UnloadedAt,
		PODAttached:      pod,
		Subject:          "vehicle " + v.Number(),
	}); err != nil {
		return err
	}

	if err = requestRepo.Add(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
