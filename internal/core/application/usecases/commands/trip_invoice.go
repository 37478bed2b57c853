package commands

import (
	"context"

	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// requireTripInvoice fails when moving v to next reaches TRIP_INVOICED for the
// first time and no trip invoice is attached to the vehicle. Gate-out jumps
// over TRIP_INVOICED and is checked the same way.
func requireTripInvoice(ctx context.Context, documents ports.DocumentStore, v *vehicle.Vehicle, next vehicle.Status) error {
	if !v.Crosses(vehicle.TripInvoiced, next) {
		return nil
	}

	attached, err := documents.DocumentExists(ctx, v.TenantID(), v.ID(), ports.DocumentTripInvoice)
	if err != nil {
		return err
	}
	if !attached {
		return errs.NewPreconditionNotMetError("trip invoice document", "vehicle "+v.Number())
	}
	return nil
}
