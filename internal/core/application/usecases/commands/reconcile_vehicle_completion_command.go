package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrReconcileVehicleCompletionCommandIsNotConstructed = errors.New(
	"ReconcileVehicleCompletionCommand must be created via NewReconcileVehicleCompletionCommand constructor",
)

// ReconcileVehicleCompletionCommand re-runs the completion policy for a vehicle
// whose trip was paid before its proof of delivery arrived.
type ReconcileVehicleCompletionCommand struct {
	tenantID  kernel.UUID
	vehicleID kernel.UUID
	at        time.Time

	guard guard.ConstructorGuard
}

func NewReconcileVehicleCompletionCommand(tenantID, vehicleID kernel.UUID, at time.Time) (ReconcileVehicleCompletionCommand, error) {
	if err := errors.Join(tenantID.Validate(), vehicleID.Validate()); err != nil {
		return ReconcileVehicleCompletionCommand{}, err
	}

	return ReconcileVehicleCompletionCommand{
		tenantID:  tenantID,
		vehicleID: vehicleID,
		at:        at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileVehicleCompletionCommand) Validate() error {
	return c.guard.Validate(ErrReconcileVehicleCompletionCommandIsNotConstructed)
}

func (c ReconcileVehicleCompletionCommand) TenantID() kernel.UUID { return c.tenantID }
func (c ReconcileVehicleCompletionCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c ReconcileVehicleCompletionCommand) At() time.Time { return c.at }
