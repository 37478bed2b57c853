package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates and
// their links to orders.
type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, tenantID, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetForUpdate reads the vehicle and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*vehicle.Vehicle, error)

	// FindByNumber returns nil without error when no vehicle carries the number.
	FindByNumber(ctx context.Context, tenantID kernel.UUID, number string) (*vehicle.Vehicle, error)

	// LinkOrders joins orders to the vehicle. Existing links are kept.
	LinkOrders(ctx context.Context, tenantID, vehicleID kernel.UUID, orderIDs []kernel.UUID) error

	// ListAwaitingCompletion returns vehicles that are not yet COMPLETED although a
	// balance or full shipping request of theirs is COMPLETED, across all tenants.
	// Results are ordered by ID and start after the given ID; nil starts at the beginning.
	ListAwaitingCompletion(ctx context.Context, after *kernel.UUID, limit int) ([]*vehicle.Vehicle, error)

	// ListActive returns vehicles between ASSIGNED and IN_JOURNEY, across all tenants,
	// paged the same way as ListAwaitingCompletion.
	ListActive(ctx context.Context, after *kernel.UUID, limit int) ([]*vehicle.Vehicle, error)
}
