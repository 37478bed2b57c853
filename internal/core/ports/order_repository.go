// Package ports defines the persistence and collaborator contracts of the
// logistics engine. Adapters implement them; command handlers depend on them.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read is scoped to a tenant; orders of another tenant are reported as not found.
type OrderRepository interface {
	// Add persists a new order. The order number must be unique within the tenant.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetMany retrieves the orders with the given identifiers, failing when any is missing.
	GetMany(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*order.Order, error)

	// ListByVehicle returns every order linked to the vehicle, oldest link first.
	ListByVehicle(ctx context.Context, tenantID, vehicleID kernel.UUID) ([]*order.Order, error)
}
