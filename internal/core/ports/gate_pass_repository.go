package ports

import (
	"context"

	"logistics/internal/core/domain/model/gatepass"
	"logistics/internal/core/domain/model/kernel"
)

// GatePassRepository defines the persistence contract for gate passes.
type GatePassRepository interface {
	Add(ctx context.Context, aggregate *gatepass.GatePass) error
	Update(ctx context.Context, aggregate *gatepass.GatePass) error
	Get(ctx context.Context, tenantID, id kernel.UUID) (*gatepass.GatePass, error)

	// Delete removes the gate pass row. Callers check GatePass.EnsureDeletable first.
	Delete(ctx context.Context, tenantID, id kernel.UUID) error
}
