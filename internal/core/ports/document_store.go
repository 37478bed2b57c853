package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
)

// DocumentType names the documents the engine checks for.
type DocumentType string

const (
	// DocumentPOD is the proof of delivery attached to a vehicle.
	DocumentPOD DocumentType = "POD"
	// DocumentTripInvoice is the invoice a vehicle needs before TRIP_INVOICED.
	DocumentTripInvoice DocumentType = "TRIP_INVOICE"
)

// DocumentStore answers whether a document is attached to a vehicle or an order.
// Storing and serving the files happens outside the engine.
type DocumentStore interface {
	DocumentExists(ctx context.Context, tenantID, subjectID kernel.UUID, docType DocumentType) (bool, error)
}
