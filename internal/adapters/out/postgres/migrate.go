package postgres

import (
	"logistics/internal/adapters/out/postgres/documentrepo"
	"logistics/internal/adapters/out/postgres/gatepassrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/paymentrepo"
	"logistics/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// sqliteDocumentsDDL mirrors documentrepo.DocumentDTO for the SQLite dialect,
// which has no array columns. pq.StringArray round-trips through its text form.
const sqliteDocumentsDDL = `CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	subject_id TEXT NOT NULL,
	document_type TEXT NOT NULL,
	file_keys TEXT NOT NULL DEFAULT '{}',
	updated_at DATETIME NOT NULL,
	UNIQUE (tenant_id, subject_id, document_type)
)`

// Models lists the tables owned by the unit of work.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&vehiclerepo.VehicleDTO{},
		&vehiclerepo.VehicleOrderDTO{},
		&gatepassrepo.GatePassDTO{},
		&paymentrepo.PaymentRequestDTO{},
		&paymentrepo.BankTransactionDTO{},
		&paymentrepo.AllocationDTO{},
	}
}

// Migrate creates or updates the engine schema, documents table included.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	if db.Dialector.Name() == "postgres" {
		return db.AutoMigrate(&documentrepo.DocumentDTO{})
	}
	return db.Exec(sqliteDocumentsDDL).Error
}
