// Package documentrepo answers document presence questions from the documents
// table. Uploading and serving the files is handled by another service that
// writes the storage keys into file_keys.
package documentrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DocumentDTO represents one document slot of a vehicle or an order.
type DocumentDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_documents_subject,priority:1"`
	SubjectID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_documents_subject,priority:2"`
	DocumentType string         `gorm:"size:32;not null;uniqueIndex:idx_documents_subject,priority:3"`
	FileKeys     pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	UpdatedAt    time.Time      `gorm:"not null"`
}

func (DocumentDTO) TableName() string {
	return "documents"
}
