package documentrepo

import (
	"context"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.DocumentStore = (*GormDocumentStore)(nil)

// GormDocumentStore implements ports.DocumentStore over the documents table.
// A document counts as attached once at least one file key is stored for it.
type GormDocumentStore struct {
	db *gorm.DB
}

func NewGormDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{db: db}
}

func (s *GormDocumentStore) DocumentExists(
	ctx context.Context,
	tenantID, subjectID kernel.UUID,
	docType ports.DocumentType,
) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&DocumentDTO{}).
		Where("tenant_id = ? AND subject_id = ? AND document_type = ?",
			tenantID.Bytes(), subjectID.Bytes(), string(docType)).
		Where("file_keys <> '{}'").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Attach records the storage keys of a document, replacing the keys stored before.
func (s *GormDocumentStore) Attach(
	ctx context.Context,
	tenantID, subjectID kernel.UUID,
	docType ports.DocumentType,
	fileKeys []string,
) error {
	keys := make(pq.StringArray, 0, len(fileKeys))
	for _, k := range fileKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return errs.NewValueIsRequiredError("fileKeys")
	}

	dto := DocumentDTO{
		ID:           kernel.NewUUID().Bytes(),
		TenantID:     tenantID.Bytes(),
		SubjectID:    subjectID.Bytes(),
		DocumentType: string(docType),
		FileKeys:     keys,
		UpdatedAt:    time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "subject_id"}, {Name: "document_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"file_keys", "updated_at"}),
		}).
		Create(&dto).Error
}
