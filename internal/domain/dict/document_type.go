package dict

import (
	"context"

	"github.com/google/uuid"
)

// MaxDocumentTypeCodeLength is the longest employee document type code
const MaxDocumentTypeCodeLength = 25

// DocumentType classifies employee documents (contract, NDA, annex...)
type DocumentType struct {
	Entry
}

// NewDocumentType creates a document type; the code is stored upper-case
func NewDocumentType(code, name string, isDefault bool) (*DocumentType, error) {
	e, err := newEntry(code, name, isDefault, MaxDocumentTypeCodeLength)
	if err != nil {
		return nil, err
	}
	return &DocumentType{Entry: e}, nil
}

// Update replaces the code, name and default flag
func (d *DocumentType) Update(code, name string, isDefault bool) error {
	return d.set(code, name, isDefault, MaxDocumentTypeCodeLength)
}

// DocumentTypeRepository defines persistence for document types
type DocumentTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DocumentType, error)
	FindByCode(ctx context.Context, code string) (*DocumentType, error)
	FindAll(ctx context.Context) ([]DocumentType, error)
	FindDefault(ctx context.Context) (*DocumentType, error)
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
	// Save clears the default flag of the other document types when d is default
	Save(ctx context.Context, d *DocumentType) error
	Delete(ctx context.Context, id uuid.UUID) error
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
