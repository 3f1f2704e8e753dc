package employee

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// Document is a signed employee document (contract, annex, termination)
type Document struct {
	shared.TrackableAggregateRoot
	EmployeeID          uuid.UUID
	Name                string
	SignDate            time.Time
	DocumentTypeID      uuid.UUID
	FileKey             string
	ReferenceDocumentID *uuid.UUID
	Comment             string
}

// DocumentDetails holds the editable document fields
type DocumentDetails struct {
	Name           string
	SignDate       time.Time
	DocumentTypeID uuid.UUID
	Reference      *Document
	Comment        string
}

// NewDocument creates a document of an active employee. The file is uploaded
// by the caller; fileKey is its object key.
func NewDocument(e *Employee, details DocumentDetails, fileKey string, actor *uuid.UUID) (*Document, error) {
	if err := e.EnsureActive(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fileKey) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "document_file: cannot be blank")
	}
	d := &Document{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		EmployeeID:             e.ID,
		FileKey:                fileKey,
	}
	if err := d.set(details); err != nil {
		return nil, err
	}
	d.AddDomainEvent(NewDocumentEvent(EventTypeDocumentCreated, d, actor))
	return d, nil
}

// Update replaces the editable fields
func (d *Document) Update(details DocumentDetails, actor *uuid.UUID) error {
	if err := d.set(details); err != nil {
		return err
	}
	d.Touch(actor)
	d.AddDomainEvent(NewDocumentEvent(EventTypeDocumentUpdated, d, actor))
	return nil
}

// ReplaceFile points the document at a newly uploaded file
func (d *Document) ReplaceFile(fileKey string, actor *uuid.UUID) {
	d.FileKey = fileKey
	d.Touch(actor)
	d.AddDomainEvent(NewDocumentEvent(EventTypeDocumentUpdated, d, actor))
}

// MarkDeleted records the deletion event before the document is removed
func (d *Document) MarkDeleted(actor *uuid.UUID) {
	d.AddDomainEvent(NewDocumentEvent(EventTypeDocumentDeleted, d, actor))
}

// Referrers returns the documents among docs that reference root directly
// or through other documents, nearest first. Reference cycles are followed
// once.
func Referrers(root uuid.UUID, docs []Document) []*Document {
	children := make(map[uuid.UUID][]*Document, len(docs))
	for i := range docs {
		if ref := docs[i].ReferenceDocumentID; ref != nil {
			children[*ref] = append(children[*ref], &docs[i])
		}
	}

	seen := map[uuid.UUID]bool{root: true}
	var out []*Document
	queue := []uuid.UUID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out
}

func (d *Document) set(details DocumentDetails) error {
	name := strings.TrimSpace(details.Name)
	err := shared.ValidationError(validation.Errors{
		"name":      validation.Validate(name, validation.Required, validation.RuneLength(1, 100)),
		"sign_date": validation.Validate(details.SignDate, validation.Required),
		"comment":   validation.Validate(details.Comment, validation.RuneLength(0, 2000)),
	}.Filter())
	if err != nil {
		return err
	}
	if details.DocumentTypeID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "document_type: cannot be blank")
	}

	var ref *uuid.UUID
	if details.Reference != nil {
		if details.Reference.EmployeeID != d.EmployeeID {
			return shared.NewDomainError("INVALID_INPUT", "reference_document: must belong to the same employee")
		}
		if details.Reference.ID == d.ID {
			return shared.NewDomainError("INVALID_INPUT", "reference_document: cannot reference itself")
		}
		id := details.Reference.ID
		ref = &id
	}

	d.Name = name
	d.SignDate = shared.TruncateDate(details.SignDate)
	d.DocumentTypeID = details.DocumentTypeID
	d.ReferenceDocumentID = ref
	d.Comment = strings.TrimSpace(details.Comment)
	return nil
}

// DocumentRepository defines persistence for employee documents
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	// FindByEmployee returns the documents of an employee, newest sign date first
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Document, error)
	Save(ctx context.Context, d *Document) error
	// Delete removes the documents in one transaction. NOT_FOUND when none existed.
	Delete(ctx context.Context, ids []uuid.UUID) error
}
