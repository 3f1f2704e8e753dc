package employee

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DocumentTypes resolves document types, falling back to the default one
type DocumentTypes interface {
	ResolveDocumentType(ctx context.Context, id *uuid.UUID) (uuid.UUID, error)
}

// DocumentService handles employee documents
type DocumentService struct {
	employees     employee.EmployeeRepository
	documents     employee.DocumentRepository
	documentTypes DocumentTypes
	storage       common.ObjectStorage
	publisher     shared.EventPublisher
	logger        *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	employees employee.EmployeeRepository,
	documents employee.DocumentRepository,
	documentTypes DocumentTypes,
	storage common.ObjectStorage,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		employees:     employees,
		documents:     documents,
		documentTypes: documentTypes,
		storage:       storage,
		publisher:     publisher,
		logger:        logger,
	}
}

// List returns the documents of an employee, newest first
func (s *DocumentService) List(ctx context.Context, viewer Viewer, employeeSlug string) ([]DocumentResponse, error) {
	e, err := s.visibleEmployee(ctx, viewer, employeeSlug)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.FindByEmployee(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = toDocumentResponse(&docs[i])
	}
	return out, nil
}

// Get returns one document
func (s *DocumentService) Get(ctx context.Context, viewer Viewer, employeeSlug string, id uuid.UUID) (*DocumentResponse, error) {
	e, err := s.visibleEmployee(ctx, viewer, employeeSlug)
	if err != nil {
		return nil, err
	}
	d, err := s.find(ctx, e, id)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(d)
	return &resp, nil
}

// Create uploads a document file and records it for an active employee
func (s *DocumentService) Create(ctx context.Context, actorID uuid.UUID, employeeSlug string, req DocumentRequest, file common.FileUpload) (*DocumentResponse, error) {
	if err := file.Validate(common.DocumentContentTypes); err != nil {
		return nil, err
	}
	e, err := s.employees.FindBySlug(ctx, employeeSlug)
	if err != nil {
		return nil, err
	}
	if err := e.EnsureActive(); err != nil {
		return nil, err
	}
	details, err := s.details(ctx, e, req)
	if err != nil {
		return nil, err
	}

	key := common.ObjectKey("documents", e.ID, file.Filename)
	d, err := employee.NewDocument(e, details, key, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Upload(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, err
	}
	if err := s.save(ctx, d); err != nil {
		s.removeFile(ctx, key)
		return nil, err
	}

	s.logger.Info("Employee document created",
		zap.String("employee", e.Slug),
		zap.String("document_id", d.ID.String()),
		zap.String("name", d.Name))

	resp := toDocumentResponse(d)
	return &resp, nil
}

// Update changes the document fields and optionally replaces its file
func (s *DocumentService) Update(ctx context.Context, actorID uuid.UUID, employeeSlug string, id uuid.UUID, req DocumentRequest, file *common.FileUpload) (*DocumentResponse, error) {
	if file != nil {
		if err := file.Validate(common.DocumentContentTypes); err != nil {
			return nil, err
		}
	}
	e, err := s.employees.FindBySlug(ctx, employeeSlug)
	if err != nil {
		return nil, err
	}
	d, err := s.find(ctx, e, id)
	if err != nil {
		return nil, err
	}
	details, err := s.details(ctx, e, req)
	if err != nil {
		return nil, err
	}
	if err := d.Update(details, &actorID); err != nil {
		return nil, err
	}

	var previous string
	if file != nil {
		key := common.ObjectKey("documents", e.ID, file.Filename)
		if err := s.storage.Upload(ctx, key, file.Data, file.ContentType); err != nil {
			return nil, err
		}
		previous = d.FileKey
		d.ReplaceFile(key, &actorID)
	}
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	if previous != "" {
		s.removeFile(ctx, previous)
	}
	resp := toDocumentResponse(d)
	return &resp, nil
}

// Delete removes a document and its file, together with every document
// referencing it directly or through other documents
func (s *DocumentService) Delete(ctx context.Context, actorID uuid.UUID, employeeSlug string, id uuid.UUID) error {
	e, err := s.employees.FindBySlug(ctx, employeeSlug)
	if err != nil {
		return err
	}
	d, err := s.find(ctx, e, id)
	if err != nil {
		return err
	}
	all, err := s.documents.FindByEmployee(ctx, e.ID)
	if err != nil {
		return err
	}
	removed := append([]*employee.Document{d}, employee.Referrers(d.ID, all)...)
	ids := make([]uuid.UUID, len(removed))
	for i, doc := range removed {
		doc.MarkDeleted(&actorID)
		ids[i] = doc.ID
	}
	if err := s.documents.Delete(ctx, ids); err != nil {
		return err
	}
	for _, doc := range removed {
		if err := shared.PublishAndClear(ctx, s.publisher, doc); err != nil {
			return err
		}
		s.removeFile(ctx, doc.FileKey)
	}
	if len(removed) > 1 {
		s.logger.Info("Employee document deleted with references",
			zap.String("document_id", id.String()),
			zap.Int("references", len(removed)-1))
	}
	return nil
}

// DownloadURL returns a presigned URL of the document file
func (s *DocumentService) DownloadURL(ctx context.Context, viewer Viewer, employeeSlug string, id uuid.UUID) (*FileLink, error) {
	e, err := s.visibleEmployee(ctx, viewer, employeeSlug)
	if err != nil {
		return nil, err
	}
	d, err := s.find(ctx, e, id)
	if err != nil {
		return nil, err
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, d.FileKey, common.DefaultDownloadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &FileLink{URL: url, ExpiresAt: expiresAt}, nil
}

func (s *DocumentService) details(ctx context.Context, e *employee.Employee, req DocumentRequest) (employee.DocumentDetails, error) {
	signDate, err := shared.ParseDate(req.SignDate)
	if err != nil {
		return employee.DocumentDetails{}, err
	}
	typeID, err := s.documentTypes.ResolveDocumentType(ctx, req.DocumentTypeID)
	if err != nil {
		return employee.DocumentDetails{}, err
	}
	details := employee.DocumentDetails{
		Name:           req.Name,
		SignDate:       signDate,
		DocumentTypeID: typeID,
		Comment:        req.Comment,
	}
	if req.ReferenceDocumentID != nil && *req.ReferenceDocumentID != uuid.Nil {
		ref, err := s.documents.FindByID(ctx, *req.ReferenceDocumentID)
		if err != nil {
			return employee.DocumentDetails{}, err
		}
		details.Reference = ref
	}
	return details, nil
}

func (s *DocumentService) visibleEmployee(ctx context.Context, viewer Viewer, slug string) (*employee.Employee, error) {
	e, err := s.employees.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !viewer.canSee(e) {
		return nil, shared.ErrForbidden
	}
	return e, nil
}

func (s *DocumentService) find(ctx context.Context, e *employee.Employee, id uuid.UUID) (*employee.Document, error) {
	d, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.EmployeeID != e.ID {
		return nil, shared.NotFound("document")
	}
	return d, nil
}

func (s *DocumentService) save(ctx context.Context, d *employee.Document) error {
	if err := s.documents.Save(ctx, d); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, d)
}

func (s *DocumentService) removeFile(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete document file", zap.String("key", key), zap.Error(err))
	}
}
