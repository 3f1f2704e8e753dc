package employee

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type documentFixture struct {
	employees *MockEmployeeRepository
	documents *MockDocumentRepository
	types     *MockDocumentTypes
	storage   *MockObjectStorage
	pub       *recordingPublisher
	svc       *DocumentService
	emp       *employee.Employee
	typeID    uuid.UUID
}

func newDocumentFixture(t *testing.T) *documentFixture {
	f := &documentFixture{
		employees: new(MockEmployeeRepository),
		documents: new(MockDocumentRepository),
		types:     new(MockDocumentTypes),
		storage:   new(MockObjectStorage),
		pub:       &recordingPublisher{},
		emp:       mustEmployee(t, "Jan", "Kowalski", "jan@example.com"),
		typeID:    uuid.New(),
	}
	f.svc = NewDocumentService(f.employees, f.documents, f.types, f.storage, f.pub, zap.NewNop())
	f.employees.On("FindBySlug", mock.Anything, "jan-kowalski").Return(f.emp, nil)
	f.types.On("ResolveDocumentType", mock.Anything, mock.Anything).Return(f.typeID, nil)
	return f
}

func (f *documentFixture) document(t *testing.T, name string) *employee.Document {
	t.Helper()
	d, err := employee.NewDocument(f.emp, employee.DocumentDetails{
		Name:           name,
		SignDate:       time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DocumentTypeID: f.typeID,
	}, "documents/"+name+".pdf", nil)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

// referencing creates a document that references ref
func (f *documentFixture) referencing(t *testing.T, name string, ref *employee.Document) *employee.Document {
	t.Helper()
	d, err := employee.NewDocument(f.emp, employee.DocumentDetails{
		Name:           name,
		SignDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		DocumentTypeID: f.typeID,
		Reference:      ref,
	}, "documents/"+name+".pdf", nil)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func pdfUpload() common.FileUpload {
	return common.FileUpload{Filename: "Umowa o pracę.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("uploads file and stores document", func(t *testing.T) {
		f := newDocumentFixture(t)
		ref := f.document(t, "contract")
		f.documents.On("FindByID", ctx, ref.ID).Return(ref, nil)
		f.storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return len(key) > 0 && key[:10] == "documents/"
		}), []byte("%PDF-1.4"), "application/pdf").Return(nil)
		f.documents.On("Save", ctx, mock.AnythingOfType("*employee.Document")).Return(nil)

		resp, err := f.svc.Create(ctx, actor, "jan-kowalski", DocumentRequest{
			Name:                "Annex 1",
			SignDate:            "2024-02-01",
			ReferenceDocumentID: &ref.ID,
		}, pdfUpload())
		require.NoError(t, err)
		assert.Equal(t, "Annex 1", resp.Name)
		assert.Equal(t, "2024-02-01", resp.SignDate)
		assert.Equal(t, f.typeID, resp.DocumentTypeID)
		assert.Equal(t, &ref.ID, resp.ReferenceDocumentID)
		assert.Equal(t, []string{employee.EventTypeDocumentCreated}, f.pub.types())
	})

	t.Run("rejects executable", func(t *testing.T) {
		f := newDocumentFixture(t)
		_, err := f.svc.Create(ctx, actor, "jan-kowalski", DocumentRequest{Name: "x", SignDate: "2024-02-01"},
			common.FileUpload{Filename: "x.exe", ContentType: "application/x-msdownload", Data: []byte{1}})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CONTENT_TYPE", domainErr.Code)
	})

	t.Run("failed save removes uploaded file", func(t *testing.T) {
		f := newDocumentFixture(t)
		var uploaded string
		f.storage.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { uploaded = args.String(1) }).Return(nil)
		f.documents.On("Save", ctx, mock.Anything).Return(shared.ErrConcurrencyConflict)
		f.storage.On("DeleteObject", ctx, mock.Anything).Return(nil)

		_, err := f.svc.Create(ctx, actor, "jan-kowalski", DocumentRequest{Name: "Annex", SignDate: "2024-02-01"}, pdfUpload())
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		f.storage.AssertCalled(t, "DeleteObject", ctx, uploaded)
	})

	t.Run("reference of another employee", func(t *testing.T) {
		f := newDocumentFixture(t)
		other := mustEmployee(t, "Anna", "Nowak", "anna@example.com")
		ref, err := employee.NewDocument(other, employee.DocumentDetails{
			Name: "contract", SignDate: time.Now(), DocumentTypeID: f.typeID,
		}, "documents/a.pdf", nil)
		require.NoError(t, err)
		f.documents.On("FindByID", ctx, ref.ID).Return(ref, nil)

		_, err = f.svc.Create(ctx, actor, "jan-kowalski", DocumentRequest{
			Name: "Annex", SignDate: "2024-02-01", ReferenceDocumentID: &ref.ID,
		}, pdfUpload())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Update_ReplacesFile(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	d := f.document(t, "contract")
	file := pdfUpload()

	f.documents.On("FindByID", ctx, d.ID).Return(d, nil)
	f.storage.On("Upload", ctx, mock.Anything, file.Data, file.ContentType).Return(nil)
	f.documents.On("Save", ctx, d).Return(nil)
	f.storage.On("DeleteObject", ctx, "documents/contract.pdf").Return(nil)

	_, err := f.svc.Update(ctx, uuid.New(), "jan-kowalski", d.ID, DocumentRequest{Name: "Contract", SignDate: "2024-01-10"}, &file)
	require.NoError(t, err)
	assert.NotEqual(t, "documents/contract.pdf", d.FileKey)
	f.storage.AssertExpectations(t)
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	d := f.document(t, "contract")

	f.documents.On("FindByID", ctx, d.ID).Return(d, nil)
	f.documents.On("FindByEmployee", ctx, f.emp.ID).Return([]employee.Document{*d}, nil)
	f.documents.On("Delete", ctx, []uuid.UUID{d.ID}).Return(nil)
	f.storage.On("DeleteObject", ctx, d.FileKey).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, uuid.New(), "jan-kowalski", d.ID))
	assert.Equal(t, []string{employee.EventTypeDocumentDeleted}, f.pub.types())
	f.storage.AssertExpectations(t)
}

func TestDocumentService_DeleteRemovesReferencingFiles(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	d := f.document(t, "contract")
	annex, err := employee.NewDocument(f.emp, employee.DocumentDetails{
		Name:           "annex",
		SignDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		DocumentTypeID: f.typeID,
		Reference:      d,
	}, "documents/annex.pdf", nil)
	require.NoError(t, err)
	annex.ClearDomainEvents()
	other := f.document(t, "nda")

	f.documents.On("FindByID", ctx, d.ID).Return(d, nil)
	f.documents.On("FindByEmployee", ctx, f.emp.ID).Return([]employee.Document{*d, *annex, *other}, nil)
	f.documents.On("Delete", ctx, []uuid.UUID{d.ID, annex.ID}).Return(nil)
	f.storage.On("DeleteObject", ctx, "documents/contract.pdf").Return(nil)
	f.storage.On("DeleteObject", ctx, "documents/annex.pdf").Return(nil)

	require.NoError(t, f.svc.Delete(ctx, uuid.New(), "jan-kowalski", d.ID))
	assert.Equal(t, []string{employee.EventTypeDocumentDeleted, employee.EventTypeDocumentDeleted}, f.pub.types())
	f.storage.AssertExpectations(t)
	f.storage.AssertNotCalled(t, "DeleteObject", ctx, "documents/nda.pdf")
}

func TestDocumentService_DeleteFollowsReferenceChains(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	contract := f.document(t, "contract")
	annex := f.referencing(t, "annex", contract)
	amendment := f.referencing(t, "amendment", annex)

	f.documents.On("FindByID", ctx, contract.ID).Return(contract, nil)
	f.documents.On("FindByEmployee", ctx, f.emp.ID).
		Return([]employee.Document{*amendment, *contract, *annex}, nil)
	f.documents.On("Delete", ctx, []uuid.UUID{contract.ID, annex.ID, amendment.ID}).Return(nil)
	for _, key := range []string{"documents/contract.pdf", "documents/annex.pdf", "documents/amendment.pdf"} {
		f.storage.On("DeleteObject", ctx, key).Return(nil)
	}

	require.NoError(t, f.svc.Delete(ctx, uuid.New(), "jan-kowalski", contract.ID))
	assert.Equal(t, []string{
		employee.EventTypeDocumentDeleted,
		employee.EventTypeDocumentDeleted,
		employee.EventTypeDocumentDeleted,
	}, f.pub.types())
	f.documents.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)
	d := f.document(t, "contract")
	expires := time.Now().Add(time.Hour)
	f.documents.On("FindByID", ctx, d.ID).Return(d, nil)
	f.storage.On("GenerateDownloadURL", ctx, d.FileKey, common.DefaultDownloadURLExpiry).Return("https://s3/contract", expires, nil)

	_, err := f.svc.DownloadURL(ctx, Viewer{UserID: uuid.New()}, "jan-kowalski", d.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	link, err := f.svc.DownloadURL(ctx, Viewer{UserID: f.emp.UserID}, "jan-kowalski", d.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3/contract", link.URL)
	assert.Equal(t, expires, link.ExpiresAt)
}
