package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceService handles sales invoice use cases
type InvoiceService struct {
	contracts client.ContractRepository
	items     client.ContractItemRepository
	invoices  client.SalesInvoiceRepository
	storage   common.ObjectStorage
	publisher shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	contracts client.ContractRepository,
	items client.ContractItemRepository,
	invoices client.SalesInvoiceRepository,
	storage common.ObjectStorage,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		contracts: contracts,
		items:     items,
		invoices:  invoices,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ListByContract returns the invoices of every item of a contract
func (s *InvoiceService) ListByContract(ctx context.Context, contractSlug string) ([]InvoiceResponse, error) {
	contract, err := s.contracts.FindBySlug(ctx, contractSlug)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.FindByContract(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(invoices), nil
}

// ListByContractItem returns the invoices of one contract item
func (s *InvoiceService) ListByContractItem(ctx context.Context, itemID uuid.UUID) ([]InvoiceResponse, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	invoices, err := s.invoices.FindByContractItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(invoices), nil
}

// Get returns one invoice
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

// Create issues an invoice for an item of the given contract
func (s *InvoiceService) Create(ctx context.Context, actorID uuid.UUID, contractSlug string, req InvoiceRequest) (*InvoiceResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	contract, err := s.contracts.FindBySlug(ctx, contractSlug)
	if err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, req.ContractItemID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNumberFree(ctx, item.ID, details.Number, nil); err != nil {
		return nil, err
	}
	inv, err := client.NewSalesInvoice(contract, item, details, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("Sales invoice issued",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.String("contract", contract.Slug),
		zap.String("value", inv.Value.String()))

	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

// Update replaces the fields of an unpaid invoice
func (s *InvoiceService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req InvoiceRequest) (*InvoiceResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ContractItemID != inv.ContractItemID {
		return nil, shared.NewDomainError("INVALID_INPUT", "contract_item_id: cannot be changed")
	}
	if err := s.ensureNumberFree(ctx, inv.ContractItemID, details.Number, &inv.ID); err != nil {
		return nil, err
	}
	if err := inv.Update(details, &actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, inv); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

// Settle marks an invoice paid
func (s *InvoiceService) Settle(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req SettleRequest) (*InvoiceResponse, error) {
	paymentDate, err := shared.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inv.Settle(paymentDate, &actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, inv); err != nil {
		return nil, err
	}
	s.logger.Info("Sales invoice settled", zap.String("invoice_id", inv.ID.String()), zap.String("number", inv.Number))
	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

// Delete removes an invoice and its file
func (s *InvoiceService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return err
	}
	inv.MarkDeleted(&actorID)
	if err := s.invoices.Delete(ctx, id); err != nil {
		return err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, inv); err != nil {
		return err
	}
	if inv.FileKey != "" {
		if err := s.storage.DeleteObject(ctx, inv.FileKey); err != nil {
			s.logger.Warn("Failed to delete invoice file", zap.String("key", inv.FileKey), zap.Error(err))
		}
	}
	s.logger.Info("Sales invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

// UploadFile attaches a scan of the invoice, replacing the previous one
func (s *InvoiceService) UploadFile(ctx context.Context, actorID uuid.UUID, id uuid.UUID, file common.FileUpload) (*InvoiceResponse, error) {
	if err := file.Validate(common.DocumentContentTypes); err != nil {
		return nil, err
	}
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key := common.ObjectKey("invoices", inv.ID, file.Filename)
	if err := s.storage.Upload(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, err
	}
	previous := inv.FileKey
	inv.AttachFile(key, &actorID)
	if err := s.save(ctx, inv); err != nil {
		return nil, err
	}
	if previous != "" {
		if err := s.storage.DeleteObject(ctx, previous); err != nil {
			s.logger.Warn("Failed to delete previous invoice file", zap.String("key", previous), zap.Error(err))
		}
	}
	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

// FileURL returns a presigned URL of the invoice file
func (s *InvoiceService) FileURL(ctx context.Context, id uuid.UUID) (*FileLink, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.FileKey == "" {
		return nil, shared.NotFound("invoice file")
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, inv.FileKey, common.DefaultDownloadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &FileLink{URL: url, ExpiresAt: expiresAt}, nil
}

func (s *InvoiceService) ensureNumberFree(ctx context.Context, itemID uuid.UUID, number string, exclude *uuid.UUID) error {
	exists, err := s.invoices.ExistsByNumber(ctx, itemID, number, exclude)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainErrorf("ALREADY_EXISTS", "Invoice %s already exists for this contract item", number)
	}
	return nil
}

func (s *InvoiceService) save(ctx context.Context, inv *client.SalesInvoice) error {
	if err := s.invoices.Save(ctx, inv); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, inv)
}

func (s *InvoiceService) toResponses(invoices []client.SalesInvoice) []InvoiceResponse {
	day := s.now()
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i], day)
	}
	return out
}
