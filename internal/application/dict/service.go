package dict

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service manages currencies, document types and dimensions
type Service struct {
	currencies    dict.CurrencyRepository
	documentTypes dict.DocumentTypeRepository
	dimensions    dict.DimensionRepository
	logger        *zap.Logger
}

// NewService creates a dictionary service
func NewService(
	currencies dict.CurrencyRepository,
	documentTypes dict.DocumentTypeRepository,
	dimensions dict.DimensionRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		currencies:    currencies,
		documentTypes: documentTypes,
		dimensions:    dimensions,
		logger:        logger,
	}
}

// =============================================================================
// Currencies
// =============================================================================

// ListCurrencies returns all currencies ordered by code
func (s *Service) ListCurrencies(ctx context.Context) ([]EntryResponse, error) {
	items, err := s.currencies.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, len(items))
	for i := range items {
		out[i] = ToEntryResponse(&items[i].Entry)
	}
	return out, nil
}

// GetCurrency returns one currency
func (s *Service) GetCurrency(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	c, err := s.currencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEntryResponse(&c.Entry)
	return &resp, nil
}

// DefaultCurrency returns the currency flagged default
func (s *Service) DefaultCurrency(ctx context.Context) (*EntryResponse, error) {
	c, err := s.currencies.FindDefault(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToEntryResponse(&c.Entry)
	return &resp, nil
}

// CreateCurrency creates a currency
func (s *Service) CreateCurrency(ctx context.Context, req EntryRequest) (*EntryResponse, error) {
	c, err := dict.NewCurrency(req.Code, req.Name, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCurrencyCodeFree(ctx, c.Code, nil); err != nil {
		return nil, err
	}
	if err := s.currencies.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Currency created", zap.String("code", c.Code), zap.Bool("default", c.IsDefault))
	resp := ToEntryResponse(&c.Entry)
	return &resp, nil
}

// UpdateCurrency updates a currency
func (s *Service) UpdateCurrency(ctx context.Context, id uuid.UUID, req EntryRequest) (*EntryResponse, error) {
	c, err := s.currencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Code, req.Name, req.IsDefault); err != nil {
		return nil, err
	}
	if err := s.ensureCurrencyCodeFree(ctx, c.Code, &c.ID); err != nil {
		return nil, err
	}
	if err := s.currencies.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToEntryResponse(&c.Entry)
	return &resp, nil
}

// DeleteCurrency deletes an unused currency
func (s *Service) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	c, err := s.currencies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	used, err := s.currencies.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return shared.NewDomainErrorf("INVALID_STATE", "Currency %s is in use and cannot be deleted", c.Code)
	}
	if err := s.currencies.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Currency deleted", zap.String("code", c.Code))
	return nil
}

func (s *Service) ensureCurrencyCodeFree(ctx context.Context, code string, exclude *uuid.UUID) error {
	exists, err := s.currencies.ExistsByCode(ctx, code, exclude)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainErrorf("ALREADY_EXISTS", "Currency %s already exists", code)
	}
	return nil
}

// ResolveCurrency returns id when set, otherwise the default currency id
func (s *Service) ResolveCurrency(ctx context.Context, id *uuid.UUID) (uuid.UUID, error) {
	if id != nil && *id != uuid.Nil {
		if _, err := s.currencies.FindByID(ctx, *id); err != nil {
			return uuid.Nil, err
		}
		return *id, nil
	}
	c, err := s.currencies.FindDefault(ctx)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "currency: cannot be blank and no default currency is configured")
	}
	return c.ID, nil
}

// CurrencyCodes maps currency ids to codes
func (s *Service) CurrencyCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	items, err := s.currencies.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		out[c.ID] = c.Code
	}
	return out, nil
}

// =============================================================================
// Document types
// =============================================================================

// ListDocumentTypes returns all document types ordered by code
func (s *Service) ListDocumentTypes(ctx context.Context) ([]EntryResponse, error) {
	items, err := s.documentTypes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, len(items))
	for i := range items {
		out[i] = ToEntryResponse(&items[i].Entry)
	}
	return out, nil
}

// GetDocumentType returns one document type
func (s *Service) GetDocumentType(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	d, err := s.documentTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEntryResponse(&d.Entry)
	return &resp, nil
}

// CreateDocumentType creates a document type
func (s *Service) CreateDocumentType(ctx context.Context, req EntryRequest) (*EntryResponse, error) {
	d, err := dict.NewDocumentType(req.Code, req.Name, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDocumentTypeCodeFree(ctx, d.Code, nil); err != nil {
		return nil, err
	}
	if err := s.documentTypes.Save(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("Document type created", zap.String("code", d.Code))
	resp := ToEntryResponse(&d.Entry)
	return &resp, nil
}

// UpdateDocumentType updates a document type
func (s *Service) UpdateDocumentType(ctx context.Context, id uuid.UUID, req EntryRequest) (*EntryResponse, error) {
	d, err := s.documentTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Update(req.Code, req.Name, req.IsDefault); err != nil {
		return nil, err
	}
	if err := s.ensureDocumentTypeCodeFree(ctx, d.Code, &d.ID); err != nil {
		return nil, err
	}
	if err := s.documentTypes.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToEntryResponse(&d.Entry)
	return &resp, nil
}

// DeleteDocumentType deletes an unused document type
func (s *Service) DeleteDocumentType(ctx context.Context, id uuid.UUID) error {
	d, err := s.documentTypes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	used, err := s.documentTypes.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return shared.NewDomainErrorf("INVALID_STATE", "Document type %s is in use and cannot be deleted", d.Code)
	}
	return s.documentTypes.Delete(ctx, id)
}

// ResolveDocumentType returns id when set, otherwise the default document type id
func (s *Service) ResolveDocumentType(ctx context.Context, id *uuid.UUID) (uuid.UUID, error) {
	if id != nil && *id != uuid.Nil {
		if _, err := s.documentTypes.FindByID(ctx, *id); err != nil {
			return uuid.Nil, err
		}
		return *id, nil
	}
	d, err := s.documentTypes.FindDefault(ctx)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "document_type: cannot be blank and no default document type is configured")
	}
	return d.ID, nil
}

func (s *Service) ensureDocumentTypeCodeFree(ctx context.Context, code string, exclude *uuid.UUID) error {
	exists, err := s.documentTypes.ExistsByCode(ctx, code, exclude)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainErrorf("ALREADY_EXISTS", "Document type %s already exists", code)
	}
	return nil
}

// =============================================================================
// Dimensions
// =============================================================================

// ListDimensions returns every dimension ordered by name
func (s *Service) ListDimensions(ctx context.Context) ([]DimensionResponse, error) {
	dims, err := s.dimensions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tree := dict.NewDimensionTree(dims)
	out := make([]DimensionResponse, len(dims))
	for i, d := range dims {
		out[i] = toDimensionResponse(d, tree)
	}
	return out, nil
}

// DimensionTree returns the dimensions as nested nodes
func (s *Service) DimensionTree(ctx context.Context) ([]DimensionNode, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return buildNodes(tree, nil, 0), nil
}

// Tree loads the full dimension tree
func (s *Service) Tree(ctx context.Context) (*dict.DimensionTree, error) {
	dims, err := s.dimensions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dict.NewDimensionTree(dims), nil
}

// GetDimension returns one dimension with its top-level ancestor
func (s *Service) GetDimension(ctx context.Context, id uuid.UUID) (*DimensionResponse, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := tree.Get(id)
	if !ok {
		return nil, shared.NotFound("Dimension")
	}
	resp := toDimensionResponse(d, tree)
	return &resp, nil
}

// CreateDimension creates a dimension
func (s *Service) CreateDimension(ctx context.Context, req DimensionRequest) (*DimensionResponse, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if _, ok := tree.Get(*req.ParentID); !ok {
			return nil, shared.NotFound("Parent dimension")
		}
	}
	d, err := dict.NewDimension(req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := s.dimensions.Save(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("Dimension created", zap.String("name", d.Name), zap.String("dimension_id", d.ID.String()))
	tree, err = s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	resp := toDimensionResponse(*d, tree)
	return &resp, nil
}

// UpdateDimension renames and moves a dimension
func (s *Service) UpdateDimension(ctx context.Context, id uuid.UUID, req DimensionRequest) (*DimensionResponse, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	existing, ok := tree.Get(id)
	if !ok {
		return nil, shared.NotFound("Dimension")
	}
	d := existing
	if err := d.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := d.MoveTo(req.ParentID, tree); err != nil {
		return nil, err
	}
	if err := s.dimensions.Save(ctx, &d); err != nil {
		return nil, err
	}
	tree, err = s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	resp := toDimensionResponse(d, tree)
	return &resp, nil
}

// DeleteDimension deletes a dimension and its subtree
func (s *Service) DeleteDimension(ctx context.Context, id uuid.UUID) error {
	if _, err := s.dimensions.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.dimensions.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Dimension deleted", zap.String("dimension_id", id.String()))
	return nil
}
