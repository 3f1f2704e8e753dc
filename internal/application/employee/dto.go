package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
)

// Viewer is the signed-in user looking at employee data. Rates and
// documents are visible to the employee themself and to holders of
// employee:read_details.
type Viewer struct {
	UserID         uuid.UUID
	CanReadDetails bool
}

func (v Viewer) canSee(e *employee.Employee) bool {
	return v.CanReadDetails || v.UserID == e.UserID
}

// =============================================================================
// Employee DTOs
// =============================================================================

// CreateEmployeeRequest creates an employee and its user
type CreateEmployeeRequest struct {
	FirstName string      `json:"first_name" binding:"required,min=1,max=150"`
	LastName  string      `json:"last_name" binding:"required,min=1,max=150"`
	Email     string      `json:"email" binding:"required,email,max=254"`
	TaxID     string      `json:"tax_id" binding:"max=20"`
	RoleIDs   []uuid.UUID `json:"role_ids"`
}

// UpdateEmployeeRequest updates the editable employee fields
type UpdateEmployeeRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
	Slug  string `json:"slug" binding:"required,max=100"`
	TaxID string `json:"tax_id" binding:"max=20"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Slug        string    `json:"slug"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	TaxID       string    `json:"tax_id,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	ShowDetails bool      `json:"show_details"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toEmployeeResponse(e *employee.Employee, showDetails bool) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Slug:        e.Slug,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		FullName:    e.FullName(),
		Email:       e.Email,
		IsActive:    e.IsActive,
		ShowDetails: showDetails,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if showDetails {
		resp.TaxID = e.TaxID
	}
	return resp
}

// =============================================================================
// Rate DTOs
// =============================================================================

// RateRequest creates or updates a rate
type RateRequest struct {
	Rate       decimal.Decimal `json:"rate"`
	CurrencyID *uuid.UUID      `json:"currency_id"`
	ValidFrom  string          `json:"valid_from" binding:"required,datetime=2006-01-02"`
	ValidTo    string          `json:"valid_to" binding:"omitempty,datetime=2006-01-02"`
}

func (r RateRequest) window() (time.Time, *time.Time, error) {
	from, err := shared.ParseDate(r.ValidFrom)
	if err != nil {
		return time.Time{}, nil, err
	}
	to, err := shared.ParseOptionalDate(r.ValidTo)
	if err != nil {
		return time.Time{}, nil, err
	}
	return from, to, nil
}

// RateResponse represents a rate in API responses
type RateResponse struct {
	ID         uuid.UUID       `json:"id"`
	EmployeeID uuid.UUID       `json:"employee_id"`
	Rate       decimal.Decimal `json:"rate"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	Currency   string          `json:"currency"`
	ValidFrom  string          `json:"valid_from"`
	ValidTo    *string         `json:"valid_to,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	CreatedBy  *uuid.UUID      `json:"created_by,omitempty"`
	UpdatedBy  *uuid.UUID      `json:"updated_by,omitempty"`
}

func toRateResponse(r *employee.Rate, currency string) RateResponse {
	return RateResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Rate:       r.Rate,
		CurrencyID: r.CurrencyID,
		Currency:   currency,
		ValidFrom:  r.ValidFrom.Format(shared.DateLayout),
		ValidTo:    formatOptionalDate(r.ValidTo),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		CreatedBy:  r.CreatedBy,
		UpdatedBy:  r.UpdatedBy,
	}
}

// =============================================================================
// Document DTOs
// =============================================================================

// DocumentRequest creates or updates a document; sent as multipart form fields
type DocumentRequest struct {
	Name                string     `form:"name" json:"name" binding:"required,min=1,max=100"`
	SignDate            string     `form:"sign_date" json:"sign_date" binding:"required,datetime=2006-01-02"`
	DocumentTypeID      *uuid.UUID `form:"document_type_id" json:"document_type_id"`
	ReferenceDocumentID *uuid.UUID `form:"reference_document_id" json:"reference_document_id"`
	Comment             string     `form:"comment" json:"comment" binding:"max=2000"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID                  uuid.UUID  `json:"id"`
	EmployeeID          uuid.UUID  `json:"employee_id"`
	Name                string     `json:"name"`
	SignDate            string     `json:"sign_date"`
	DocumentTypeID      uuid.UUID  `json:"document_type_id"`
	ReferenceDocumentID *uuid.UUID `json:"reference_document_id,omitempty"`
	Comment             string     `json:"comment"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	CreatedBy           *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy           *uuid.UUID `json:"updated_by,omitempty"`
}

func toDocumentResponse(d *employee.Document) DocumentResponse {
	return DocumentResponse{
		ID:                  d.ID,
		EmployeeID:          d.EmployeeID,
		Name:                d.Name,
		SignDate:            d.SignDate.Format(shared.DateLayout),
		DocumentTypeID:      d.DocumentTypeID,
		ReferenceDocumentID: d.ReferenceDocumentID,
		Comment:             d.Comment,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		CreatedBy:           d.CreatedBy,
		UpdatedBy:           d.UpdatedBy,
	}
}

// FileLink is a presigned download URL
type FileLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(shared.DateLayout)
	return &s
}
