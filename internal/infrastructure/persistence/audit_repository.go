package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/audit"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditRepository implements the audit Repository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Save stores an entry; an entry for an already recorded event is ignored
func (r *GormAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(models.AuditEntryModelFromDomain(entry)).Error
}

// FindByAggregate returns the history of one aggregate, newest first
func (r *GormAuditRepository) FindByAggregate(ctx context.Context, aggregateType string, aggregateID uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AuditEntryModel{}).
		Where("aggregate_type = ? AND aggregate_id = ?", aggregateType, aggregateID)
	return r.page(query, filter)
}

// FindByAggregates returns the merged history of several aggregates, newest first
func (r *GormAuditRepository) FindByAggregates(ctx context.Context, aggregateIDs []uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	if len(aggregateIDs) == 0 {
		return []audit.Entry{}, 0, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.AuditEntryModel{}).
		Where("aggregate_id IN ?", aggregateIDs)
	return r.page(query, filter)
}

func (r *GormAuditRepository) page(query *gorm.DB, filter shared.Filter) ([]audit.Entry, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AuditEntryModel
	if err := query.Order("occurred_at DESC, id DESC").
		Scopes(paginate(filter)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]audit.Entry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, total, nil
}

var _ audit.Repository = (*GormAuditRepository)(nil)
