package services

import (
	"context"

	"github.com/jrmoura/frota-api/internal/models"
	"gorm.io/gorm"
)

// AuditLogger is the write side of the audit trail. Services depend on it
// so tests can capture entries without a database.
type AuditLogger interface {
	Log(ctx context.Context, action, entity string, entityID uint, actor, details string) error
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log appends an audit entry. The trail is append-only; nothing updates or
// deletes rows in this table.
func (s *AuditService) Log(ctx context.Context, action, entity string, entityID uint, actor, details string) error {
	entry := &models.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Actor:    actor,
		Details:  details,
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if err := s.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset).Find(&logs)
	return logs, total, result.Error
}
