package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uploadhub/uploadhub/entity"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditRepository records successful mutations for the audit trail.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, entityName, action, actor string, payload interface{}) error {
	var body datatypes.JSON
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal audit payload: %w", err)
		}
		body = datatypes.JSON(raw)
	}

	event := &entity.AuditEvent{
		Entity:  entityName,
		Action:  action,
		Actor:   actor,
		Payload: body,
	}

	return r.db.WithContext(ctx).Create(event).Error
}

// Recent returns the newest audit events, most recent first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]*entity.AuditEvent, error) {
	if limit < 1 {
		limit = 50
	}

	var events []*entity.AuditEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
