package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEvent records a successful mutation. The same payload is published to
// the message broker for downstream consumers such as the archive worker.
type AuditEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Entity    string         `json:"entity" gorm:"size:64;not null;index"`
	Action    string         `json:"action" gorm:"size:64;not null"`
	Actor     string         `json:"actor" gorm:"size:255"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
