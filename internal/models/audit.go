package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of a mutating action. Entries are never
// updated or deleted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GUID      string    `gorm:"size:36;uniqueIndex" json:"guid"`
	Action    string    `gorm:"size:50;not null;index" json:"action"` // CREATE, UPDATE, DELETE, SWEEP, EXPORT
	Entity    string    `gorm:"size:50;not null;index" json:"entity"` // FuelContract, FuelingTicket, etc.
	EntityID  uint      `json:"entity_id"`
	Actor     string    `gorm:"size:100;not null" json:"actor"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionSweep  = "SWEEP"
	AuditActionExport = "EXPORT"
)

// BeforeCreate assigns the entry GUID
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.GUID == "" {
		a.GUID = uuid.NewString()
	}
	return nil
}
