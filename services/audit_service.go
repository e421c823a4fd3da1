package services

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"silab-api/models"
)

// AuditEntry is the payload accepted by the audit sink.
type AuditEntry struct {
	Category   string
	Action     string
	Outcome    string
	UserID     int
	ActorRole  string
	TargetType string
	TargetID   int
	Identifier string
	IPAddress  string
	Metadata   map[string]interface{}
}

// WriteAudit persists an audit entry asynchronously. Failures are logged
// and swallowed: the sink never blocks or fails the primary operation.
func WriteAudit(db *gorm.DB, entry AuditEntry) {
	go func() {
		row := models.AuditLog{
			Category:  entry.Category,
			Action:    entry.Action,
			Outcome:   entry.Outcome,
			UserID:    entry.UserID,
			ActorRole: entry.ActorRole,
			CreatedAt: time.Now(),
		}
		if entry.TargetType != "" {
			row.TargetType = &entry.TargetType
		}
		if entry.TargetID != 0 {
			id := entry.TargetID
			row.TargetID = &id
		}
		if entry.Identifier != "" {
			row.Identifier = &entry.Identifier
		}
		if entry.IPAddress != "" {
			row.IPAddress = &entry.IPAddress
		}
		if len(entry.Metadata) > 0 {
			if serialized, err := json.Marshal(entry.Metadata); err == nil {
				meta := string(serialized)
				row.Metadata = &meta
			}
		}

		if err := db.Create(&row).Error; err != nil {
			log.Printf("audit write failed (category=%s action=%s target=%s/%d): %v",
				entry.Category, entry.Action, entry.TargetType, entry.TargetID, err)
		}
	}()
}
