package models

import "time"

// AuditLog is a write-only sink. Writes are fire-and-forget: a failed
// audit insert never fails the operation that produced it.
type AuditLog struct {
	LogID      int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	Category   string    `gorm:"column:category" json:"category"`
	Action     string    `gorm:"column:action" json:"action"`
	Outcome    string    `gorm:"column:outcome" json:"outcome"` // success|failure
	UserID     int       `gorm:"column:user_id" json:"user_id"`
	ActorRole  string    `gorm:"column:actor_role" json:"actor_role"`
	TargetType *string   `gorm:"column:target_type" json:"target_type,omitempty"`
	TargetID   *int      `gorm:"column:target_id" json:"target_id,omitempty"`
	Identifier *string   `gorm:"column:identifier" json:"identifier,omitempty"`
	Metadata   *string   `gorm:"column:metadata" json:"metadata,omitempty"`
	IPAddress  *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
