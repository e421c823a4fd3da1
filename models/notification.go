package models

import "time"

// UserNotificationState holds the per-user read watermark. It never
// gates what Summarize computes; it only tells the client whether the
// badge was acknowledged.
type UserNotificationState struct {
	StateID             int        `gorm:"primaryKey;column:state_id" json:"state_id"`
	UserID              int        `gorm:"column:user_id;unique" json:"user_id"`
	BorrowingLastReadAt *time.Time `gorm:"column:borrowing_last_read_at" json:"borrowing_last_read_at,omitempty"`
	UpdatedAt           time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (UserNotificationState) TableName() string {
	return "user_notification_states"
}
