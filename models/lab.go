package models

import "time"

type Lab struct {
	LabID     int        `gorm:"primaryKey;column:lab_id" json:"lab_id"`
	Code      string     `gorm:"column:code;unique" json:"code"`
	LabName   string     `gorm:"column:lab_name" json:"lab_name"`
	Location  *string    `gorm:"column:location" json:"location,omitempty"`
	IsActive  bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

// LabUser is the lab assignment set: which users belong to which lab.
// Approver eligibility and lab-staff notification scoping both read it.
type LabUser struct {
	LabUserID  int       `gorm:"primaryKey;column:lab_user_id" json:"lab_user_id"`
	LabID      int       `gorm:"column:lab_id;uniqueIndex:uq_lab_user,priority:1" json:"lab_id"`
	UserID     int       `gorm:"column:user_id;uniqueIndex:uq_lab_user,priority:2" json:"user_id"`
	AssignedBy int       `gorm:"column:assigned_by" json:"assigned_by"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	Lab  Lab  `gorm:"foreignKey:LabID" json:"lab,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// LabUsageLog records walk-in lab usage (practicum, research, etc).
type LabUsageLog struct {
	UsageID   int        `gorm:"primaryKey;column:usage_id" json:"usage_id"`
	LabID     int        `gorm:"column:lab_id" json:"lab_id"`
	UserID    int        `gorm:"column:user_id" json:"user_id"`
	Purpose   string     `gorm:"column:purpose" json:"purpose"`
	StartedAt time.Time  `gorm:"column:started_at" json:"started_at"`
	EndedAt   *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	Notes     *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`

	Lab  Lab  `gorm:"foreignKey:LabID" json:"lab,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (Lab) TableName() string {
	return "labs"
}

func (LabUser) TableName() string {
	return "lab_users"
}

func (LabUsageLog) TableName() string {
	return "lab_usage_logs"
}
