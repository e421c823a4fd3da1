package models

import (
	"time"
)

// Role codes used by middleware checks and notification routing.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleLabStaff   = "lab-staff"
	RoleRequester  = "requester"
)

type User struct {
	UserID     int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName   string     `gorm:"column:full_name" json:"full_name"`
	Email      string     `gorm:"column:email;unique" json:"email"`
	Password   string     `gorm:"column:password" json:"-"`
	RoleID     int        `gorm:"column:role_id" json:"role_id"`
	IsActive   bool       `gorm:"column:is_active;default:true" json:"is_active"`
	Identifier *string    `gorm:"column:identifier" json:"identifier,omitempty"` // NIM/NIP
	Phone      *string    `gorm:"column:phone" json:"phone,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt  *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int    `gorm:"primaryKey;column:role_id" json:"role_id"`
	Code     string `gorm:"column:code;unique" json:"code"`
	RoleName string `gorm:"column:role_name" json:"role_name"`
}

type UserToken struct {
	TokenID   int        `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID    int        `gorm:"column:user_id" json:"user_id"`
	TokenHash string     `gorm:"column:token_hash" json:"-"`
	TokenType string     `gorm:"column:token_type" json:"token_type"` // password_reset
	IsRevoked bool       `gorm:"column:is_revoked" json:"is_revoked"`
	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"-"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (UserToken) TableName() string {
	return "user_tokens"
}
