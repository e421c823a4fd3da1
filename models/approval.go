package models

import "time"

// ApprovalMatrix names the two sequential approvers for a lab. At most
// one row per lab (unique lab_id); upserted by administrators.
type ApprovalMatrix struct {
	MatrixID        int       `gorm:"primaryKey;column:matrix_id" json:"matrix_id"`
	LabID           int       `gorm:"column:lab_id;unique" json:"lab_id"`
	IsActive        bool      `gorm:"column:is_active" json:"is_active"`
	Step1ApproverID int       `gorm:"column:step1_approver_id" json:"step1_approver_id"`
	Step2ApproverID int       `gorm:"column:step2_approver_id" json:"step2_approver_id"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`

	Lab           Lab  `gorm:"foreignKey:LabID" json:"lab,omitempty"`
	Step1Approver User `gorm:"foreignKey:Step1ApproverID" json:"step1_approver,omitempty"`
	Step2Approver User `gorm:"foreignKey:Step2ApproverID" json:"step2_approver,omitempty"`
}

// ApprovalDecision is one approver's verdict on one transaction. The
// unique index backs the at-most-one-decision-per-approver invariant.
type ApprovalDecision struct {
	DecisionID    int       `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	TransactionID int       `gorm:"column:transaction_id;uniqueIndex:uq_decision,priority:1" json:"transaction_id"`
	ApproverID    int       `gorm:"column:approver_id;uniqueIndex:uq_decision,priority:2" json:"approver_id"`
	Decision      string    `gorm:"column:decision" json:"decision"` // approved|rejected
	Step          int       `gorm:"column:step" json:"step"`
	Comment       *string   `gorm:"column:comment" json:"comment,omitempty"`
	DecidedAt     time.Time `gorm:"column:decided_at" json:"decided_at"`

	Approver User `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// TableName overrides
func (ApprovalMatrix) TableName() string {
	return "approval_matrices"
}

func (ApprovalDecision) TableName() string {
	return "approval_decisions"
}
