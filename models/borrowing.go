package models

import "time"

type BorrowingTransaction struct {
	TransactionID    int        `gorm:"primaryKey;column:transaction_id" json:"transaction_id"`
	Code             string     `gorm:"column:code;unique" json:"code"`
	LabID            int        `gorm:"column:lab_id" json:"lab_id"`
	RequesterID      int        `gorm:"column:requester_id" json:"requester_id"`
	ApprovalMatrixID int        `gorm:"column:approval_matrix_id" json:"approval_matrix_id"`
	Status           string     `gorm:"column:status" json:"status"`
	Purpose          *string    `gorm:"column:purpose" json:"purpose,omitempty"`
	DueDate          *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	HandedOverAt     *time.Time `gorm:"column:handed_over_at" json:"handed_over_at,omitempty"`
	HandedOverBy     *int       `gorm:"column:handed_over_by" json:"handed_over_by,omitempty"`
	SubmittedAt      time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt        *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Lab       Lab                `gorm:"foreignKey:LabID" json:"lab,omitempty"`
	Requester User               `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Matrix    *ApprovalMatrix    `gorm:"foreignKey:ApprovalMatrixID" json:"matrix,omitempty"`
	Items     []BorrowingItem    `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
	Decisions []ApprovalDecision `gorm:"foreignKey:TransactionID" json:"decisions,omitempty"`
	Returns   []BorrowingReturn  `gorm:"foreignKey:TransactionID" json:"returns,omitempty"`
}

type BorrowingItem struct {
	ItemID        int  `gorm:"primaryKey;column:item_id" json:"item_id"`
	TransactionID int  `gorm:"column:transaction_id" json:"transaction_id"`
	EquipmentID   int  `gorm:"column:equipment_id" json:"equipment_id"`
	UnitID        *int `gorm:"column:unit_id" json:"unit_id,omitempty"`
	Quantity      int  `gorm:"column:quantity" json:"quantity"`

	Equipment Equipment      `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	Unit      *EquipmentUnit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

type BorrowingReturn struct {
	ReturnID      int       `gorm:"primaryKey;column:return_id" json:"return_id"`
	TransactionID int       `gorm:"column:transaction_id" json:"transaction_id"`
	ReceivedBy    int       `gorm:"column:received_by" json:"received_by"`
	Condition     *string   `gorm:"column:item_condition" json:"condition,omitempty"`
	Notes         *string   `gorm:"column:notes" json:"notes,omitempty"`
	ReturnedAt    time.Time `gorm:"column:returned_at" json:"returned_at"`

	Items []BorrowingReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

type BorrowingReturnItem struct {
	ReturnItemID    int `gorm:"primaryKey;column:return_item_id" json:"return_item_id"`
	ReturnID        int `gorm:"column:return_id" json:"return_id"`
	BorrowingItemID int `gorm:"column:borrowing_item_id" json:"borrowing_item_id"`
	Quantity        int `gorm:"column:quantity" json:"quantity"`
}

// BorrowingStatusHistory tracks every status change on a transaction.
type BorrowingStatusHistory struct {
	HistoryID     int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	TransactionID int       `gorm:"column:transaction_id" json:"transaction_id"`
	OldStatus     *string   `gorm:"column:old_status" json:"old_status"`
	NewStatus     string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy     int       `gorm:"column:changed_by" json:"changed_by"`
	Notes         *string   `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (BorrowingTransaction) TableName() string {
	return "borrowing_transactions"
}

func (BorrowingItem) TableName() string {
	return "borrowing_items"
}

func (BorrowingReturn) TableName() string {
	return "borrowing_returns"
}

func (BorrowingReturnItem) TableName() string {
	return "borrowing_return_items"
}

func (BorrowingStatusHistory) TableName() string {
	return "borrowing_status_history"
}
