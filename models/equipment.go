package models

import "time"

// Equipment unit statuses. A unit is flipped to borrowed at handover and
// back to available when its line is fully returned.
const (
	UnitStatusAvailable   = "available"
	UnitStatusBorrowed    = "borrowed"
	UnitStatusMaintenance = "maintenance"
	UnitStatusRetired     = "retired"
)

type Equipment struct {
	EquipmentID   int        `gorm:"primaryKey;column:equipment_id" json:"equipment_id"`
	LabID         int        `gorm:"column:lab_id" json:"lab_id"`
	EquipmentName string     `gorm:"column:equipment_name" json:"equipment_name"`
	Category      *string    `gorm:"column:category" json:"category,omitempty"`
	Description   *string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt     *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Lab   Lab             `gorm:"foreignKey:LabID" json:"lab,omitempty"`
	Units []EquipmentUnit `gorm:"foreignKey:EquipmentID" json:"units,omitempty"`
}

type EquipmentUnit struct {
	UnitID       int        `gorm:"primaryKey;column:unit_id" json:"unit_id"`
	EquipmentID  int        `gorm:"column:equipment_id" json:"equipment_id"`
	SerialNumber string     `gorm:"column:serial_number;unique" json:"serial_number"`
	Status       string     `gorm:"column:status;default:'available'" json:"status"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

type Consumable struct {
	ConsumableID   int        `gorm:"primaryKey;column:consumable_id" json:"consumable_id"`
	LabID          int        `gorm:"column:lab_id" json:"lab_id"`
	ConsumableName string     `gorm:"column:consumable_name" json:"consumable_name"`
	Unit           string     `gorm:"column:unit" json:"unit"` // pcs, ml, gram
	Stock          int        `gorm:"column:stock" json:"stock"`
	MinimumStock   int        `gorm:"column:minimum_stock" json:"minimum_stock"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Lab Lab `gorm:"foreignKey:LabID" json:"lab,omitempty"`
}

// ConsumableMovement is the stock ledger: positive quantity for restock,
// negative for usage.
type ConsumableMovement struct {
	MovementID   int       `gorm:"primaryKey;column:movement_id" json:"movement_id"`
	ConsumableID int       `gorm:"column:consumable_id" json:"consumable_id"`
	Quantity     int       `gorm:"column:quantity" json:"quantity"`
	Reason       *string   `gorm:"column:reason" json:"reason,omitempty"`
	RecordedBy   int       `gorm:"column:recorded_by" json:"recorded_by"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Equipment) TableName() string {
	return "equipments"
}

func (EquipmentUnit) TableName() string {
	return "equipment_units"
}

func (Consumable) TableName() string {
	return "consumables"
}

func (ConsumableMovement) TableName() string {
	return "consumable_movements"
}
