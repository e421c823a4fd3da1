package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"silab-api/models"
	"silab-api/utils"
)

type BorrowItemInput struct {
	EquipmentID int  `json:"equipment_id"`
	UnitID      *int `json:"unit_id"`
	Quantity    int  `json:"quantity"`
}

type ReturnItemInput struct {
	BorrowingItemID int `json:"borrowing_item_id"`
	Quantity        int `json:"quantity"`
}

// ReturnProgress is the per-line accounting used to decide between
// partially_returned and returned.
type ReturnProgress struct {
	BorrowingItemID    int
	Requested          int
	PreviouslyReturned int
	Returning          int
}

// aggregateReturnLines sums a return batch per borrowing item. Negative
// lines are rejected before summing so an opposing pair cannot net out
// into a valid-looking quantity while persisting a negative row.
func aggregateReturnLines(inputs []ReturnItemInput) (map[int]int, error) {
	byItem := make(map[int]int, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 0 {
			return nil, fmt.Errorf("%w: return quantity must not be negative", ErrValidation)
		}
		byItem[in.BorrowingItemID] += in.Quantity
	}
	return byItem, nil
}

// resolveReturnStatus applies the return accounting rule: every line
// fully covered means returned, anything outstanding means
// partially_returned. Over-returning a line is a validation failure.
func resolveReturnStatus(lines []ReturnProgress) (string, error) {
	returningAny := false
	allComplete := true
	for _, line := range lines {
		if line.Returning < 0 {
			return "", fmt.Errorf("%w: return quantity must not be negative", ErrValidation)
		}
		if line.Returning > 0 {
			returningAny = true
		}
		total := line.PreviouslyReturned + line.Returning
		if total > line.Requested {
			return "", fmt.Errorf("%w: item %d returned more than requested", ErrValidation, line.BorrowingItemID)
		}
		if total < line.Requested {
			allComplete = false
		}
	}
	if !returningAny {
		return "", fmt.Errorf("%w: nothing to return", ErrValidation)
	}
	if allComplete {
		return StatusReturned, nil
	}
	return StatusPartiallyReturned, nil
}

// CreateTransaction submits a borrowing request. It fails when the lab
// has no active matrix, and refuses requesters who are themselves a
// configured approver for the lab.
func CreateTransaction(db *gorm.DB, requesterID, labID int, purpose string, items []BorrowItemInput) (*models.BorrowingTransaction, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	for _, item := range items {
		if item.EquipmentID <= 0 || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: each item needs an equipment and a positive quantity", ErrValidation)
		}
	}

	matrix, err := ActiveMatrixForLab(db, labID)
	if err != nil {
		return nil, err
	}
	if requesterID == matrix.Step1ApproverID || requesterID == matrix.Step2ApproverID {
		return nil, fmt.Errorf("%w: requester is a configured approver for this lab", ErrValidation)
	}

	now := time.Now()
	trx := models.BorrowingTransaction{
		Code:             utils.GenerateBorrowingCode(now),
		LabID:            labID,
		RequesterID:      requesterID,
		ApprovalMatrixID: matrix.MatrixID,
		Status:           StatusSubmitted,
		SubmittedAt:      now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if purpose != "" {
		trx.Purpose = &purpose
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}
		for _, item := range items {
			row := models.BorrowingItem{
				TransactionID: trx.TransactionID,
				EquipmentID:   item.EquipmentID,
				UnitID:        item.UnitID,
				Quantity:      item.Quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		history := models.BorrowingStatusHistory{
			TransactionID: trx.TransactionID,
			NewStatus:     StatusSubmitted,
			ChangedBy:     requesterID,
			CreatedAt:     now,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

// Handover releases the approved assets to the requester: sets the
// handover timestamp and due date, flips serial-numbered units to
// borrowed, and moves the transaction to active. Unit updates commit in
// the same transaction as the status flip.
func Handover(db *gorm.DB, transactionID, staffID int, dueDate *time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var trx models.BorrowingTransaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ? AND deleted_at IS NULL", transactionID).
			First(&trx).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if !CanTransition(trx.Status, StatusActive) {
			return ErrInvalidTransition
		}

		due := trx.DueDate
		if dueDate != nil {
			due = dueDate
		}
		if due == nil {
			return fmt.Errorf("%w: due date is required at handover", ErrValidation)
		}

		now := time.Now()
		if err := tx.Model(&models.BorrowingTransaction{}).
			Where("transaction_id = ?", transactionID).
			Updates(map[string]interface{}{
				"status":         StatusActive,
				"due_date":       due,
				"handed_over_at": now,
				"handed_over_by": staffID,
				"updated_at":     now,
			}).Error; err != nil {
			return err
		}

		var items []models.BorrowingItem
		if err := tx.Where("transaction_id = ?", transactionID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if item.UnitID == nil {
				continue
			}
			res := tx.Model(&models.EquipmentUnit{}).
				Where("unit_id = ? AND status = ?", *item.UnitID, models.UnitStatusAvailable).
				Updates(map[string]interface{}{
					"status":     models.UnitStatusBorrowed,
					"updated_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			// A unit that moved to maintenance or retired after approval
			// blocks the handover instead of being skipped.
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: unit %d", ErrUnitUnavailable, *item.UnitID)
			}
		}

		oldStatus := trx.Status
		note := "handover"
		history := models.BorrowingStatusHistory{
			TransactionID: transactionID,
			OldStatus:     &oldStatus,
			NewStatus:     StatusActive,
			ChangedBy:     staffID,
			Notes:         &note,
			CreatedAt:     now,
		}
		return tx.Create(&history).Error
	})
}

// RecordReturn books a full or partial return against an active loan.
// Cumulative returned quantities per line decide the resulting status;
// units belonging to fully returned lines become available again.
func RecordReturn(db *gorm.DB, transactionID, receivedBy int, inputs []ReturnItemInput, condition, notes string) (string, error) {
	if len(inputs) == 0 {
		return "", fmt.Errorf("%w: at least one return line is required", ErrValidation)
	}

	var newStatus string
	err := db.Transaction(func(tx *gorm.DB) error {
		var trx models.BorrowingTransaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ? AND deleted_at IS NULL", transactionID).
			First(&trx).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if !IsOnLoan(trx.Status) {
			return ErrInvalidTransition
		}

		var items []models.BorrowingItem
		if err := tx.Where("transaction_id = ?", transactionID).Find(&items).Error; err != nil {
			return err
		}

		type returnedRow struct {
			BorrowingItemID int
			Total           int
		}
		var prior []returnedRow
		if err := tx.Model(&models.BorrowingReturnItem{}).
			Select("borrowing_return_items.borrowing_item_id AS borrowing_item_id, SUM(borrowing_return_items.quantity) AS total").
			Joins("JOIN borrowing_returns ON borrowing_returns.return_id = borrowing_return_items.return_id").
			Where("borrowing_returns.transaction_id = ?", transactionID).
			Group("borrowing_return_items.borrowing_item_id").
			Scan(&prior).Error; err != nil {
			return err
		}
		priorByItem := make(map[int]int, len(prior))
		for _, row := range prior {
			priorByItem[row.BorrowingItemID] = row.Total
		}

		returningByItem, err := aggregateReturnLines(inputs)
		if err != nil {
			return err
		}

		lines := make([]ReturnProgress, 0, len(items))
		known := make(map[int]bool, len(items))
		for _, item := range items {
			known[item.ItemID] = true
			lines = append(lines, ReturnProgress{
				BorrowingItemID:    item.ItemID,
				Requested:          item.Quantity,
				PreviouslyReturned: priorByItem[item.ItemID],
				Returning:          returningByItem[item.ItemID],
			})
		}
		for itemID := range returningByItem {
			if !known[itemID] {
				return fmt.Errorf("%w: item %d does not belong to this transaction", ErrValidation, itemID)
			}
		}

		target, err := resolveReturnStatus(lines)
		if err != nil {
			return err
		}
		if !CanTransition(trx.Status, target) {
			return ErrInvalidTransition
		}

		now := time.Now()
		ret := models.BorrowingReturn{
			TransactionID: transactionID,
			ReceivedBy:    receivedBy,
			ReturnedAt:    now,
		}
		if condition != "" {
			ret.Condition = &condition
		}
		if notes != "" {
			ret.Notes = &notes
		}
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}
		for _, in := range inputs {
			if in.Quantity == 0 {
				continue
			}
			row := models.BorrowingReturnItem{
				ReturnID:        ret.ReturnID,
				BorrowingItemID: in.BorrowingItemID,
				Quantity:        in.Quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		// Release units whose line is now fully covered.
		for i, item := range items {
			if item.UnitID == nil {
				continue
			}
			if lines[i].PreviouslyReturned+lines[i].Returning >= lines[i].Requested {
				if err := tx.Model(&models.EquipmentUnit{}).
					Where("unit_id = ? AND status = ?", *item.UnitID, models.UnitStatusBorrowed).
					Updates(map[string]interface{}{
						"status":     models.UnitStatusAvailable,
						"updated_at": now,
					}).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&models.BorrowingTransaction{}).
			Where("transaction_id = ?", transactionID).
			Updates(map[string]interface{}{
				"status":     target,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		oldStatus := trx.Status
		note := fmt.Sprintf("return:%s", target)
		history := models.BorrowingStatusHistory{
			TransactionID: transactionID,
			OldStatus:     &oldStatus,
			NewStatus:     target,
			ChangedBy:     receivedBy,
			Notes:         &note,
			CreatedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		newStatus = target
		return nil
	})
	if err != nil {
		return "", err
	}
	return newStatus, nil
}
