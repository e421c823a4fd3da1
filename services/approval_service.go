package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"silab-api/models"
)

// Decision verdicts.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// decisionState summarizes the decision rows of one transaction. It is
// loaded explicitly inside the row lock so the step-resolution policy
// lives here instead of in nested SQL subqueries.
type decisionState struct {
	approvedCount int
	rejected      bool
	decidedBy     map[int]bool
}

// resolveExpectedStep derives which approval step is pending from the
// number of prior approvals. Step 1 while nothing is approved, step 2
// after exactly one approval; two approvals mean both steps are done.
func resolveExpectedStep(state decisionState) (int, error) {
	if state.rejected {
		return 0, ErrInvalidTransition
	}
	switch state.approvedCount {
	case 0:
		return 1, nil
	case 1:
		return 2, nil
	default:
		return 0, ErrStepAlreadyDecided
	}
}

// expectedApprover returns the matrix approver for a step.
func expectedApprover(matrix *models.ApprovalMatrix, step int) int {
	if step == 1 {
		return matrix.Step1ApproverID
	}
	return matrix.Step2ApproverID
}

// checkApprover validates that approverID may decide the pending step.
// An approver whose step is already satisfied (matrix reassigned after
// the fact) gets ErrStepAlreadyDecided; anyone else who is not the
// designated approver gets ErrNotAuthorizedApprover.
func checkApprover(matrix *models.ApprovalMatrix, step int, approverID, requesterID int) error {
	if approverID == requesterID {
		return ErrNotAuthorizedApprover
	}
	if approverID == expectedApprover(matrix, step) {
		return nil
	}
	if step == 2 && approverID == matrix.Step1ApproverID {
		return ErrStepAlreadyDecided
	}
	return ErrNotAuthorizedApprover
}

// approvedTargetStatus maps a completed approval step to the next
// lifecycle status.
func approvedTargetStatus(step int) string {
	if step == 1 {
		return StatusPendingApproval
	}
	return StatusApprovedWaitingHandover
}

// RecordDecision applies one approver's verdict to a transaction and
// drives the matching status transition. The whole read-validate-write
// sequence runs under a row lock on the transaction so two concurrent
// decisions for the same step cannot both advance the lifecycle. A
// failed precondition aborts with zero mutation.
func RecordDecision(db *gorm.DB, transactionID, approverID int, decision, comment string) (string, error) {
	if decision != DecisionApproved && decision != DecisionRejected {
		return "", fmt.Errorf("%w: decision must be approved or rejected", ErrValidation)
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

		if !IsAwaitingApproval(trx.Status) {
			return ErrInvalidTransition
		}

		var matrix models.ApprovalMatrix
		if err := tx.First(&matrix, "matrix_id = ?", trx.ApprovalMatrixID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatrixNotFound
			}
			return err
		}

		var rows []models.ApprovalDecision
		if err := tx.Where("transaction_id = ?", transactionID).Find(&rows).Error; err != nil {
			return err
		}
		state := decisionState{decidedBy: make(map[int]bool, len(rows))}
		for _, row := range rows {
			state.decidedBy[row.ApproverID] = true
			if row.Decision == DecisionApproved {
				state.approvedCount++
			} else {
				state.rejected = true
			}
		}

		if state.decidedBy[approverID] {
			return ErrDuplicateDecision
		}

		step, err := resolveExpectedStep(state)
		if err != nil {
			return err
		}
		if err := checkApprover(&matrix, step, approverID, trx.RequesterID); err != nil {
			return err
		}

		now := time.Now()
		row := models.ApprovalDecision{
			TransactionID: transactionID,
			ApproverID:    approverID,
			Decision:      decision,
			Step:          step,
			DecidedAt:     now,
		}
		if comment != "" {
			row.Comment = &comment
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		target := StatusRejected
		if decision == DecisionApproved {
			target = approvedTargetStatus(step)
		}
		if !CanTransition(trx.Status, target) {
			return ErrInvalidTransition
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
		note := fmt.Sprintf("approval_decision:%s step=%d", decision, step)
		history := models.BorrowingStatusHistory{
			TransactionID: transactionID,
			OldStatus:     &oldStatus,
			NewStatus:     target,
			ChangedBy:     approverID,
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
