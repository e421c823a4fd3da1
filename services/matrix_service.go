package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"silab-api/models"
)

// MatrixInput is everything an administrator submits when configuring a
// lab's approval matrix.
type MatrixInput struct {
	LabID           int
	IsActive        bool
	Step1ApproverID int
	Step2ApproverID int
}

// validateActivation enforces the activation precondition: a matrix may
// only go active while the lab has at least one instructor and one
// lab-staff member assigned.
func validateActivation(isActive bool, instructorCount, labStaffCount int64) error {
	if !isActive {
		return nil
	}
	if instructorCount < 1 || labStaffCount < 1 {
		return ErrMatrixCannotActivate
	}
	return nil
}

// findApproverByRole resolves a user ID filtered by role code and active
// flag. A miss means the configured approver is unusable.
func findApproverByRole(db *gorm.DB, userID int, roleCode string) (*models.User, error) {
	var user models.User
	err := db.Joins("JOIN roles ON roles.role_id = users.role_id").
		Where("users.user_id = ? AND roles.code = ? AND users.is_active = ? AND users.deleted_at IS NULL",
			userID, roleCode, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidApprover
		}
		return nil, err
	}
	return &user, nil
}

// countAssignedByRole counts the lab's assignments holding a role.
func countAssignedByRole(db *gorm.DB, labID int, roleCode string) (int64, error) {
	var n int64
	err := db.Model(&models.LabUser{}).
		Joins("JOIN users ON users.user_id = lab_users.user_id").
		Joins("JOIN roles ON roles.role_id = users.role_id").
		Where("lab_users.lab_id = ? AND roles.code = ? AND users.is_active = ? AND users.deleted_at IS NULL",
			labID, roleCode, true).
		Count(&n).Error
	return n, err
}

func isAssignedToLab(db *gorm.DB, labID, userID int) (bool, error) {
	var n int64
	err := db.Model(&models.LabUser{}).
		Where("lab_id = ? AND user_id = ?", labID, userID).
		Count(&n).Error
	return n > 0, err
}

// checkStaffing applies the staffing part of the validation ladder.
// Activation staffing is evaluated before the per-approver assignment
// checks: a lab with no instructor assigned at all fails activation,
// not the narrower "approver not assigned" check.
func checkStaffing(isActive bool, instructorCount, labStaffCount int64, step1Assigned, step2Assigned bool) error {
	if err := validateActivation(isActive, instructorCount, labStaffCount); err != nil {
		return err
	}
	if !step1Assigned || !step2Assigned {
		return ErrApproverNotAssigned
	}
	return nil
}

// SaveMatrix validates and upserts the single approval matrix row for a
// lab. Step 1 must be an active instructor, step 2 an active lab-staff
// member, both assigned to the lab. Activation additionally requires the
// lab to be staffable at all. Nothing persists when any check fails.
func SaveMatrix(db *gorm.DB, input MatrixInput) (*models.ApprovalMatrix, error) {
	if input.LabID <= 0 || input.Step1ApproverID <= 0 || input.Step2ApproverID <= 0 {
		return nil, fmt.Errorf("%w: lab and both approvers are required", ErrValidation)
	}

	var lab models.Lab
	if err := db.Where("lab_id = ? AND deleted_at IS NULL", input.LabID).First(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lab %d", ErrValidation, input.LabID)
		}
		return nil, err
	}

	if _, err := findApproverByRole(db, input.Step1ApproverID, models.RoleInstructor); err != nil {
		return nil, err
	}
	if _, err := findApproverByRole(db, input.Step2ApproverID, models.RoleLabStaff); err != nil {
		return nil, err
	}

	instructors, err := countAssignedByRole(db, input.LabID, models.RoleInstructor)
	if err != nil {
		return nil, err
	}
	labStaff, err := countAssignedByRole(db, input.LabID, models.RoleLabStaff)
	if err != nil {
		return nil, err
	}
	step1Assigned, err := isAssignedToLab(db, input.LabID, input.Step1ApproverID)
	if err != nil {
		return nil, err
	}
	step2Assigned, err := isAssignedToLab(db, input.LabID, input.Step2ApproverID)
	if err != nil {
		return nil, err
	}
	if err := checkStaffing(input.IsActive, instructors, labStaff, step1Assigned, step2Assigned); err != nil {
		return nil, err
	}

	now := time.Now()
	matrix := models.ApprovalMatrix{
		LabID:           input.LabID,
		IsActive:        input.IsActive,
		Step1ApproverID: input.Step1ApproverID,
		Step2ApproverID: input.Step2ApproverID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Unique lab_id makes concurrent admin saves converge on one row.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lab_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_active", "step1_approver_id", "step2_approver_id", "updated_at",
		}),
	}).Create(&matrix).Error; err != nil {
		return nil, err
	}

	if err := db.Where("lab_id = ?", input.LabID).First(&matrix).Error; err != nil {
		return nil, err
	}
	return &matrix, nil
}

// ActiveMatrixForLab resolves the lab's active matrix. Transaction
// creation refuses to proceed without one.
func ActiveMatrixForLab(db *gorm.DB, labID int) (*models.ApprovalMatrix, error) {
	var matrix models.ApprovalMatrix
	err := db.Where("lab_id = ? AND is_active = ?", labID, true).First(&matrix).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatrixNotFound
		}
		return nil, err
	}
	return &matrix, nil
}
