package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"silab-api/config"
	"silab-api/models"
	"silab-api/services"
)

type saveMatrixReq struct {
	LabID           int  `json:"lab_id" binding:"required"`
	IsActive        bool `json:"is_active"`
	Step1ApproverID int  `json:"step1_approver_id" binding:"required"`
	Step2ApproverID int  `json:"step2_approver_id" binding:"required"`
}

// SaveApprovalMatrix upserts the per-lab approval matrix (admin only).
func SaveApprovalMatrix(c *gin.Context) {
	var req saveMatrixReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	matrix, err := services.SaveMatrix(getDB(), services.MatrixInput{
		LabID:           req.LabID,
		IsActive:        req.IsActive,
		Step1ApproverID: req.Step1ApproverID,
		Step2ApproverID: req.Step2ApproverID,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	// Cached borrowing/matrix views go stale on every matrix change.
	services.RevalidateViews(config.RDB, "/borrowing", "/admin/approval-matrix")

	services.WriteAudit(getDB(), services.AuditEntry{
		Category:   "approval-matrix",
		Action:     "save",
		Outcome:    "success",
		UserID:     userID,
		ActorRole:  role,
		TargetType: "lab",
		TargetID:   req.LabID,
		IPAddress:  c.ClientIP(),
		Metadata: map[string]interface{}{
			"is_active":         req.IsActive,
			"step1_approver_id": req.Step1ApproverID,
			"step2_approver_id": req.Step2ApproverID,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Matriks persetujuan berhasil disimpan",
		"matrix":  matrix,
	})
}

// GetApprovalMatrix returns the matrix configured for a lab, if any.
func GetApprovalMatrix(c *gin.Context) {
	labID, err := strconv.Atoi(c.Param("labId"))
	if err != nil || labID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lab ID"})
		return
	}

	var matrix models.ApprovalMatrix
	if err := getDB().Preload("Step1Approver").Preload("Step2Approver").
		Where("lab_id = ?", labID).
		First(&matrix).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Matrix not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matrix": matrix})
}

// ListApprovalMatrices lists all configured matrices (admin screen).
func ListApprovalMatrices(c *gin.Context) {
	var matrices []models.ApprovalMatrix
	if err := getDB().Preload("Lab").Preload("Step1Approver").Preload("Step2Approver").
		Order("lab_id ASC").
		Find(&matrices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matrices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matrices": matrices,
		"total":    len(matrices),
	})
}
