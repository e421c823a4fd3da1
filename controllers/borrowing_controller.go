package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"silab-api/config"
	"silab-api/models"
	"silab-api/services"
)

type createBorrowingReq struct {
	LabID   int                        `json:"lab_id" binding:"required"`
	Purpose string                     `json:"purpose"`
	Items   []services.BorrowItemInput `json:"items" binding:"required"`
}

// CreateBorrowing submits a new borrowing request for the current user.
func CreateBorrowing(c *gin.Context) {
	var req createBorrowingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	trx, err := services.CreateTransaction(getDB(), userID, req.LabID, strings.TrimSpace(req.Purpose), req.Items)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.WriteAudit(getDB(), services.AuditEntry{
		Category:   "borrowing",
		Action:     "create",
		Outcome:    "success",
		UserID:     userID,
		ActorRole:  role,
		TargetType: "borrowing_transaction",
		TargetID:   trx.TransactionID,
		Identifier: trx.Code,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"message":     "Pengajuan peminjaman berhasil dibuat",
		"transaction": trx,
	})
}

// ListBorrowings returns transactions scoped by role: requesters see
// their own, lab roles see their assigned labs, admins see everything.
func ListBorrowings(c *gin.Context) {
	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	query := getDB().Model(&models.BorrowingTransaction{}).
		Preload("Lab").Preload("Requester").Preload("Items.Equipment").
		Where("borrowing_transactions.deleted_at IS NULL")

	switch role {
	case models.RoleAdmin:
		// unscoped
	case models.RoleInstructor, models.RoleLabStaff:
		labIDs, err := services.AccessibleLabIDs(getDB(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve lab assignments"})
			return
		}
		if len(labIDs) == 0 {
			labIDs = []int{-1}
		}
		query = query.Where("lab_id IN ?", labIDs)
	default:
		query = query.Where("requester_id = ?", userID)
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !services.IsValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if c.Query("overdue") == "1" {
		query = query.Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
			[]string{services.StatusActive, services.StatusPartiallyReturned}, time.Now())
	}

	var transactions []models.BorrowingTransaction
	if err := query.Order("submitted_at DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"total":        len(transactions),
	})
}

// GetBorrowing returns one transaction with its decisions and returns.
func GetBorrowing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	var trx models.BorrowingTransaction
	if err := getDB().
		Preload("Lab").Preload("Requester").Preload("Matrix").
		Preload("Items.Equipment").Preload("Items.Unit").
		Preload("Decisions.Approver").Preload("Returns.Items").
		Where("transaction_id = ? AND deleted_at IS NULL", id).
		First(&trx).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if role == models.RoleRequester && trx.RequesterID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"transaction":  trx,
		"is_overdue":   services.IsOverdue(trx.Status, trx.DueDate, now),
		"days_overdue": services.DaysOverdue(trx.Status, trx.DueDate, now),
	})
}

type decisionReq struct {
	Decision string `json:"decision" binding:"required"`
	Comment  string `json:"comment"`
}

// DecideBorrowing records an approve/reject verdict from the caller.
func DecideBorrowing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID transaksi tidak valid"})
		return
	}

	var req decisionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	decision := strings.ToLower(strings.TrimSpace(req.Decision))
	if decision != services.DecisionApproved && decision != services.DecisionRejected {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Keputusan harus approved atau rejected"})
		return
	}

	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	status, err := services.RecordDecision(getDB(), id, userID, decision, strings.TrimSpace(req.Comment))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.RevalidateViews(config.RDB, "/borrowing")

	services.WriteAudit(getDB(), services.AuditEntry{
		Category:   "borrowing",
		Action:     "decision",
		Outcome:    "success",
		UserID:     userID,
		ActorRole:  role,
		TargetType: "borrowing_transaction",
		TargetID:   id,
		IPAddress:  c.ClientIP(),
		Metadata: map[string]interface{}{
			"decision": decision,
			"status":   status,
		},
	})

	message := "Pengajuan disetujui"
	if decision == services.DecisionRejected {
		message = "Pengajuan ditolak"
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": message,
		"status":  status,
	})
}

type handoverReq struct {
	DueDate *time.Time `json:"due_date"`
}

// HandoverBorrowing releases the assets to the requester (lab staff).
func HandoverBorrowing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID transaksi tidak valid"})
		return
	}

	// An empty body is fine (due date may already be on the request),
	// but a malformed one must not pass as "no due date supplied".
	var req handoverReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
			return
		}
	}

	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	if err := services.Handover(getDB(), id, userID, req.DueDate); err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.RevalidateViews(config.RDB, "/borrowing")

	services.WriteAudit(getDB(), services.AuditEntry{
		Category:   "borrowing",
		Action:     "handover",
		Outcome:    "success",
		UserID:     userID,
		ActorRole:  role,
		TargetType: "borrowing_transaction",
		TargetID:   id,
		IPAddress:  c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Serah terima alat berhasil dicatat",
	})
}

type returnReq struct {
	Items     []services.ReturnItemInput `json:"items" binding:"required"`
	Condition string                     `json:"condition"`
	Notes     string                     `json:"notes"`
}

// ReturnBorrowing books a partial or full return (lab staff).
func ReturnBorrowing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID transaksi tidak valid"})
		return
	}

	var req returnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	status, err := services.RecordReturn(getDB(), id, userID,
		req.Items, strings.TrimSpace(req.Condition), strings.TrimSpace(req.Notes))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.RevalidateViews(config.RDB, "/borrowing")

	services.WriteAudit(getDB(), services.AuditEntry{
		Category:   "borrowing",
		Action:     "return",
		Outcome:    "success",
		UserID:     userID,
		ActorRole:  role,
		TargetType: "borrowing_transaction",
		TargetID:   id,
		IPAddress:  c.ClientIP(),
		Metadata: map[string]interface{}{
			"status": status,
		},
	})

	message := "Pengembalian sebagian berhasil dicatat"
	if status == services.StatusReturned {
		message = "Seluruh alat telah dikembalikan"
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": message,
		"status":  status,
	})
}
