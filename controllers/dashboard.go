package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"silab-api/config"
	"silab-api/models"
	"silab-api/services"
)

// GetDashboardStats returns dashboard statistics branched by role.
func GetDashboardStats(c *gin.Context) {
	userID, okUser := getCurrentUserID(c)
	role, okRole := getCurrentRole(c)
	if !okUser || !okRole {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "authentication context missing",
		})
		return
	}

	var stats map[string]interface{}
	switch role {
	case models.RoleAdmin:
		stats = getAdminDashboard()
	case models.RoleInstructor, models.RoleLabStaff:
		stats = getLabDashboard(userID)
	default:
		stats = getRequesterDashboard(userID)
	}

	if stats == nil {
		stats = make(map[string]interface{})
	}
	stats["current_date"] = time.Now().Format("2006-01-02")

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

type overdueRow struct {
	TransactionID int        `gorm:"column:transaction_id" json:"transaction_id"`
	Code          string     `gorm:"column:code" json:"code"`
	Status        string     `gorm:"column:status" json:"status"`
	DueDate       *time.Time `gorm:"column:due_date" json:"due_date"`
	RequesterName string     `gorm:"column:requester_name" json:"requester_name"`
	DaysOverdue   int        `gorm:"-" json:"days_overdue"`
}

// loadOverdueRows lists open loans past due, with days computed in Go so
// the predicate stays in one place.
func loadOverdueRows(labIDs []int) []overdueRow {
	now := time.Now()
	q := config.DB.Table("borrowing_transactions t").
		Select("t.transaction_id, t.code, t.status, t.due_date, u.full_name AS requester_name").
		Joins("JOIN users u ON u.user_id = t.requester_id").
		Where("t.status IN ? AND t.due_date IS NOT NULL AND t.due_date < ? AND t.deleted_at IS NULL",
			[]string{services.StatusActive, services.StatusPartiallyReturned}, now)
	if labIDs != nil {
		if len(labIDs) == 0 {
			labIDs = []int{-1}
		}
		q = q.Where("t.lab_id IN ?", labIDs)
	}

	var rows []overdueRow
	if err := q.Order("t.due_date ASC").Limit(20).Scan(&rows).Error; err != nil {
		return nil
	}
	for i := range rows {
		rows[i].DaysOverdue = services.DaysOverdue(rows[i].Status, rows[i].DueDate, now)
	}
	return rows
}

func statusCounts(labIDs []int, requesterID int) map[string]int64 {
	counts := make(map[string]int64)
	for _, status := range []string{
		services.StatusSubmitted,
		services.StatusPendingApproval,
		services.StatusApprovedWaitingHandover,
		services.StatusActive,
		services.StatusPartiallyReturned,
		services.StatusReturned,
		services.StatusRejected,
	} {
		q := config.DB.Model(&models.BorrowingTransaction{}).
			Where("status = ? AND deleted_at IS NULL", status)
		if labIDs != nil {
			ids := labIDs
			if len(ids) == 0 {
				ids = []int{-1}
			}
			q = q.Where("lab_id IN ?", ids)
		}
		if requesterID > 0 {
			q = q.Where("requester_id = ?", requesterID)
		}
		var n int64
		q.Count(&n)
		counts[status] = n
	}
	return counts
}

func getAdminDashboard() map[string]interface{} {
	stats := make(map[string]interface{})
	stats["borrowing_by_status"] = statusCounts(nil, 0)
	stats["overdue"] = loadOverdueRows(nil)

	var totalUsers int64
	config.DB.Model(&models.User{}).Where("deleted_at IS NULL").Count(&totalUsers)
	stats["total_users"] = totalUsers

	var totalLabs int64
	config.DB.Model(&models.Lab{}).Where("deleted_at IS NULL").Count(&totalLabs)
	stats["total_labs"] = totalLabs

	var lowStock int64
	config.DB.Model(&models.Consumable{}).
		Where("stock <= minimum_stock AND deleted_at IS NULL").Count(&lowStock)
	stats["low_stock_consumables"] = lowStock

	return stats
}

func getLabDashboard(userID int) map[string]interface{} {
	stats := make(map[string]interface{})

	labIDs, err := services.AccessibleLabIDs(config.DB, userID)
	if err != nil {
		labIDs = []int{}
	}
	stats["borrowing_by_status"] = statusCounts(labIDs, 0)
	stats["overdue"] = loadOverdueRows(labIDs)
	stats["assigned_labs"] = len(labIDs)
	return stats
}

func getRequesterDashboard(userID int) map[string]interface{} {
	stats := make(map[string]interface{})
	stats["borrowing_by_status"] = statusCounts(nil, userID)

	now := time.Now()
	var overdue int64
	config.DB.Model(&models.BorrowingTransaction{}).
		Where("requester_id = ? AND status IN ? AND due_date IS NOT NULL AND due_date < ? AND deleted_at IS NULL",
			userID, []string{services.StatusActive, services.StatusPartiallyReturned}, now).
		Count(&overdue)
	stats["overdue_count"] = overdue
	return stats
}
