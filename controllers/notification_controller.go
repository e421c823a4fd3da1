package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"silab-api/models"
	"silab-api/services"
)

// GetNotificationSummary recomputes the caller's actionable items from
// live transactional state and returns them with the read watermark.
func GetNotificationSummary(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	role, ok := getCurrentRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := services.Summarize(getDB(), role, userID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	var state models.UserNotificationState
	_ = getDB().Where("user_id = ?", userID).First(&state).Error

	c.JSON(http.StatusOK, gin.H{
		"totalUnread": summary.TotalUnread,
		"items":       summary.Items,
		"generatedAt": summary.GeneratedAt,
		"lastReadAt":  state.BorrowingLastReadAt,
	})
}

// MarkNotificationsRead upserts the caller's read watermark. Counts stay
// live; only the client badge resets.
func MarkNotificationsRead(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	readAt, err := services.MarkRead(getDB(), userID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"readAt": readAt,
	})
}
