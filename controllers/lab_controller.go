package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"silab-api/models"
	"silab-api/services"
)

// ListLabs returns all active labs.
func ListLabs(c *gin.Context) {
	var labs []models.Lab
	if err := getDB().Where("deleted_at IS NULL").Order("lab_name ASC").Find(&labs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch labs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"labs":  labs,
		"total": len(labs),
	})
}

// GetLabMembers lists the user assignment set of a lab.
func GetLabMembers(c *gin.Context) {
	labID, err := strconv.Atoi(c.Param("id"))
	if err != nil || labID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lab ID"})
		return
	}

	var members []models.LabUser
	if err := getDB().Preload("User.Role").
		Where("lab_id = ?", labID).
		Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lab members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"total":   len(members),
	})
}

type assignMemberReq struct {
	UserID int `json:"user_id" binding:"required"`
}

// AssignLabMember adds a user to a lab's assignment set (admin only).
func AssignLabMember(c *gin.Context) {
	labID, err := strconv.Atoi(c.Param("id"))
	if err != nil || labID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID laboratorium tidak valid"})
		return
	}

	var req assignMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	var user models.User
	if err := getDB().Where("user_id = ? AND is_active = ? AND deleted_at IS NULL", req.UserID, true).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Pengguna tidak ditemukan"})
		return
	}

	adminID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	assignment := models.LabUser{
		LabID:      labID,
		UserID:     req.UserID,
		AssignedBy: adminID,
		CreatedAt:  time.Now(),
	}
	if err := getDB().Create(&assignment).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Pengguna sudah terdaftar pada laboratorium ini"})
		return
	}

	services.WriteAudit(getDB(), services.AuditEntry{
		Category:   "lab",
		Action:     "assign-member",
		Outcome:    "success",
		UserID:     adminID,
		ActorRole:  role,
		TargetType: "lab",
		TargetID:   labID,
		IPAddress:  c.ClientIP(),
		Metadata: map[string]interface{}{
			"member_user_id": req.UserID,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Pengguna berhasil ditambahkan ke laboratorium",
	})
}

// RemoveLabMember removes a user from a lab's assignment set.
func RemoveLabMember(c *gin.Context) {
	labID, err := strconv.Atoi(c.Param("id"))
	if err != nil || labID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID laboratorium tidak valid"})
		return
	}
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID pengguna tidak valid"})
		return
	}

	result := getDB().Where("lab_id = ? AND user_id = ?", labID, userID).
		Delete(&models.LabUser{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Gagal menghapus anggota"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Anggota tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Anggota berhasil dihapus"})
}

type usageLogReq struct {
	LabID   int    `json:"lab_id" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
	Notes   string `json:"notes"`
}

// CreateLabUsageLog checks the caller into a lab session.
func CreateLabUsageLog(c *gin.Context) {
	var req usageLogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	userID, _ := getCurrentUserID(c)
	now := time.Now()
	entry := models.LabUsageLog{
		LabID:     req.LabID,
		UserID:    userID,
		Purpose:   strings.TrimSpace(req.Purpose),
		StartedAt: now,
		CreatedAt: now,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		entry.Notes = &notes
	}

	if err := getDB().Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Gagal mencatat penggunaan laboratorium"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Penggunaan laboratorium berhasil dicatat",
		"usage":   entry,
	})
}

// EndLabUsageLog closes an open usage session owned by the caller.
func EndLabUsageLog(c *gin.Context) {
	usageID, err := strconv.Atoi(c.Param("id"))
	if err != nil || usageID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID sesi tidak valid"})
		return
	}

	userID, _ := getCurrentUserID(c)
	now := time.Now()

	result := getDB().Model(&models.LabUsageLog{}).
		Where("usage_id = ? AND user_id = ? AND ended_at IS NULL", usageID, userID).
		Update("ended_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Gagal menutup sesi"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Sesi tidak ditemukan atau sudah ditutup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Sesi penggunaan laboratorium ditutup"})
}

// ListLabUsageLogs lists usage entries for a lab, newest first.
func ListLabUsageLogs(c *gin.Context) {
	labID, err := strconv.Atoi(c.Param("id"))
	if err != nil || labID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lab ID"})
		return
	}

	var logs []models.LabUsageLog
	if err := getDB().Preload("User").
		Where("lab_id = ?", labID).
		Order("started_at DESC").Limit(100).
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
	})
}
