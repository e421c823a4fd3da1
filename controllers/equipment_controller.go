package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"silab-api/models"
)

// ListEquipments returns the equipment catalog, optionally per lab.
func ListEquipments(c *gin.Context) {
	query := getDB().Model(&models.Equipment{}).
		Preload("Units", "deleted_at IS NULL").
		Preload("Lab").
		Where("equipments.deleted_at IS NULL")

	if labID, err := strconv.Atoi(c.Query("lab_id")); err == nil && labID > 0 {
		query = query.Where("lab_id = ?", labID)
	}
	if keyword := strings.TrimSpace(c.Query("q")); keyword != "" {
		query = query.Where("equipment_name LIKE ?", "%"+keyword+"%")
	}

	var equipments []models.Equipment
	if err := query.Order("equipment_name ASC").Find(&equipments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipments": equipments,
		"total":      len(equipments),
	})
}

type equipmentReq struct {
	LabID         int     `json:"lab_id" binding:"required"`
	EquipmentName string  `json:"equipment_name" binding:"required"`
	Category      *string `json:"category"`
	Description   *string `json:"description"`
}

// CreateEquipment registers a new equipment type (admin / lab staff).
func CreateEquipment(c *gin.Context) {
	var req equipmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	now := time.Now()
	equipment := models.Equipment{
		LabID:         req.LabID,
		EquipmentName: strings.TrimSpace(req.EquipmentName),
		Category:      req.Category,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := getDB().Create(&equipment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Gagal menyimpan alat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"message":   "Alat berhasil ditambahkan",
		"equipment": equipment,
	})
}

type unitReq struct {
	SerialNumber string `json:"serial_number" binding:"required"`
	Status       string `json:"status"`
}

// AddEquipmentUnit registers one serial-numbered unit of an equipment.
func AddEquipmentUnit(c *gin.Context) {
	equipmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || equipmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID alat tidak valid"})
		return
	}

	var req unitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	var equipment models.Equipment
	if err := getDB().Where("equipment_id = ? AND deleted_at IS NULL", equipmentID).
		First(&equipment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Alat tidak ditemukan"})
		return
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.UnitStatusAvailable
	}
	switch status {
	case models.UnitStatusAvailable, models.UnitStatusMaintenance, models.UnitStatusRetired:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Status unit tidak valid"})
		return
	}

	now := time.Now()
	unit := models.EquipmentUnit{
		EquipmentID:  equipmentID,
		SerialNumber: strings.TrimSpace(req.SerialNumber),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := getDB().Create(&unit).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Nomor seri sudah terdaftar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Unit alat berhasil ditambahkan",
		"unit":    unit,
	})
}

// UpdateEquipmentUnitStatus moves a unit between available, maintenance
// and retired. Borrowed is owned by the handover/return flow.
func UpdateEquipmentUnitStatus(c *gin.Context) {
	unitID, err := strconv.Atoi(c.Param("unitId"))
	if err != nil || unitID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID unit tidak valid"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}

	status := strings.TrimSpace(req.Status)
	switch status {
	case models.UnitStatusAvailable, models.UnitStatusMaintenance, models.UnitStatusRetired:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Status unit tidak valid"})
		return
	}

	result := getDB().Model(&models.EquipmentUnit{}).
		Where("unit_id = ? AND status <> ? AND deleted_at IS NULL", unitID, models.UnitStatusBorrowed).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Gagal memperbarui unit"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Unit sedang dipinjam atau tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Status unit berhasil diperbarui"})
}
