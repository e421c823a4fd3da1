package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"silab-api/models"
	"silab-api/services"
)

// ListConsumables returns consumable stock, optionally per lab.
func ListConsumables(c *gin.Context) {
	query := getDB().Model(&models.Consumable{}).
		Preload("Lab").
		Where("deleted_at IS NULL")

	if labID, err := strconv.Atoi(c.Query("lab_id")); err == nil && labID > 0 {
		query = query.Where("lab_id = ?", labID)
	}
	if c.Query("low_stock") == "1" {
		query = query.Where("stock <= minimum_stock")
	}

	var consumables []models.Consumable
	if err := query.Order("consumable_name ASC").Find(&consumables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consumables"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"consumables": consumables,
		"total":       len(consumables),
	})
}

type consumableReq struct {
	LabID          int    `json:"lab_id" binding:"required"`
	ConsumableName string `json:"consumable_name" binding:"required"`
	Unit           string `json:"unit" binding:"required"`
	Stock          int    `json:"stock"`
	MinimumStock   int    `json:"minimum_stock"`
}

// CreateConsumable registers a consumable item for a lab.
func CreateConsumable(c *gin.Context) {
	var req consumableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Permintaan tidak valid"})
		return
	}
	if req.Stock < 0 || req.MinimumStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Stok tidak boleh negatif"})
		return
	}

	now := time.Now()
	consumable := models.Consumable{
		LabID:          req.LabID,
		ConsumableName: strings.TrimSpace(req.ConsumableName),
		Unit:           strings.TrimSpace(req.Unit),
		Stock:          req.Stock,
		MinimumStock:   req.MinimumStock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := getDB().Create(&consumable).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Gagal menyimpan bahan habis pakai"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"message":    "Bahan habis pakai berhasil ditambahkan",
		"consumable": consumable,
	})
}

type stockAdjustReq struct {
	Quantity int    `json:"quantity" binding:"required"` // positive restock, negative usage
	Reason   string `json:"reason"`
}

// AdjustConsumableStock books a stock movement. Stock never drops below
// zero; the movement row and the stock update commit together.
func AdjustConsumableStock(c *gin.Context) {
	consumableID, err := strconv.Atoi(c.Param("id"))
	if err != nil || consumableID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "ID bahan tidak valid"})
		return
	}

	var req stockAdjustReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Jumlah penyesuaian tidak valid"})
		return
	}

	userID, _ := getCurrentUserID(c)
	role, _ := getCurrentRole(c)

	var updated models.Consumable
	err = getDB().Transaction(func(tx *gorm.DB) error {
		var consumable models.Consumable
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("consumable_id = ? AND deleted_at IS NULL", consumableID).
			First(&consumable).Error; err != nil {
			return err
		}

		newStock := consumable.Stock + req.Quantity
		if newStock < 0 {
			return services.ErrValidation
		}

		now := time.Now()
		if err := tx.Model(&models.Consumable{}).
			Where("consumable_id = ?", consumableID).
			Updates(map[string]interface{}{
				"stock":      newStock,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		movement := models.ConsumableMovement{
			ConsumableID: consumableID,
			Quantity:     req.Quantity,
			RecordedBy:   userID,
			CreatedAt:    now,
		}
		if reason := strings.TrimSpace(req.Reason); reason != "" {
			movement.Reason = &reason
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		consumable.Stock = newStock
		updated = consumable
		return nil
	})
	if err != nil {
		if err == services.ErrValidation {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Stok tidak mencukupi"})
			return
		}
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Bahan habis pakai tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Gagal menyesuaikan stok"})
		return
	}

	services.WriteAudit(getDB(), services.AuditEntry{
		Category:   "consumable",
		Action:     "adjust-stock",
		Outcome:    "success",
		UserID:     userID,
		ActorRole:  role,
		TargetType: "consumable",
		TargetID:   consumableID,
		IPAddress:  c.ClientIP(),
		Metadata: map[string]interface{}{
			"quantity": req.Quantity,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"message":    "Stok berhasil disesuaikan",
		"consumable": updated,
	})
}
