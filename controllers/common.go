package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"silab-api/config"
)

func getDB() *gorm.DB { return config.DB }

func getCurrentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		}
	}
	return 0, false
}

func getCurrentRole(c *gin.Context) (string, bool) {
	if v, ok := c.Get("roleCode"); ok {
		if role, ok := v.(string); ok {
			return role, true
		}
	}
	return "", false
}
