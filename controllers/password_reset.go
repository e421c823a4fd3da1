package controllers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"silab-api/config"
	"silab-api/models"
)

const passwordResetTTL = 30 * time.Minute

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword issues a reset token and mails the link. The response
// is identical whether or not the email exists.
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"ok": true, "message": "Jika email terdaftar, tautan atur ulang kata sandi telah dikirim"}

	var user models.User
	if err := config.DB.Where("email = ? AND is_active = ? AND deleted_at IS NULL", req.Email, true).
		First(&user).Error; err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	token, err := generateResetToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	now := time.Now()
	// Revoke older reset tokens before issuing a new one.
	_ = config.DB.Model(&models.UserToken{}).
		Where("user_id = ? AND token_type = ? AND is_revoked = ?", user.UserID, "password_reset", false).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"expires_at": now,
			"updated_at": now,
		}).Error

	row := models.UserToken{
		UserID:    user.UserID,
		TokenHash: hashResetToken(token),
		TokenType: "password_reset",
		ExpiresAt: now.Add(passwordResetTTL),
		CreatedAt: now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	go func() {
		baseURL := strings.TrimSpace(os.Getenv("APP_BASE_URL"))
		if baseURL == "" {
			baseURL = "http://localhost:3000/"
		}
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		link := fmt.Sprintf("%sreset-password?token=%s", baseURL, token)
		body := buildResetEmailHTML(user.FullName, link)
		if err := config.SendMail([]string{user.Email}, "Atur Ulang Kata Sandi SILAB", body); err != nil {
			log.Printf("password reset email send failed (user=%d): %v", user.UserID, err)
		}
	}()

	c.JSON(http.StatusOK, response)
}

// ResetPassword consumes a valid token and sets the new password.
func ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	var row models.UserToken
	if err := config.DB.Where(
		"token_hash = ? AND token_type = ? AND is_revoked = ? AND expires_at > ?",
		hashResetToken(req.Token), "password_reset", false, now,
	).First(&row).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token tidak valid atau sudah kedaluwarsa"})
		return
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", row.UserID).
		Updates(map[string]interface{}{
			"password":   hashed,
			"updated_at": now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	_ = config.DB.Model(&models.UserToken{}).
		Where("token_id = ?", row.TokenID).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"updated_at": now,
		}).Error

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Kata sandi berhasil diatur ulang"})
}

func buildResetEmailHTML(name, link string) string {
	escapedName := template.HTMLEscapeString(strings.TrimSpace(name))
	if escapedName == "" {
		escapedName = "Pengguna"
	}
	escapedLink := template.HTMLEscapeString(link)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Atur Ulang Kata Sandi</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Halo %s,</p>
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Klik tautan berikut untuk mengatur ulang kata sandi akun SILAB Anda. Tautan berlaku selama 30 menit.</p>
    <p style="margin:0;font-size:16px;line-height:1.7;word-break:break-all;"><a href="%s">%s</a></p>
  </div>
</div>
</body>
</html>`, escapedName, escapedLink, escapedLink)
}
