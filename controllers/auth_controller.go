package controllers

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"resto-backend/config"
	"resto-backend/models"
	"resto-backend/utils"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type forgotPayload struct {
	Email string `json:"email"`
}

func tokenTTLMinutes() int {
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL_MIN")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 720
}

func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	password := payload.Password
	if username == "" || password == "" {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", "username and password required")
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		respondError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials")
		return
	}

	token, err := utils.NewAccessToken(os.Getenv("JWT_SECRET"), admin.ID, admin.FullName, tokenTTLMinutes())
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token.Token,
		"expires_at": token.Exp,
		"admin": gin.H{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"username":  admin.Username,
		},
	})
}

// ForgotPassword always answers 200 so usernames cannot be probed. When the
// account exists a reset token is stored for one hour.
func ForgotPassword(c *gin.Context) {
	var payload forgotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", "invalid payload")
		return
	}

	email := strings.TrimSpace(payload.Email)
	if email == "" {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", "email required")
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", email).First(&admin).Error; err == nil {
		if token, err := utils.GenerateSecureToken(24); err == nil {
			expiry := time.Now().Add(1 * time.Hour)
			config.DB.Model(&admin).Updates(map[string]any{
				"reset_token":         token,
				"reset_token_expires": expiry,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If this email exists, a reset link was sent."})
}
