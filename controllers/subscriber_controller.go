package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resto-backend/config"
	"resto-backend/models"
)

type subscribePayload struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe adds a newsletter signup. Duplicates are special-cased off the
// unique index instead of a lookup-then-insert round trip.
func Subscribe(c *gin.Context) {
	var payload subscribePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", "a valid email is required")
		return
	}

	sub := models.NewsletterSubscriber{Email: strings.ToLower(strings.TrimSpace(payload.Email))}
	if err := config.DB.Create(&sub).Error; err != nil {
		if isDuplicateEntry(err) {
			respondError(c, http.StatusConflict, "error.alreadySubscribed", "this email is already subscribed")
			return
		}
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

func ListSubscribers(c *gin.Context) {
	var subs []models.NewsletterSubscriber
	if err := config.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subs})
}

func DeleteSubscriber(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&models.NewsletterSubscriber{}, id).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
