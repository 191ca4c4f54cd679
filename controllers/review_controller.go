package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resto-backend/config"
	"resto-backend/models"
)

type reviewPayload struct {
	Name    string `json:"name" binding:"required,min=2"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,min=10"`
}

// GetApprovedReviews is the public list shown on the site.
func GetApprovedReviews(c *gin.Context) {
	var reviews []models.Review
	if err := config.DB.Where("is_approved = ?", true).Order("created_at DESC").Find(&reviews).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// CreateReview takes a guest submission; it stays hidden until approved.
func CreateReview(c *gin.Context) {
	var payload reviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	review := models.Review{
		Name:    strings.TrimSpace(payload.Name),
		Rating:  payload.Rating,
		Comment: strings.TrimSpace(payload.Comment),
	}
	if err := config.DB.Create(&review).Error; err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "review": review})
}

// ListReviews is the admin view; ?approved=true/false filters, default all.
func ListReviews(c *gin.Context) {
	q := config.DB.Model(&models.Review{})
	if approved := c.Query("approved"); approved != "" {
		q = q.Where("is_approved = ?", approved == "true")
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Find(&reviews).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func ApproveReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var review models.Review
	if err := config.DB.First(&review, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "review not found")
		return
	}

	if err := config.DB.Model(&review).Update("is_approved", true).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"status": "success", "review": review})
}

func DeleteReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&models.Review{}, id).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
