package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resto-backend/config"
	"resto-backend/models"
	"resto-backend/services"
)

type specialOfferPayload struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	TimePeriod  *string `json:"time_period"`
	ImageURL    *string `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
}

func (p *specialOfferPayload) apply(offer *models.SpecialOffer) {
	offer.Title = strings.TrimSpace(p.Title)
	offer.Description = strings.TrimSpace(p.Description)
	offer.TimePeriod = p.TimePeriod
	offer.ImageURL = p.ImageURL
	offer.SortOrder = p.SortOrder
}

func GetSpecialOffers(c *gin.Context) {
	var offers []models.SpecialOffer
	if err := config.DB.Order("sort_order ASC, id ASC").Find(&offers).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"special_offers": offers})
}

func CreateSpecialOffer(c *gin.Context) {
	var payload specialOfferPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	var offer models.SpecialOffer
	payload.apply(&offer)
	if err := config.DB.Create(&offer).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusCreated, gin.H{"special_offer": offer})
}

func UpdateSpecialOffer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var offer models.SpecialOffer
	if err := config.DB.First(&offer, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "special offer not found")
		return
	}

	var payload specialOfferPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	oldURL := offer.ImageURL
	payload.apply(&offer)
	if err := config.DB.Save(&offer).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if oldURL != nil && (offer.ImageURL == nil || *oldURL != *offer.ImageURL) {
		_ = services.RemoveStoredFile(*oldURL)
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"special_offer": offer})
}

func DeleteSpecialOffer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var offer models.SpecialOffer
	if err := config.DB.First(&offer, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "special offer not found")
		return
	}

	if err := config.DB.Delete(&offer).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if offer.ImageURL != nil {
		_ = services.RemoveStoredFile(*offer.ImageURL)
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
