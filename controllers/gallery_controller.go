package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resto-backend/config"
	"resto-backend/models"
	"resto-backend/services"
)

type galleryImagePayload struct {
	ImageURL  string `json:"image_url" binding:"required"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
}

func GetGalleryImages(c *gin.Context) {
	var images []models.GalleryImage
	if err := config.DB.Order("sort_order ASC, id ASC").Find(&images).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gallery_images": images})
}

func CreateGalleryImage(c *gin.Context) {
	var payload galleryImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	image := models.GalleryImage{
		ImageURL:  strings.TrimSpace(payload.ImageURL),
		AltText:   strings.TrimSpace(payload.AltText),
		SortOrder: payload.SortOrder,
	}
	if err := config.DB.Create(&image).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusCreated, gin.H{"gallery_image": image})
}

func UpdateGalleryImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var image models.GalleryImage
	if err := config.DB.First(&image, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "gallery image not found")
		return
	}

	var payload galleryImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	oldURL := image.ImageURL
	image.ImageURL = strings.TrimSpace(payload.ImageURL)
	image.AltText = strings.TrimSpace(payload.AltText)
	image.SortOrder = payload.SortOrder
	if err := config.DB.Save(&image).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if oldURL != image.ImageURL {
		_ = services.RemoveStoredFile(oldURL)
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"gallery_image": image})
}

func DeleteGalleryImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var image models.GalleryImage
	if err := config.DB.First(&image, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "gallery image not found")
		return
	}

	if err := config.DB.Delete(&image).Error; err != nil {
		respondInternal(c, err)
		return
	}
	_ = services.RemoveStoredFile(image.ImageURL)

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
