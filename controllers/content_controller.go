package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resto-backend/config"
	"resto-backend/models"
	"resto-backend/services"
)

// ---------------------------
// Hero
// ---------------------------

type heroContentPayload struct {
	Title           string  `json:"title" binding:"required,min=2"`
	Subtitle        *string `json:"subtitle"`
	ImageURL        *string `json:"image_url"`
	SelectedImageID *uint   `json:"selected_image_id"`
}

func GetHeroContent(c *gin.Context) {
	var hero models.HeroContent
	if err := config.DB.First(&hero).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"hero": models.HeroContent{}})
			return
		}
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

// UpdateHeroContent upserts the singleton row. Selecting a pooled image also
// copies its URL so the public payload needs no join.
func UpdateHeroContent(c *gin.Context) {
	var payload heroContentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if payload.SelectedImageID != nil {
		var img models.HeroImage
		if err := config.DB.First(&img, *payload.SelectedImageID).Error; err != nil {
			respondError(c, http.StatusBadRequest, "error.invalidPayload", "selected hero image does not exist")
			return
		}
		payload.ImageURL = &img.ImageURL
	}

	var hero models.HeroContent
	err := config.DB.First(&hero).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondInternal(c, err)
		return
	}

	hero.Title = strings.TrimSpace(payload.Title)
	hero.Subtitle = payload.Subtitle
	hero.ImageURL = payload.ImageURL
	hero.SelectedImageID = payload.SelectedImageID

	if err := config.DB.Save(&hero).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

func ListHeroImages(c *gin.Context) {
	var images []models.HeroImage
	if err := config.DB.Order("id DESC").Find(&images).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero_images": images})
}

func CreateHeroImage(c *gin.Context) {
	var payload struct {
		ImageURL string `json:"image_url" binding:"required"`
		AltText  string `json:"alt_text"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	img := models.HeroImage{ImageURL: strings.TrimSpace(payload.ImageURL), AltText: strings.TrimSpace(payload.AltText)}
	if err := config.DB.Create(&img).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hero_image": img})
}

func DeleteHeroImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var img models.HeroImage
	if err := config.DB.First(&img, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "hero image not found")
		return
	}

	if err := config.DB.Delete(&img).Error; err != nil {
		respondInternal(c, err)
		return
	}
	_ = services.RemoveStoredFile(img.ImageURL)

	// The hero may have been pointing at the deleted image.
	config.DB.Model(&models.HeroContent{}).
		Where("selected_image_id = ?", id).
		Updates(map[string]any{"selected_image_id": nil, "image_url": nil})

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ---------------------------
// About sections
// ---------------------------

type aboutSectionPayload struct {
	Title     string  `json:"title" binding:"required"`
	Content   string  `json:"content" binding:"required"`
	ImageURL  *string `json:"image_url"`
	SortOrder int     `json:"sort_order"`
}

func GetAboutSections(c *gin.Context) {
	var sections []models.AboutSection
	if err := config.DB.Order("sort_order ASC, id ASC").Find(&sections).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"about_sections": sections})
}

func CreateAboutSection(c *gin.Context) {
	var payload aboutSectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	section := models.AboutSection{
		Title:     strings.TrimSpace(payload.Title),
		Content:   payload.Content,
		ImageURL:  payload.ImageURL,
		SortOrder: payload.SortOrder,
	}
	if err := config.DB.Create(&section).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusCreated, gin.H{"about_section": section})
}

func UpdateAboutSection(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var section models.AboutSection
	if err := config.DB.First(&section, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "about section not found")
		return
	}

	var payload aboutSectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	oldURL := section.ImageURL
	section.Title = strings.TrimSpace(payload.Title)
	section.Content = payload.Content
	section.ImageURL = payload.ImageURL
	section.SortOrder = payload.SortOrder
	if err := config.DB.Save(&section).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if oldURL != nil && (section.ImageURL == nil || *oldURL != *section.ImageURL) {
		_ = services.RemoveStoredFile(*oldURL)
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"about_section": section})
}

func DeleteAboutSection(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var section models.AboutSection
	if err := config.DB.First(&section, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "about section not found")
		return
	}

	if err := config.DB.Delete(&section).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if section.ImageURL != nil {
		_ = services.RemoveStoredFile(*section.ImageURL)
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ---------------------------
// Contact info
// ---------------------------

type contactInfoPayload struct {
	Address            string  `json:"address"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	OpeningHours       string  `json:"opening_hours"`
	GoogleMapsEmbedURL *string `json:"google_maps_embed_url"`
}

func GetContactInfo(c *gin.Context) {
	var contact models.ContactInfo
	if err := config.DB.First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"contact": models.ContactInfo{}})
			return
		}
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

func UpdateContactInfo(c *gin.Context) {
	var payload contactInfoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	var contact models.ContactInfo
	err := config.DB.First(&contact).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondInternal(c, err)
		return
	}

	contact.Address = payload.Address
	contact.Phone = payload.Phone
	contact.Email = payload.Email
	contact.OpeningHours = payload.OpeningHours
	contact.GoogleMapsEmbedURL = payload.GoogleMapsEmbedURL

	if err := config.DB.Save(&contact).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}
