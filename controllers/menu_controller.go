package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resto-backend/config"
	"resto-backend/models"
	"resto-backend/services"
)

var menuCategories = map[string]bool{"appetizer": true, "main": true, "dessert": true, "drink": true}
var menuTypes = map[string]bool{"acehnese": true, "french": true, "other": true}

type menuItemPayload struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	ImageURL    *string  `json:"image_url"`
	SortOrder   int      `json:"sort_order"`
	Tags        []string `json:"tags"`
}

func (p *menuItemPayload) validate() string {
	if !menuCategories[p.Category] {
		return "unknown category"
	}
	if !menuTypes[p.Type] {
		return "unknown type"
	}
	return ""
}

func (p *menuItemPayload) apply(item *models.MenuItem) {
	item.Name = strings.TrimSpace(p.Name)
	item.Description = strings.TrimSpace(p.Description)
	item.Price = strings.TrimSpace(p.Price)
	item.Category = p.Category
	item.Type = p.Type
	item.ImageURL = p.ImageURL
	item.SortOrder = p.SortOrder
	if p.Tags != nil {
		if raw, err := json.Marshal(p.Tags); err == nil {
			item.Tags = raw
		}
	}
}

// GetMenuItems serves the public menu. Optional category/type/tag filters;
// tag matching happens on the JSON column.
func GetMenuItems(c *gin.Context) {
	q := config.DB.Model(&models.MenuItem{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if typ := c.Query("type"); typ != "" {
		q = q.Where("type = ?", typ)
	}
	if tag := c.Query("tag"); tag != "" {
		q = q.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", tag)
	}

	var items []models.MenuItem
	if err := q.Order("sort_order ASC, name ASC").Find(&items).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_items": items})
}

func CreateMenuItem(c *gin.Context) {
	var payload menuItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if msg := payload.validate(); msg != "" {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", msg)
		return
	}

	var item models.MenuItem
	payload.apply(&item)
	if err := config.DB.Create(&item).Error; err != nil {
		respondInternal(c, err)
		return
	}

	flushPublicCache(c)
	c.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

func UpdateMenuItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "menu item not found")
		return
	}

	var payload menuItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if msg := payload.validate(); msg != "" {
		respondError(c, http.StatusBadRequest, "error.invalidPayload", msg)
		return
	}

	// Replacing the image orphans the old file unless it is cleaned up here.
	oldURL := item.ImageURL
	payload.apply(&item)
	if err := config.DB.Save(&item).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if oldURL != nil && (item.ImageURL == nil || *oldURL != *item.ImageURL) {
		_ = services.RemoveStoredFile(*oldURL)
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

func DeleteMenuItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "error.notFound", "menu item not found")
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if item.ImageURL != nil {
		_ = services.RemoveStoredFile(*item.ImageURL)
	}

	flushPublicCache(c)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
