package models

import "time"

// ContactInfo is a singleton row; the admin upserts it.
type ContactInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	// Stored as HTML so the admin can keep per-day formatting.
	OpeningHours       string  `gorm:"column:opening_hours;type:text" json:"opening_hours"`
	GoogleMapsEmbedURL *string `gorm:"column:google_maps_embed_url;size:1024" json:"google_maps_embed_url,omitempty"`
}
