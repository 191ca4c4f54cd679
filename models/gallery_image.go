package models

import "time"

type GalleryImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ImageURL  string `gorm:"column:image_url;size:512" json:"image_url"`
	AltText   string `gorm:"column:alt_text;size:255" json:"alt_text"`
	SortOrder int    `gorm:"column:sort_order;default:0" json:"sort_order"`
}
