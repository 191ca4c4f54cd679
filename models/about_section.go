package models

import "time"

type AboutSection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title     string  `gorm:"size:255" json:"title"`
	Content   string  `gorm:"type:text" json:"content"`
	ImageURL  *string `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	SortOrder int     `gorm:"column:sort_order;default:0" json:"sort_order"`
}
