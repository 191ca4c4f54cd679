package models

import "time"

// HeroContent is a singleton row holding the landing hero copy and the
// currently selected image. SelectedImageID points into hero_images but is
// kept as a loose reference so deleting a pooled image never blocks on FK.
type HeroContent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title           string  `gorm:"size:255" json:"title"`
	Subtitle        *string `gorm:"type:text" json:"subtitle,omitempty"`
	ImageURL        *string `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	SelectedImageID *uint   `gorm:"column:selected_image_id" json:"selected_image_id,omitempty"`
}

// HeroImage is the pool of uploaded hero candidates.
type HeroImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ImageURL string `gorm:"column:image_url;size:512" json:"image_url"`
	AltText  string `gorm:"column:alt_text;size:255" json:"alt_text"`
}
