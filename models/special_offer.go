package models

import "time"

type SpecialOffer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string  `gorm:"size:255" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	TimePeriod  *string `gorm:"column:time_period;size:255" json:"time_period,omitempty"` // e.g. "Weekdays 17:00-19:00"
	ImageURL    *string `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	SortOrder   int     `gorm:"column:sort_order;default:0" json:"sort_order"`
}
