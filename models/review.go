package models

import "time"

// Review is submitted by guests and hidden until an admin approves it.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string `gorm:"size:255" json:"name"`
	Rating     int    `json:"rating"` // 1..5
	Comment    string `gorm:"type:text" json:"comment"`
	IsApproved bool   `gorm:"column:is_approved;default:false;index" json:"is_approved"`
}
