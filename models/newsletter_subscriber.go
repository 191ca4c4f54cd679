package models

import "time"

type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Email string `gorm:"uniqueIndex;size:255" json:"email"`
}
