package models

import (
	"time"

	"gorm.io/datatypes"
)

// MenuItem categories and cuisine types come from fixed sets; values are
// validated at the controller, not with DB enums, so new ones are cheap to add.
type MenuItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// Display price string, e.g. "Rp 85.000". The original stores it
	// pre-formatted and only parses digits back out for sorting.
	Price    string `gorm:"size:50" json:"price"`
	Category string `gorm:"size:32;index" json:"category"` // appetizer | main | dessert | drink
	Type     string `gorm:"size:32;index" json:"type"`     // acehnese | french | other

	ImageURL  *string        `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	SortOrder int            `gorm:"column:sort_order;default:0" json:"sort_order"`
	Tags      datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"` // dietary labels, e.g. ["spicy","halal"]
}
