package inventory

import "time"

// Location kinds.
const (
	LocationGallery = "gallery"
	LocationMuseum  = "museum"
	LocationStudio  = "studio"
	LocationOther   = "other"
)

type Location struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"-"`

	Kind    string `gorm:"not null;default:'other'" json:"kind"`
	Name    string `gorm:"not null" json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
