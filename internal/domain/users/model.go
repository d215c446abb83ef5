package users

import "time"

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	// Preferred locale for agent responses ("en" | "zh").
	Locale string `gorm:"type:varchar(5);not null;default:'en'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
