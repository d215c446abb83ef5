package users

import "time"

// Token types for VerificationToken.Type.
const (
	TokenTypeEmailVerify   = "email_verify"
	TokenTypePasswordReset = "password_reset"
)

// VerificationToken backs email-verification and password-reset links.
// One live token per user and purpose; cascade-deleted with the user.
type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_verification_user_type"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"uniqueIndex:idx_verification_user_type"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
