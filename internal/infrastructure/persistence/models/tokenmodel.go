package models

import "time"

// TokenModel stores refresh token records. Rows are never deleted so
// the audit trail survives revocation.
type TokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	JTI       string    `gorm:"uniqueIndex;size:36;not null"`
	TokenHash string    `gorm:"size:64;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	RevokedAt *time.Time
	UserAgent string `gorm:"size:255"`
	IP        string `gorm:"size:64"`
	CreatedAt time.Time
}

func (TokenModel) TableName() string {
	return "tokens"
}
