package token

import (
	"fmt"
	"time"
)

// RefreshToken is a persisted refresh token record. The raw token is
// never stored, only its hash. Rows are kept after revocation so that
// replayed tokens can be distinguished from unknown ones.
type RefreshToken struct {
	id        uint
	userID    uint
	jti       string
	tokenHash string
	expiresAt time.Time
	revokedAt *time.Time
	userAgent string
	ip        string
	createdAt time.Time
}

// NewRefreshToken builds a fresh token record. userAgent and ip are
// the client metadata captured when the token was issued; both may be
// empty.
func NewRefreshToken(userID uint, jti, tokenHash string, expiresAt time.Time, userAgent, ip string) (*RefreshToken, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(jti) == 0 {
		return nil, fmt.Errorf("token ID is required")
	}
	if len(tokenHash) == 0 {
		return nil, fmt.Errorf("token hash is required")
	}
	if expiresAt.IsZero() {
		return nil, fmt.Errorf("expiry is required")
	}

	return &RefreshToken{
		userID:    userID,
		jti:       jti,
		tokenHash: tokenHash,
		expiresAt: expiresAt,
		userAgent: userAgent,
		ip:        ip,
		createdAt: time.Now(),
	}, nil
}

func ReconstructRefreshToken(
	id uint,
	userID uint,
	jti string,
	tokenHash string,
	expiresAt time.Time,
	revokedAt *time.Time,
	userAgent string,
	ip string,
	createdAt time.Time,
) *RefreshToken {
	return &RefreshToken{
		id:        id,
		userID:    userID,
		jti:       jti,
		tokenHash: tokenHash,
		expiresAt: expiresAt,
		revokedAt: revokedAt,
		userAgent: userAgent,
		ip:        ip,
		createdAt: createdAt,
	}
}

func (t *RefreshToken) ID() uint {
	return t.id
}

func (t *RefreshToken) UserID() uint {
	return t.userID
}

func (t *RefreshToken) JTI() string {
	return t.jti
}

func (t *RefreshToken) TokenHash() string {
	return t.tokenHash
}

func (t *RefreshToken) ExpiresAt() time.Time {
	return t.expiresAt
}

func (t *RefreshToken) RevokedAt() *time.Time {
	return t.revokedAt
}

func (t *RefreshToken) UserAgent() string {
	return t.userAgent
}

func (t *RefreshToken) IP() string {
	return t.ip
}

func (t *RefreshToken) CreatedAt() time.Time {
	return t.createdAt
}

func (t *RefreshToken) IsRevoked() bool {
	return t.revokedAt != nil
}

func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.expiresAt)
}

func (t *RefreshToken) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("token ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("token ID cannot be zero")
	}
	t.id = id
	return nil
}

// Revoke marks the token revoked. Revoking twice keeps the original
// revocation time.
func (t *RefreshToken) Revoke() {
	if t.revokedAt != nil {
		return
	}
	now := time.Now()
	t.revokedAt = &now
}
