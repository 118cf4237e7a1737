package token

import "context"

type TokenRepository interface {
	Save(ctx context.Context, token *RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (*RefreshToken, error)
	// Revoke marks a token revoked by JTI. Revoking an already revoked
	// or unknown token is not an error.
	Revoke(ctx context.Context, jti string) error
	// RevokeAllForUser revokes every outstanding token of the user.
	RevokeAllForUser(ctx context.Context, userID uint) error
}
