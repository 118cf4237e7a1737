package usecases

import (
	"context"

	"helpdesk/internal/domain/token"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LogoutCommand struct {
	RefreshToken string
}

// LogoutUseCase revokes the presented refresh token. Logout is
// idempotent: an invalid, expired, or already revoked token still
// counts as logged out.
type LogoutUseCase struct {
	tokens token.TokenRepository
	issuer TokenIssuer
	logger logger.Interface
}

func NewLogoutUseCase(
	tokens token.TokenRepository,
	issuer TokenIssuer,
	logger logger.Interface,
) *LogoutUseCase {
	return &LogoutUseCase{
		tokens: tokens,
		issuer: issuer,
		logger: logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.RefreshToken == "" {
		return errors.NewValidationError("refreshToken required")
	}

	claims, err := uc.issuer.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		// Already unusable, treat as logged out.
		return nil
	}

	if err := uc.tokens.Revoke(ctx, claims.ID); err != nil {
		return err
	}

	uc.logger.Debugw("refresh token revoked on logout", "jti", claims.ID)
	return nil
}
