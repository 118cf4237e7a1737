package usecases

import (
	"context"

	"helpdesk/internal/domain/token"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LogoutAllCommand struct {
	UserID uint
}

// LogoutAllUseCase revokes every outstanding refresh token of a user,
// ending all of their sessions at once.
type LogoutAllUseCase struct {
	tokens token.TokenRepository
	logger logger.Interface
}

func NewLogoutAllUseCase(tokens token.TokenRepository, logger logger.Interface) *LogoutAllUseCase {
	return &LogoutAllUseCase{
		tokens: tokens,
		logger: logger,
	}
}

func (uc *LogoutAllUseCase) Execute(ctx context.Context, cmd LogoutAllCommand) error {
	if cmd.UserID == 0 {
		return errors.NewValidationError("userId required")
	}

	if err := uc.tokens.RevokeAllForUser(ctx, cmd.UserID); err != nil {
		return err
	}

	uc.logger.Infow("all sessions revoked", "user_id", cmd.UserID)
	return nil
}
