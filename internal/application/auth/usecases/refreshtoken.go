package usecases

import (
	"context"
	"strconv"

	"helpdesk/internal/domain/token"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshTokenUseCase rotates a refresh token: the presented token is
// revoked and a fresh pair is issued in the same transaction, so a
// crash cannot leave both the old and new token usable.
type RefreshTokenUseCase struct {
	users     user.UserRepository
	tokens    token.TokenRepository
	issuer    TokenIssuer
	txManager TransactionManager
	logger    logger.Interface
}

func NewRefreshTokenUseCase(
	users user.UserRepository,
	tokens token.TokenRepository,
	issuer TokenIssuer,
	txManager TransactionManager,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		users:     users,
		tokens:    tokens,
		issuer:    issuer,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewValidationError("refreshToken required")
	}

	claims, err := uc.issuer.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, err
	}

	record, err := uc.tokens.GetByJTI(ctx, claims.ID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenInvalidError("refresh token")
		}
		return nil, err
	}

	subject, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || record.UserID() != uint(subject) {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	// A revoked token showing up again means the raw token leaked or
	// was replayed after rotation.
	if record.IsRevoked() {
		uc.logger.Warnw("revoked refresh token replayed",
			"user_id", record.UserID(),
			"jti", record.JTI(),
		)
		return nil, errors.NewTokenRevokedError()
	}

	if record.IsExpired() {
		return nil, errors.NewTokenExpiredError("Refresh token")
	}

	if !auth.VerifyTokenHash(cmd.RefreshToken, record.TokenHash()) {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	u, err := uc.users.GetByID(ctx, record.UserID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenInvalidError("refresh token")
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, errors.NewAccountDisabledError()
	}

	pair, err := uc.issuer.Generate(u.ID(), u.Role(), u.Email())
	if err != nil {
		return nil, err
	}

	// The successor keeps the metadata of the session it rotates, so
	// the audit trail stays attached to the original login.
	newRecord, err := token.NewRefreshToken(u.ID(), pair.RefreshJTI, auth.HashToken(pair.RefreshToken), pair.RefreshExpiresAt, record.UserAgent(), record.IP())
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.tokens.Revoke(txCtx, record.JTI()); err != nil {
			return err
		}
		return uc.tokens.Save(txCtx, newRecord)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debugw("refresh token rotated", "user_id", u.ID())

	return &RefreshTokenResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
