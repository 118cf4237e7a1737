package usecases

import (
	"context"

	"helpdesk/internal/domain/token"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email     string
	Password  string
	UserAgent string
	IP        string
}

type LoginUserInfo struct {
	ID          uint
	Email       string
	DisplayName string
	Role        string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         LoginUserInfo
}

type LoginUseCase struct {
	users  user.UserRepository
	tokens token.TokenRepository
	hasher PasswordVerifier
	issuer TokenIssuer
	logger logger.Interface
}

func NewLoginUseCase(
	users user.UserRepository,
	tokens token.TokenRepository,
	hasher PasswordVerifier,
	issuer TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		issuer: issuer,
		logger: logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password required")
	}

	u, err := uc.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Infow("login attempt for unknown email", "email", cmd.Email)
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if !u.IsActive() {
		uc.logger.Warnw("login attempt on disabled account", "user_id", u.ID())
		return nil, errors.NewAccountDisabledError()
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Infow("login attempt with wrong password", "user_id", u.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	pair, err := uc.issuer.Generate(u.ID(), u.Role(), u.Email())
	if err != nil {
		return nil, err
	}

	record, err := token.NewRefreshToken(u.ID(), pair.RefreshJTI, auth.HashToken(pair.RefreshToken), pair.RefreshExpiresAt, cmd.UserAgent, cmd.IP)
	if err != nil {
		return nil, err
	}

	if err := uc.tokens.Save(ctx, record); err != nil {
		return nil, err
	}

	uc.logger.Infow("user logged in", "user_id", u.ID())

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User: LoginUserInfo{
			ID:          u.ID(),
			Email:       u.Email(),
			DisplayName: u.DisplayName(),
			Role:        u.Role().String(),
		},
	}, nil
}
