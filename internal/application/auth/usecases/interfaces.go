package usecases

import (
	"context"

	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
)

// TokenIssuer signs and verifies JWT pairs.
type TokenIssuer interface {
	Generate(userID uint, role authorization.UserRole, email string) (*auth.TokenPair, error)
	VerifyRefresh(tokenString string) (*auth.RefreshClaims, error)
}

// PasswordVerifier checks a password against its stored hash.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}

type LogoutAllExecutor interface {
	Execute(ctx context.Context, cmd LogoutAllCommand) error
}
