package usecases

import (
	"context"

	"helpdesk/internal/domain/token"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
)

type mockUserRepository struct {
	SaveFunc             func(ctx context.Context, u *user.User) error
	UpdateFunc           func(ctx context.Context, u *user.User) error
	GetByIDFunc          func(ctx context.Context, userID uint) (*user.User, error)
	GetByIDsFunc         func(ctx context.Context, userIDs []uint) (map[uint]*user.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*user.User, error)
	ListFunc             func(ctx context.Context, page, pageSize int) ([]*user.User, int64, error)
	ListActiveAdminsFunc func(ctx context.Context) ([]*user.User, error)
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, userIDs []uint) (map[uint]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, userIDs)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListActiveAdmins(ctx context.Context) ([]*user.User, error) {
	if m.ListActiveAdminsFunc != nil {
		return m.ListActiveAdminsFunc(ctx)
	}
	return nil, nil
}

type mockTokenRepository struct {
	SaveFunc             func(ctx context.Context, t *token.RefreshToken) error
	GetByJTIFunc         func(ctx context.Context, jti string) (*token.RefreshToken, error)
	RevokeFunc           func(ctx context.Context, jti string) error
	RevokeAllForUserFunc func(ctx context.Context, userID uint) error
}

func (m *mockTokenRepository) Save(ctx context.Context, t *token.RefreshToken) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTokenRepository) GetByJTI(ctx context.Context, jti string) (*token.RefreshToken, error) {
	if m.GetByJTIFunc != nil {
		return m.GetByJTIFunc(ctx, jti)
	}
	return nil, nil
}

func (m *mockTokenRepository) Revoke(ctx context.Context, jti string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti)
	}
	return nil
}

func (m *mockTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	if m.RevokeAllForUserFunc != nil {
		return m.RevokeAllForUserFunc(ctx, userID)
	}
	return nil
}

type mockTokenIssuer struct {
	GenerateFunc      func(userID uint, role authorization.UserRole, email string) (*auth.TokenPair, error)
	VerifyRefreshFunc func(tokenString string) (*auth.RefreshClaims, error)
}

func (m *mockTokenIssuer) Generate(userID uint, role authorization.UserRole, email string) (*auth.TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, role, email)
	}
	return nil, nil
}

func (m *mockTokenIssuer) VerifyRefresh(tokenString string) (*auth.RefreshClaims, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(tokenString)
	}
	return nil, nil
}

type mockPasswordVerifier struct {
	VerifyFunc func(password, hash string) error
}

func (m *mockPasswordVerifier) Verify(password, hash string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(password, hash)
	}
	return nil
}

// passthroughTxManager runs the function directly without a real
// transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockLogger struct{}

func (mockLogger) Debug(msg string, args ...any)           {}
func (mockLogger) Info(msg string, args ...any)            {}
func (mockLogger) Warn(msg string, args ...any)            {}
func (mockLogger) Error(msg string, args ...any)           {}
func (m mockLogger) With(args ...any) logger.Interface     { return m }
func (mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (mockLogger) Errorw(msg string, keysAndValues ...any) {}
