package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
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
