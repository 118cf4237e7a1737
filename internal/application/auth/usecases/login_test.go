package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/token"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
)

func activeUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, "person@example.com", "hashed-password", "Some Person", role, true, time.Now(), time.Now(), nil)
	require.NoError(t, err)
	return u
}

func disabledUser(t *testing.T, id uint) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, "person@example.com", "hashed-password", "Some Person", authorization.RoleUser, false, time.Now(), time.Now(), nil)
	require.NoError(t, err)
	return u
}

func testPair(userID uint) *auth.TokenPair {
	return &auth.TokenPair{
		AccessToken:      fmt.Sprintf("access-%d", userID),
		RefreshToken:     fmt.Sprintf("refresh-%d", userID),
		RefreshJTI:       fmt.Sprintf("jti-%d", userID),
		RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		ExpiresIn:        3600,
	}
}

func TestLoginUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login persists refresh token record", func(t *testing.T) {
		var saved *token.RefreshToken

		users := &mockUserRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return activeUser(t, 1, authorization.RoleAdmin), nil
			},
		}
		tokens := &mockTokenRepository{
			SaveFunc: func(ctx context.Context, tok *token.RefreshToken) error {
				saved = tok
				return nil
			},
		}
		issuer := &mockTokenIssuer{
			GenerateFunc: func(userID uint, role authorization.UserRole, email string) (*auth.TokenPair, error) {
				return testPair(userID), nil
			},
		}

		uc := NewLoginUseCase(users, tokens, &mockPasswordVerifier{}, issuer, mockLogger{})
		result, err := uc.Execute(ctx, LoginCommand{
			Email:     "person@example.com",
			Password:  "secret",
			UserAgent: "helpdesk-cli/1.0",
			IP:        "203.0.113.9",
		})

		require.NoError(t, err)
		assert.Equal(t, "access-1", result.AccessToken)
		assert.Equal(t, "refresh-1", result.RefreshToken)
		assert.Equal(t, int64(3600), result.ExpiresIn)
		assert.Equal(t, "ADMIN", result.User.Role)

		require.NotNil(t, saved)
		assert.Equal(t, uint(1), saved.UserID())
		assert.Equal(t, "jti-1", saved.JTI())
		// The raw token must never be stored.
		assert.NotEqual(t, "refresh-1", saved.TokenHash())
		assert.Equal(t, auth.HashToken("refresh-1"), saved.TokenHash())
		// Client metadata travels into the stored record.
		assert.Equal(t, "helpdesk-cli/1.0", saved.UserAgent())
		assert.Equal(t, "203.0.113.9", saved.IP())
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := NewLoginUseCase(&mockUserRepository{}, &mockTokenRepository{}, &mockPasswordVerifier{}, &mockTokenIssuer{}, mockLogger{})

		_, err := uc.Execute(ctx, LoginCommand{Email: "person@example.com"})
		assert.True(t, errors.IsValidationError(err))

		_, err = uc.Execute(ctx, LoginCommand{Password: "secret"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		users := &mockUserRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return nil, errors.NewNotFoundError("User")
			},
		}

		uc := NewLoginUseCase(users, &mockTokenRepository{}, &mockPasswordVerifier{}, &mockTokenIssuer{}, mockLogger{})
		_, err := uc.Execute(ctx, LoginCommand{Email: "ghost@example.com", Password: "secret"})

		authErr := errors.GetAuthError(err)
		require.NotNil(t, authErr)
		assert.Equal(t, errors.ErrorTypeInvalidCredentials, authErr.Type)
	})

	t.Run("disabled account", func(t *testing.T) {
		users := &mockUserRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return disabledUser(t, 2), nil
			},
		}

		uc := NewLoginUseCase(users, &mockTokenRepository{}, &mockPasswordVerifier{}, &mockTokenIssuer{}, mockLogger{})
		_, err := uc.Execute(ctx, LoginCommand{Email: "person@example.com", Password: "secret"})

		authErr := errors.GetAuthError(err)
		require.NotNil(t, authErr)
		assert.Equal(t, errors.ErrorTypeAccountDisabled, authErr.Type)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUserRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return activeUser(t, 1, authorization.RoleUser), nil
			},
		}
		verifier := &mockPasswordVerifier{
			VerifyFunc: func(password, hash string) error {
				return fmt.Errorf("password verification failed")
			},
		}

		uc := NewLoginUseCase(users, &mockTokenRepository{}, verifier, &mockTokenIssuer{}, mockLogger{})
		_, err := uc.Execute(ctx, LoginCommand{Email: "person@example.com", Password: "wrong"})

		authErr := errors.GetAuthError(err)
		require.NotNil(t, authErr)
		assert.Equal(t, errors.ErrorTypeInvalidCredentials, authErr.Type)
	})
}
