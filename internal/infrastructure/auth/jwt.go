package auth

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
)

const refreshTokenType = "refresh"

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	Role  authorization.UserRole `json:"role"`
	Email string                 `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by a refresh token. The JTI
// links the token to its persisted record for rotation and revocation.
type RefreshClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// RefreshJTI identifies the refresh token record.
	RefreshJTI string
	// RefreshExpiresAt is when the refresh token stops being accepted.
	RefreshExpiresAt time.Time
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

// NewJWTService builds the token signer. An empty secret is a
// configuration error and refuses to start rather than signing
// tokens with a guessable key.
func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, errors.NewInternalError("JWT secret is not configured")
	}
	if accessExpMinutes <= 0 {
		accessExpMinutes = 60
	}
	if refreshExpDays <= 0 {
		refreshExpDays = 7
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}, nil
}

// Generate issues a new token pair for the user. Each call mints a
// fresh JTI for the refresh token.
func (s *JWTService) Generate(userID uint, role authorization.UserRole, email string) (*TokenPair, error) {
	now := time.Now().UTC()
	subject := fmt.Sprintf("%d", userID)

	accessExp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)
	accessClaims := &AccessClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	jti := uuid.NewString()
	refreshExp := now.Add(time.Duration(s.refreshExpDays) * 24 * time.Hour)
	refreshClaims := &RefreshClaims{
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshJTI:       jti,
		RefreshExpiresAt: refreshExp,
		ExpiresIn:        int64(s.accessExpMinutes * 60),
	}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (s *JWTService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, s.keyFunc)
	if err != nil {
		return nil, s.verifyError(err, "Access token")
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.NewTokenInvalidError("access token")
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and returns its claims.
// Access tokens are rejected here even though they share the signing
// key, since they carry no "type" claim.
func (s *JWTService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, s.keyFunc)
	if err != nil {
		return nil, s.verifyError(err, "Refresh token")
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, errors.NewTokenInvalidError("refresh token")
	}
	if claims.TokenType != refreshTokenType {
		return nil, errors.NewTokenInvalidError("refresh token")
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, errors.NewTokenInvalidError("refresh token")
	}
	return claims, nil
}

// AccessExpMinutes returns the access token lifetime in minutes.
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}

func (s *JWTService) verifyError(err error, tokenType string) error {
	if stderrors.Is(err, jwt.ErrTokenExpired) {
		return errors.NewTokenExpiredError(tokenType)
	}
	return errors.NewTokenInvalidError(strings.ToLower(tokenType))
}
