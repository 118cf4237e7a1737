package mappers

import (
	"helpdesk/internal/domain/token"
	"helpdesk/internal/infrastructure/persistence/models"
)

// TokenMapper handles the conversion between refresh token records and
// persistence models.
type TokenMapper interface {
	ToModel(t *token.RefreshToken) *models.TokenModel
	ToDomain(model *models.TokenModel) *token.RefreshToken
}

type TokenMapperImpl struct{}

func NewTokenMapper() TokenMapper {
	return &TokenMapperImpl{}
}

func (m *TokenMapperImpl) ToModel(t *token.RefreshToken) *models.TokenModel {
	return &models.TokenModel{
		ID:        t.ID(),
		UserID:    t.UserID(),
		JTI:       t.JTI(),
		TokenHash: t.TokenHash(),
		ExpiresAt: t.ExpiresAt(),
		RevokedAt: t.RevokedAt(),
		UserAgent: t.UserAgent(),
		IP:        t.IP(),
		CreatedAt: t.CreatedAt(),
	}
}

func (m *TokenMapperImpl) ToDomain(model *models.TokenModel) *token.RefreshToken {
	return token.ReconstructRefreshToken(
		model.ID,
		model.UserID,
		model.JTI,
		model.TokenHash,
		model.ExpiresAt,
		model.RevokedAt,
		model.UserAgent,
		model.IP,
		model.CreatedAt,
	)
}
