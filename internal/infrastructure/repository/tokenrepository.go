package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/domain/token"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
)

type TokenRepository struct {
	db     *gorm.DB
	mapper mappers.TokenMapper
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{
		db:     db,
		mapper: mappers.NewTokenMapper(),
	}
}

func (r *TokenRepository) Save(ctx context.Context, t *token.RefreshToken) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TokenRepository) GetByJTI(ctx context.Context, jti string) (*token.RefreshToken, error) {
	var model models.TokenModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("jti = ?", jti).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Token")
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

// Revoke marks a token revoked. Idempotent: already revoked or unknown
// tokens are left alone without error.
func (r *TokenRepository) Revoke(ctx context.Context, jti string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.TokenModel{}).
		Where("jti = ?", jti).
		Where("revoked_at IS NULL").
		Update("revoked_at", time.Now())

	if result.Error != nil {
		return fmt.Errorf("failed to revoke token: %w", result.Error)
	}

	return nil
}

func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.TokenModel{}).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Update("revoked_at", time.Now())

	if result.Error != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", result.Error)
	}

	return nil
}
