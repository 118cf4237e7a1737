package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
)

type WatcherRepository struct {
	db *gorm.DB
}

func NewWatcherRepository(db *gorm.DB) *WatcherRepository {
	return &WatcherRepository{db: db}
}

// Add registers a watcher. Re-adding an existing watcher is a no-op;
// the unique index on (ticket_id, user_id) catches the duplicate.
func (r *WatcherRepository) Add(ctx context.Context, ticketID, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := &models.WatcherModel{TicketID: ticketID, UserID: userID}
	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil
		}
		return fmt.Errorf("failed to add watcher: %w", err)
	}

	return nil
}

func (r *WatcherRepository) Remove(ctx context.Context, ticketID, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		Delete(&models.WatcherModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to remove watcher: %w", result.Error)
	}

	return nil
}

func (r *WatcherRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var userIDs []uint
	if err := tx.Model(&models.WatcherModel{}).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchers: %w", err)
	}

	return userIDs, nil
}

func (r *WatcherRepository) IsWatching(ctx context.Context, ticketID, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.WatcherModel{}).
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check watcher: %w", err)
	}

	return count > 0, nil
}
