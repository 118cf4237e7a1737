package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UnwatchTicketCommand struct {
	TicketID uint
	UserID   uint
}

// UnwatchTicketUseCase unsubscribes a user from a ticket. Removing a
// watcher that was never added is a no-op.
type UnwatchTicketUseCase struct {
	watchers ticket.WatcherRepository
	logger   logger.Interface
}

func NewUnwatchTicketUseCase(watchers ticket.WatcherRepository, logger logger.Interface) *UnwatchTicketUseCase {
	return &UnwatchTicketUseCase{
		watchers: watchers,
		logger:   logger,
	}
}

func (uc *UnwatchTicketUseCase) Execute(ctx context.Context, cmd UnwatchTicketCommand) error {
	if cmd.TicketID == 0 || cmd.UserID == 0 {
		return errors.NewValidationError("ticket ID and user ID are required")
	}

	if err := uc.watchers.Remove(ctx, cmd.TicketID, cmd.UserID); err != nil {
		return err
	}

	uc.logger.Debugw("watcher removed", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)
	return nil
}
