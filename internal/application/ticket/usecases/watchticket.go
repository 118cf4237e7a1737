package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type WatchTicketCommand struct {
	TicketID  uint
	UserID    uint
	ActorRole authorization.UserRole
}

// WatchTicketUseCase subscribes a user to a ticket. Watching a ticket
// twice is a no-op.
type WatchTicketUseCase struct {
	tickets  ticket.TicketRepository
	watchers ticket.WatcherRepository
	logger   logger.Interface
}

func NewWatchTicketUseCase(
	tickets ticket.TicketRepository,
	watchers ticket.WatcherRepository,
	logger logger.Interface,
) *WatchTicketUseCase {
	return &WatchTicketUseCase{
		tickets:  tickets,
		watchers: watchers,
		logger:   logger,
	}
}

func (uc *WatchTicketUseCase) Execute(ctx context.Context, cmd WatchTicketCommand) error {
	if cmd.TicketID == 0 || cmd.UserID == 0 {
		return errors.NewValidationError("ticket ID and user ID are required")
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	if !t.CanBeViewedBy(cmd.UserID, cmd.ActorRole.IsAdmin()) {
		return errors.NewNotFoundError("Ticket")
	}

	if err := uc.watchers.Add(ctx, t.ID(), cmd.UserID); err != nil {
		return err
	}

	uc.logger.Debugw("watcher added", "ticket_id", t.ID(), "user_id", cmd.UserID)
	return nil
}
