package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole authorization.UserRole
}

// DeleteTicketUseCase soft-deletes a ticket. The row and its history
// survive, and the deletion itself is recorded in the mutation log.
type DeleteTicketUseCase struct {
	tickets   ticket.TicketRepository
	history   ticket.HistoryRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewDeleteTicketUseCase(
	tickets ticket.TicketRepository,
	history ticket.HistoryRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		tickets:   tickets,
		history:   history,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	if !t.CanBeViewedBy(cmd.ActorID, cmd.ActorRole.IsAdmin()) {
		return errors.NewNotFoundError("Ticket")
	}

	t.MarkDeleted()

	actorID := cmd.ActorID
	entry, err := ticket.NewHistoryEntry(t.ID(), &actorID, ticket.SummaryDeleted, ticket.DeletionChanges(*t.DeletedAt()))
	if err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.tickets.SoftDelete(txCtx, t.ID()); err != nil {
			return err
		}
		return uc.history.Save(txCtx, entry)
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("ticket soft-deleted",
		"ticket_id", t.ID(),
		"key", t.Key(),
		"actor_id", cmd.ActorID,
	)

	return nil
}
