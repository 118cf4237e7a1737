package usecases

import (
	"context"
	"time"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// UpdateTicketCommand is a partial patch. Nil pointer fields are left
// untouched. Clearing a nullable field is expressed with the Set flag
// plus a nil value, so "absent" and "set to null" stay distinct.
type UpdateTicketCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole authorization.UserRole

	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Type        *string

	SetAssignee bool
	AssigneeID  *uint

	SetDueAt bool
	DueAt    *time.Time
}

// UpdateTicketUseCase applies a patch to a ticket and records the
// resulting field changes in the mutation log. A patch that changes
// nothing succeeds without writing a history entry.
type UpdateTicketUseCase struct {
	tickets   ticket.TicketRepository
	history   ticket.HistoryRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewUpdateTicketUseCase(
	tickets ticket.TicketRepository,
	history ticket.HistoryRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		tickets:   tickets,
		history:   history,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	// Tickets outside the caller's scope read as absent, not forbidden.
	if !t.CanBeViewedBy(cmd.ActorID, cmd.ActorRole.IsAdmin()) {
		return nil, errors.NewNotFoundError("Ticket")
	}

	before := t.Snapshot()

	if err := applyPatch(t, cmd); err != nil {
		return nil, err
	}

	changes := ticket.Diff(before, t.Snapshot())
	if changes == nil {
		return dto.ToTicketDTO(t), nil
	}

	actorID := cmd.ActorID
	entry, err := ticket.NewHistoryEntry(t.ID(), &actorID, ticket.SummaryUpdated, changes)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return err
		}
		return uc.history.Save(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("ticket updated",
		"ticket_id", t.ID(),
		"actor_id", cmd.ActorID,
		"changed_fields", len(changes),
	)

	return dto.ToTicketDTO(t), nil
}

func applyPatch(t *ticket.Ticket, cmd UpdateTicketCommand) error {
	if cmd.Title != nil {
		if err := t.UpdateTitle(*cmd.Title); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		if err := t.UpdateDescription(*cmd.Description); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Status != nil {
		status, err := vo.NewStatus(*cmd.Status)
		if err != nil {
			return errors.NewValidationError("invalid status", err.Error())
		}
		if err := t.ChangeStatus(status); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Priority != nil {
		priority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return errors.NewValidationError("invalid priority", err.Error())
		}
		if err := t.ChangePriority(priority); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Type != nil {
		ticketType, err := vo.NewType(*cmd.Type)
		if err != nil {
			return errors.NewValidationError("invalid type", err.Error())
		}
		if err := t.ChangeType(ticketType); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.SetAssignee {
		if cmd.AssigneeID == nil {
			t.Unassign()
		} else if err := t.AssignTo(*cmd.AssigneeID); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.SetDueAt {
		t.SetDueAt(cmd.DueAt)
	}
	return nil
}
