package usecases

import (
	"context"
	"time"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Priority    string
	Type        string
	ReporterID  uint
	AssigneeID  *uint
	Watchers    []uint
	DueAt       *time.Time
}

// CreateTicketUseCase creates a ticket. When no assignee is given, the
// balancer picks the least loaded active admin; the ticket stays
// unassigned only when there is no candidate at all.
type CreateTicketUseCase struct {
	creator  TicketCreator
	picker   AssigneePicker
	watchers ticket.WatcherRepository
	logger   logger.Interface
}

func NewCreateTicketUseCase(
	creator TicketCreator,
	picker AssigneePicker,
	watchers ticket.WatcherRepository,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		creator:  creator,
		picker:   picker,
		watchers: watchers,
		logger:   logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	if cmd.ReporterID == 0 {
		return nil, errors.NewValidationError("reporter is required")
	}

	priority := vo.PriorityMedium
	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority", err.Error())
		}
		priority = p
	}

	ticketType := vo.TypeTask
	if cmd.Type != "" {
		tt, err := vo.NewType(cmd.Type)
		if err != nil {
			return nil, errors.NewValidationError("invalid type", err.Error())
		}
		ticketType = tt
	}

	t, err := ticket.NewTicket(cmd.Title, cmd.Description, ticketType, priority, cmd.ReporterID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.DueAt != nil {
		t.SetDueAt(cmd.DueAt)
	}

	assigneeID := cmd.AssigneeID
	if assigneeID == nil {
		assigneeID, err = uc.picker.PickForNewTicket(ctx, priority)
		if err != nil {
			return nil, err
		}
	}
	if assigneeID != nil {
		if err := t.AssignTo(*assigneeID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	actorID := cmd.ReporterID
	if err := uc.creator.CreateWithKey(ctx, t, &actorID); err != nil {
		return nil, err
	}

	for _, watcherID := range cmd.Watchers {
		if err := uc.watchers.Add(ctx, t.ID(), watcherID); err != nil {
			return nil, err
		}
	}

	uc.logger.Infow("ticket created",
		"ticket_id", t.ID(),
		"key", t.Key(),
		"reporter_id", t.ReporterID(),
		"assignee_id", t.AssigneeID(),
	)

	result := dto.ToTicketDTO(t)
	result.Watchers = cmd.Watchers
	return result, nil
}
