package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole authorization.UserRole
}

type GetTicketUseCase struct {
	tickets  ticket.TicketRepository
	watchers ticket.WatcherRepository
	logger   logger.Interface
}

func NewGetTicketUseCase(
	tickets ticket.TicketRepository,
	watchers ticket.WatcherRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		tickets:  tickets,
		watchers: watchers,
		logger:   logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.tickets.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	if !t.CanBeViewedBy(query.ActorID, query.ActorRole.IsAdmin()) {
		return nil, errors.NewNotFoundError("Ticket")
	}

	watcherIDs, err := uc.watchers.ListByTicketID(ctx, t.ID())
	if err != nil {
		return nil, err
	}

	result := dto.ToTicketDTO(t)
	result.Watchers = watcherIDs
	return result, nil
}
