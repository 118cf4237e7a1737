package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetHistoryQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole authorization.UserRole
}

// GetHistoryUseCase returns a ticket's mutation log, oldest entry
// first.
type GetHistoryUseCase struct {
	tickets ticket.TicketRepository
	history ticket.HistoryRepository
	logger  logger.Interface
}

func NewGetHistoryUseCase(
	tickets ticket.TicketRepository,
	history ticket.HistoryRepository,
	logger logger.Interface,
) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		tickets: tickets,
		history: history,
		logger:  logger,
	}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, query GetHistoryQuery) ([]*dto.HistoryEntryDTO, error) {
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

	entries, err := uc.history.GetByTicketID(ctx, t.ID())
	if err != nil {
		return nil, err
	}

	return dto.ToHistoryEntryDTOs(entries), nil
}
