package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type ListTicketsQuery struct {
	ActorID   uint
	ActorRole authorization.UserRole

	Status       string
	Priority     string
	Type         string
	ReportedBy   *uint
	AssignedTo   *uint
	WatchingUser *uint
	Search       string

	Page     int
	PageSize int
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// ListTicketsUseCase lists tickets within the caller's scope. Regular
// users only see tickets they reported or are assigned to, and the
// reporter and assignee filters are reserved for admins.
type ListTicketsUseCase struct {
	tickets ticket.TicketRepository
	logger  logger.Interface
}

func NewListTicketsUseCase(tickets ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		tickets: tickets,
		logger:  logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	filter := ticket.TicketFilter{
		Scope:    authorization.ScopeFor(query.ActorRole, query.ActorID),
		Search:   query.Search,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if query.Status != "" {
		status, err := vo.NewStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status", err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority", err.Error())
		}
		filter.Priority = &priority
	}
	if query.Type != "" {
		ticketType, err := vo.NewType(query.Type)
		if err != nil {
			return nil, errors.NewValidationError("invalid type", err.Error())
		}
		filter.Type = &ticketType
	}

	if query.ActorRole.IsAdmin() {
		filter.ReporterID = query.ReportedBy
		filter.AssigneeID = query.AssignedTo
	}
	filter.WatcherID = query.WatchingUser

	tickets, total, err := uc.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  dto.ToTicketDTOs(tickets),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
