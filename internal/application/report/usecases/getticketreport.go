package usecases

import (
	"context"
	"sort"
	"time"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

const recentTicketLimit = 10

type GetTicketReportQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type RecentTicket struct {
	ID           uint    `json:"id"`
	Key          string  `json:"key"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	Type         string  `json:"type"`
	ReporterID   uint    `json:"reporter_id"`
	AssigneeID   *uint   `json:"assignee_id,omitempty"`
	ReporterName *string `json:"reporter_name"`
	AssigneeName *string `json:"assignee_name"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type DateRange struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type TicketReport struct {
	TotalTickets  int64          `json:"total_tickets"`
	ByStatus      []GroupCount   `json:"by_status"`
	ByPriority    []GroupCount   `json:"by_priority"`
	ByType        []GroupCount   `json:"by_type"`
	RecentTickets []RecentTicket `json:"recent_tickets"`
	DateRange     DateRange      `json:"date_range"`
}

// GetTicketReportUseCase builds an aggregate ticket report: totals,
// counts grouped by status, priority, and type, and the most recent
// tickets, optionally restricted to a creation date range. The range
// is echoed back for the UI.
type GetTicketReportUseCase struct {
	tickets ticket.TicketRepository
	users   user.UserRepository
	logger  logger.Interface
}

func NewGetTicketReportUseCase(
	tickets ticket.TicketRepository,
	users user.UserRepository,
	logger logger.Interface,
) *GetTicketReportUseCase {
	return &GetTicketReportUseCase{
		tickets: tickets,
		users:   users,
		logger:  logger,
	}
}

func (uc *GetTicketReportUseCase) Execute(ctx context.Context, query GetTicketReportQuery) (*TicketReport, error) {
	if query.StartDate != nil && query.EndDate != nil && query.EndDate.Before(*query.StartDate) {
		return nil, errors.NewValidationError("end date is before start date")
	}

	from, to := query.StartDate, query.EndDate

	total, err := uc.tickets.CountInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byStatus, err := uc.groupCounts(ctx, "status", from, to)
	if err != nil {
		return nil, err
	}
	byPriority, err := uc.groupCounts(ctx, "priority", from, to)
	if err != nil {
		return nil, err
	}
	byType, err := uc.groupCounts(ctx, "type", from, to)
	if err != nil {
		return nil, err
	}

	recent, err := uc.recentTickets(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &TicketReport{
		TotalTickets:  total,
		ByStatus:      byStatus,
		ByPriority:    byPriority,
		ByType:        byType,
		RecentTickets: recent,
		DateRange:     DateRange{StartDate: from, EndDate: to},
	}, nil
}

func (uc *GetTicketReportUseCase) groupCounts(ctx context.Context, column string, from, to *time.Time) ([]GroupCount, error) {
	counts, err := uc.tickets.CountsByColumn(ctx, column, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]GroupCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, GroupCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (uc *GetTicketReportUseCase) recentTickets(ctx context.Context, from, to *time.Time) ([]RecentTicket, error) {
	tickets, err := uc.tickets.Recent(ctx, from, to, recentTicketLimit)
	if err != nil {
		return nil, err
	}

	names, err := uc.displayNames(ctx, tickets)
	if err != nil {
		return nil, err
	}

	const layout = "2006-01-02T15:04:05Z07:00"
	out := make([]RecentTicket, len(tickets))
	for i, t := range tickets {
		rt := RecentTicket{
			ID:           t.ID(),
			Key:          t.Key(),
			Title:        t.Title(),
			Status:       t.Status().String(),
			Priority:     t.Priority().String(),
			Type:         t.Type().String(),
			ReporterID:   t.ReporterID(),
			AssigneeID:   t.AssigneeID(),
			ReporterName: names[t.ReporterID()],
			CreatedAt:    t.CreatedAt().Format(layout),
			UpdatedAt:    t.UpdatedAt().Format(layout),
		}
		if t.AssigneeID() != nil {
			rt.AssigneeName = names[*t.AssigneeID()]
		}
		out[i] = rt
	}
	return out, nil
}

func (uc *GetTicketReportUseCase) displayNames(ctx context.Context, tickets []*ticket.Ticket) (map[uint]*string, error) {
	idSet := make(map[uint]bool)
	for _, t := range tickets {
		idSet[t.ReporterID()] = true
		if t.AssigneeID() != nil {
			idSet[*t.AssigneeID()] = true
		}
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]*string, len(users))
	for id, u := range users {
		name := u.DisplayName()
		names[id] = &name
	}
	return names, nil
}
