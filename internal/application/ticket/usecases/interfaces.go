package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
)

// TicketCreator persists a new ticket under a freshly allocated key,
// together with its creation history entry.
type TicketCreator interface {
	CreateWithKey(ctx context.Context, t *ticket.Ticket, actorID *uint) error
}

// AssigneePicker selects an assignee for a new ticket, or none when no
// candidate is available.
type AssigneePicker interface {
	PickForNewTicket(ctx context.Context, priority vo.Priority) (*uint, error)
}

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
