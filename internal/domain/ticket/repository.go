package ticket

import (
	"context"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	// SoftDelete marks the ticket deleted without removing the row.
	SoftDelete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByKey(ctx context.Context, key string) (*Ticket, error)
	List(ctx context.Context, filters TicketFilter) ([]*Ticket, int64, error)
	// CountAll counts every non-deleted ticket, used for key allocation.
	CountAll(ctx context.Context) (int64, error)
	// CountInRange counts non-deleted tickets created within the range.
	CountInRange(ctx context.Context, from, to *time.Time) (int64, error)
	// Recent returns the most recently created non-deleted tickets
	// within the range, newest first.
	Recent(ctx context.Context, from, to *time.Time, limit int) ([]*Ticket, error)
	// ActiveLoads returns one entry per active ticket that has an
	// assignee, for workload balancing.
	ActiveLoads(ctx context.Context) ([]AssigneeLoad, error)
	// CountsByColumn returns grouped counts of non-deleted tickets for
	// reporting. Column must be one of status, priority, type.
	CountsByColumn(ctx context.Context, column string, from, to *time.Time) (map[string]int64, error)
	// CountsByAssignee returns active ticket counts per assignee.
	CountsByAssignee(ctx context.Context, from, to *time.Time) (map[uint]int64, error)
}

// AssigneeLoad is one active assigned ticket in the workload snapshot.
type AssigneeLoad struct {
	AssigneeID uint
	Priority   vo.Priority
}

type TicketFilter struct {
	Scope      authorization.AccessScope
	Status     *vo.Status
	Priority   *vo.Priority
	Type       *vo.Type
	AssigneeID *uint
	ReporterID *uint
	// WatcherID restricts the result to tickets the user watches.
	WatcherID *uint
	Search    string
	Page       int
	PageSize   int
}

type HistoryRepository interface {
	Save(ctx context.Context, entry *HistoryEntry) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*HistoryEntry, error)
}

type WatcherRepository interface {
	// Add registers a watcher. Adding an existing watcher is a no-op.
	Add(ctx context.Context, ticketID, userID uint) error
	Remove(ctx context.Context, ticketID, userID uint) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]uint, error)
	IsWatching(ctx context.Context, ticketID, userID uint) (bool, error)
}
