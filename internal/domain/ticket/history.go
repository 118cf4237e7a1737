package ticket

import (
	"fmt"
	"time"
)

// History entry summaries.
const (
	SummaryCreated = "Ticket created"
	SummaryUpdated = "Ticket updated"
	SummaryDeleted = "Ticket soft-deleted"
)

// HistoryEntry is an immutable audit record of a ticket mutation.
type HistoryEntry struct {
	id        uint
	ticketID  uint
	actorID   *uint
	summary   string
	changes   ChangeSet
	createdAt time.Time
}

func NewHistoryEntry(ticketID uint, actorID *uint, summary string, changes ChangeSet) (*HistoryEntry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(summary) == 0 {
		return nil, fmt.Errorf("summary is required")
	}

	return &HistoryEntry{
		ticketID:  ticketID,
		actorID:   actorID,
		summary:   summary,
		changes:   changes,
		createdAt: time.Now(),
	}, nil
}

func ReconstructHistoryEntry(
	id uint,
	ticketID uint,
	actorID *uint,
	summary string,
	changes ChangeSet,
	createdAt time.Time,
) *HistoryEntry {
	return &HistoryEntry{
		id:        id,
		ticketID:  ticketID,
		actorID:   actorID,
		summary:   summary,
		changes:   changes,
		createdAt: createdAt,
	}
}

func (h *HistoryEntry) ID() uint {
	return h.id
}

func (h *HistoryEntry) TicketID() uint {
	return h.ticketID
}

func (h *HistoryEntry) ActorID() *uint {
	return h.actorID
}

func (h *HistoryEntry) Summary() string {
	return h.summary
}

func (h *HistoryEntry) Changes() ChangeSet {
	return h.changes
}

func (h *HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

func (h *HistoryEntry) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("history entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("history entry ID cannot be zero")
	}
	h.id = id
	return nil
}

// DeletionChanges builds the change set recorded when a ticket is
// soft-deleted.
func DeletionChanges(deletedAt time.Time) ChangeSet {
	return ChangeSet{
		"deletedAt": FieldChange{From: nil, To: deletedAt.UTC().Format(time.RFC3339Nano)},
	}
}
