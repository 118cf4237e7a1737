// Package dto provides data transfer objects for the ticket domain.
package dto

import (
	"time"

	"helpdesk/internal/domain/ticket"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// TicketDTO represents the data transfer object for tickets.
type TicketDTO struct {
	ID          uint    `json:"id"`
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Type        string  `json:"type"`
	ReporterID  uint    `json:"reporter_id"`
	AssigneeID  *uint   `json:"assignee_id,omitempty"`
	DueAt       *string `json:"due_at,omitempty"`
	ResolvedAt  *string `json:"resolved_at,omitempty"`
	ClosedAt    *string `json:"closed_at,omitempty"`
	Watchers    []uint  `json:"watchers,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// HistoryEntryDTO represents a single entry in a ticket's mutation log.
type HistoryEntryDTO struct {
	ID        uint             `json:"id"`
	TicketID  uint             `json:"ticket_id"`
	ActorID   *uint            `json:"actor_id,omitempty"`
	Summary   string           `json:"summary"`
	Changes   ticket.ChangeSet `json:"changes,omitempty"`
	CreatedAt string           `json:"created_at"`
}

// ToTicketDTO converts a domain ticket to DTO. Watchers are NOT
// populated by this function; callers that need them fill the field
// after loading the watcher list.
func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:          t.ID(),
		Key:         t.Key(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Priority:    t.Priority().String(),
		Type:        t.Type().String(),
		ReporterID:  t.ReporterID(),
		AssigneeID:  t.AssigneeID(),
		DueAt:       formatTimePtr(t.DueAt()),
		ResolvedAt:  formatTimePtr(t.ResolvedAt()),
		ClosedAt:    formatTimePtr(t.ClosedAt()),
		CreatedAt:   t.CreatedAt().Format(timeLayout),
		UpdatedAt:   t.UpdatedAt().Format(timeLayout),
	}
}

// ToTicketDTOs converts a slice of domain tickets to DTOs.
func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	dtos := make([]*TicketDTO, len(tickets))
	for i, t := range tickets {
		dtos[i] = ToTicketDTO(t)
	}
	return dtos
}

// ToHistoryEntryDTO converts a domain history entry to DTO.
func ToHistoryEntryDTO(h *ticket.HistoryEntry) *HistoryEntryDTO {
	if h == nil {
		return nil
	}

	return &HistoryEntryDTO{
		ID:        h.ID(),
		TicketID:  h.TicketID(),
		ActorID:   h.ActorID(),
		Summary:   h.Summary(),
		Changes:   h.Changes(),
		CreatedAt: h.CreatedAt().Format(timeLayout),
	}
}

// ToHistoryEntryDTOs converts a slice of history entries to DTOs.
func ToHistoryEntryDTOs(entries []*ticket.HistoryEntry) []*HistoryEntryDTO {
	dtos := make([]*HistoryEntryDTO, len(entries))
	for i, h := range entries {
		dtos[i] = ToHistoryEntryDTO(h)
	}
	return dtos
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}
