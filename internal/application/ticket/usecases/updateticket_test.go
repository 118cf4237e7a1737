package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
)

func storedTicket(t *testing.T, id uint, reporterID uint, assigneeID *uint) *ticket.Ticket {
	t.Helper()
	now := time.Now()
	tk, err := ticket.ReconstructTicket(
		id, ticket.FormatKey(int64(id)), "Stored ticket", "A description",
		vo.StatusOpen, vo.PriorityMedium, vo.TypeTask,
		reporterID, assigneeID, nil, nil, nil, now, now, nil,
	)
	require.NoError(t, err)
	return tk
}

func strPtr(s string) *string { return &s }

func TestUpdateTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	newUseCase := func(tickets *mockTicketRepository, history *mockHistoryRepository) *UpdateTicketUseCase {
		return NewUpdateTicketUseCase(tickets, history, passthroughTxManager{}, mockLogger{})
	}

	t.Run("patch persists and logs the changed fields", func(t *testing.T) {
		var savedEntry *ticket.HistoryEntry
		updateCalled := false

		tickets := &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return storedTicket(t, 1, 7, nil), nil
			},
			UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
				updateCalled = true
				return nil
			},
		}
		history := &mockHistoryRepository{
			SaveFunc: func(ctx context.Context, entry *ticket.HistoryEntry) error {
				savedEntry = entry
				return nil
			},
		}

		result, err := newUseCase(tickets, history).Execute(ctx, UpdateTicketCommand{
			TicketID:  1,
			ActorID:   7,
			ActorRole: authorization.RoleUser,
			Title:     strPtr("Renamed ticket"),
			Status:    strPtr("IN_PROGRESS"),
		})

		require.NoError(t, err)
		assert.True(t, updateCalled)
		assert.Equal(t, "Renamed ticket", result.Title)
		assert.Equal(t, "IN_PROGRESS", result.Status)

		require.NotNil(t, savedEntry)
		assert.Equal(t, ticket.SummaryUpdated, savedEntry.Summary())
		require.NotNil(t, savedEntry.ActorID())
		assert.Equal(t, uint(7), *savedEntry.ActorID())
		assert.Contains(t, savedEntry.Changes(), "title")
		assert.Contains(t, savedEntry.Changes(), "status")
		assert.NotContains(t, savedEntry.Changes(), "description")
	})

	t.Run("no-op patch writes no history", func(t *testing.T) {
		updateCalled := false
		historySaved := false

		tickets := &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return storedTicket(t, 1, 7, nil), nil
			},
			UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
				updateCalled = true
				return nil
			},
		}
		history := &mockHistoryRepository{
			SaveFunc: func(ctx context.Context, entry *ticket.HistoryEntry) error {
				historySaved = true
				return nil
			},
		}

		result, err := newUseCase(tickets, history).Execute(ctx, UpdateTicketCommand{
			TicketID:  1,
			ActorID:   7,
			ActorRole: authorization.RoleUser,
			Title:     strPtr("Stored ticket"),
		})

		require.NoError(t, err)
		assert.False(t, updateCalled)
		assert.False(t, historySaved)
		assert.Equal(t, "Stored ticket", result.Title)
	})

	t.Run("clearing the assignee is a recorded change", func(t *testing.T) {
		var savedEntry *ticket.HistoryEntry
		assignee := uint(3)

		tickets := &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return storedTicket(t, 1, 7, &assignee), nil
			},
		}
		history := &mockHistoryRepository{
			SaveFunc: func(ctx context.Context, entry *ticket.HistoryEntry) error {
				savedEntry = entry
				return nil
			},
		}

		result, err := newUseCase(tickets, history).Execute(ctx, UpdateTicketCommand{
			TicketID:    1,
			ActorID:     3,
			ActorRole:   authorization.RoleUser,
			SetAssignee: true,
			AssigneeID:  nil,
		})

		require.NoError(t, err)
		assert.Nil(t, result.AssigneeID)
		require.NotNil(t, savedEntry)
		assert.Contains(t, savedEntry.Changes(), "assigneeId")
	})

	t.Run("resolving stamps resolvedAt and records it", func(t *testing.T) {
		var savedEntry *ticket.HistoryEntry

		tickets := &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return storedTicket(t, 1, 7, nil), nil
			},
		}
		history := &mockHistoryRepository{
			SaveFunc: func(ctx context.Context, entry *ticket.HistoryEntry) error {
				savedEntry = entry
				return nil
			},
		}

		result, err := newUseCase(tickets, history).Execute(ctx, UpdateTicketCommand{
			TicketID:  1,
			ActorID:   7,
			ActorRole: authorization.RoleAdmin,
			Status:    strPtr("RESOLVED"),
		})

		require.NoError(t, err)
		assert.NotNil(t, result.ResolvedAt)
		require.NotNil(t, savedEntry)
		assert.Contains(t, savedEntry.Changes(), "resolvedAt")
	})

	t.Run("ticket outside scope reads as not found", func(t *testing.T) {
		tickets := &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return storedTicket(t, 1, 7, nil), nil
			},
		}

		_, err := newUseCase(tickets, &mockHistoryRepository{}).Execute(ctx, UpdateTicketCommand{
			TicketID:  1,
			ActorID:   99,
			ActorRole: authorization.RoleUser,
			Title:     strPtr("Hijacked"),
		})

		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("invalid enum value", func(t *testing.T) {
		tickets := &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return storedTicket(t, 1, 7, nil), nil
			},
		}

		_, err := newUseCase(tickets, &mockHistoryRepository{}).Execute(ctx, UpdateTicketCommand{
			TicketID:  1,
			ActorID:   7,
			ActorRole: authorization.RoleUser,
			Status:    strPtr("DONE"),
		})

		assert.True(t, errors.IsValidationError(err))
	})
}
