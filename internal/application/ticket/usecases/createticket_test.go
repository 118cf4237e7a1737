package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/errors"
)

// fakeCreateWithKey stamps an ID and a key the way the real allocator
// would after persisting.
func fakeCreateWithKey(id uint, key string) func(ctx context.Context, t *ticket.Ticket, actorID *uint) error {
	return func(ctx context.Context, t *ticket.Ticket, actorID *uint) error {
		if err := t.SetKey(key); err != nil {
			return err
		}
		return t.SetID(id)
	}
}

func TestCreateTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and auto-assignment", func(t *testing.T) {
		var pickedPriority vo.Priority
		picked := uint(3)

		creator := &mockTicketCreator{CreateWithKeyFunc: fakeCreateWithKey(1, "TCK-1")}
		picker := &mockAssigneePicker{
			PickForNewTicketFunc: func(ctx context.Context, priority vo.Priority) (*uint, error) {
				pickedPriority = priority
				return &picked, nil
			},
		}

		uc := NewCreateTicketUseCase(creator, picker, &mockWatcherRepository{}, mockLogger{})
		result, err := uc.Execute(ctx, CreateTicketCommand{
			Title:      "Printer on fire",
			ReporterID: 7,
		})

		require.NoError(t, err)
		assert.Equal(t, "TCK-1", result.Key)
		assert.Equal(t, "OPEN", result.Status)
		assert.Equal(t, "MEDIUM", result.Priority)
		assert.Equal(t, "TASK", result.Type)
		assert.Equal(t, vo.PriorityMedium, pickedPriority)
		require.NotNil(t, result.AssigneeID)
		assert.Equal(t, uint(3), *result.AssigneeID)
	})

	t.Run("explicit assignee skips the balancer", func(t *testing.T) {
		pickerCalled := false
		assignee := uint(9)

		creator := &mockTicketCreator{CreateWithKeyFunc: fakeCreateWithKey(1, "TCK-1")}
		picker := &mockAssigneePicker{
			PickForNewTicketFunc: func(ctx context.Context, priority vo.Priority) (*uint, error) {
				pickerCalled = true
				return nil, nil
			},
		}

		uc := NewCreateTicketUseCase(creator, picker, &mockWatcherRepository{}, mockLogger{})
		result, err := uc.Execute(ctx, CreateTicketCommand{
			Title:      "VPN drops hourly",
			Priority:   "HIGH",
			Type:       "INCIDENT",
			ReporterID: 7,
			AssigneeID: &assignee,
		})

		require.NoError(t, err)
		assert.False(t, pickerCalled)
		require.NotNil(t, result.AssigneeID)
		assert.Equal(t, uint(9), *result.AssigneeID)
		assert.Equal(t, "HIGH", result.Priority)
		assert.Equal(t, "INCIDENT", result.Type)
	})

	t.Run("no candidate leaves the ticket unassigned", func(t *testing.T) {
		creator := &mockTicketCreator{CreateWithKeyFunc: fakeCreateWithKey(1, "TCK-1")}
		picker := &mockAssigneePicker{
			PickForNewTicketFunc: func(ctx context.Context, priority vo.Priority) (*uint, error) {
				return nil, nil
			},
		}

		uc := NewCreateTicketUseCase(creator, picker, &mockWatcherRepository{}, mockLogger{})
		result, err := uc.Execute(ctx, CreateTicketCommand{
			Title:      "Orphaned ticket",
			ReporterID: 7,
		})

		require.NoError(t, err)
		assert.Nil(t, result.AssigneeID)
	})

	t.Run("watchers registered after creation", func(t *testing.T) {
		var added []uint

		creator := &mockTicketCreator{CreateWithKeyFunc: fakeCreateWithKey(5, "TCK-5")}
		watchers := &mockWatcherRepository{
			AddFunc: func(ctx context.Context, ticketID, userID uint) error {
				assert.Equal(t, uint(5), ticketID)
				added = append(added, userID)
				return nil
			},
		}

		uc := NewCreateTicketUseCase(creator, &mockAssigneePicker{}, watchers, mockLogger{})
		result, err := uc.Execute(ctx, CreateTicketCommand{
			Title:      "Watched ticket",
			ReporterID: 7,
			Watchers:   []uint{2, 4},
		})

		require.NoError(t, err)
		assert.Equal(t, []uint{2, 4}, added)
		assert.Equal(t, []uint{2, 4}, result.Watchers)
	})

	t.Run("validation failures", func(t *testing.T) {
		uc := NewCreateTicketUseCase(&mockTicketCreator{}, &mockAssigneePicker{}, &mockWatcherRepository{}, mockLogger{})

		tests := []struct {
			name string
			cmd  CreateTicketCommand
		}{
			{"missing reporter", CreateTicketCommand{Title: "x"}},
			{"missing title", CreateTicketCommand{ReporterID: 7}},
			{"bad priority", CreateTicketCommand{Title: "x", ReporterID: 7, Priority: "URGENT"}},
			{"bad type", CreateTicketCommand{Title: "x", ReporterID: 7, Type: "CHORE"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(ctx, tt.cmd)
				assert.True(t, errors.IsValidationError(err))
			})
		}
	})

	t.Run("allocator exhaustion surfaces as conflict", func(t *testing.T) {
		creator := &mockTicketCreator{
			CreateWithKeyFunc: func(ctx context.Context, tk *ticket.Ticket, actorID *uint) error {
				return errors.NewConflictError("failed to allocate a unique ticket key")
			},
		}

		uc := NewCreateTicketUseCase(creator, &mockAssigneePicker{}, &mockWatcherRepository{}, mockLogger{})
		_, err := uc.Execute(ctx, CreateTicketCommand{Title: "x", ReporterID: 7})

		assert.True(t, errors.IsConflictError(err))
	})
}
