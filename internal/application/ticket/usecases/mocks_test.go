package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc             func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc           func(ctx context.Context, t *ticket.Ticket) error
	SoftDeleteFunc       func(ctx context.Context, ticketID uint) error
	GetByIDFunc          func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByKeyFunc         func(ctx context.Context, key string) (*ticket.Ticket, error)
	ListFunc             func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountAllFunc         func(ctx context.Context) (int64, error)
	CountInRangeFunc     func(ctx context.Context, from, to *time.Time) (int64, error)
	RecentFunc           func(ctx context.Context, from, to *time.Time, limit int) ([]*ticket.Ticket, error)
	ActiveLoadsFunc      func(ctx context.Context) ([]ticket.AssigneeLoad, error)
	CountsByColumnFunc   func(ctx context.Context, column string, from, to *time.Time) (map[string]int64, error)
	CountsByAssigneeFunc func(ctx context.Context, from, to *time.Time) (map[uint]int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) SoftDelete(ctx context.Context, ticketID uint) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByKey(ctx context.Context, key string) (*ticket.Ticket, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

func (m *mockTicketRepository) CountInRange(ctx context.Context, from, to *time.Time) (int64, error) {
	if m.CountInRangeFunc != nil {
		return m.CountInRangeFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockTicketRepository) Recent(ctx context.Context, from, to *time.Time, limit int) ([]*ticket.Ticket, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, from, to, limit)
	}
	return nil, nil
}

func (m *mockTicketRepository) ActiveLoads(ctx context.Context) ([]ticket.AssigneeLoad, error) {
	if m.ActiveLoadsFunc != nil {
		return m.ActiveLoadsFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) CountsByColumn(ctx context.Context, column string, from, to *time.Time) (map[string]int64, error) {
	if m.CountsByColumnFunc != nil {
		return m.CountsByColumnFunc(ctx, column, from, to)
	}
	return nil, nil
}

func (m *mockTicketRepository) CountsByAssignee(ctx context.Context, from, to *time.Time) (map[uint]int64, error) {
	if m.CountsByAssigneeFunc != nil {
		return m.CountsByAssigneeFunc(ctx, from, to)
	}
	return nil, nil
}

type mockHistoryRepository struct {
	SaveFunc          func(ctx context.Context, entry *ticket.HistoryEntry) error
	GetByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error)
}

func (m *mockHistoryRepository) Save(ctx context.Context, entry *ticket.HistoryEntry) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, entry)
	}
	return nil
}

func (m *mockHistoryRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockWatcherRepository struct {
	AddFunc            func(ctx context.Context, ticketID, userID uint) error
	RemoveFunc         func(ctx context.Context, ticketID, userID uint) error
	ListByTicketIDFunc func(ctx context.Context, ticketID uint) ([]uint, error)
	IsWatchingFunc     func(ctx context.Context, ticketID, userID uint) (bool, error)
}

func (m *mockWatcherRepository) Add(ctx context.Context, ticketID, userID uint) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, ticketID, userID)
	}
	return nil
}

func (m *mockWatcherRepository) Remove(ctx context.Context, ticketID, userID uint) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, ticketID, userID)
	}
	return nil
}

func (m *mockWatcherRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]uint, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockWatcherRepository) IsWatching(ctx context.Context, ticketID, userID uint) (bool, error) {
	if m.IsWatchingFunc != nil {
		return m.IsWatchingFunc(ctx, ticketID, userID)
	}
	return false, nil
}

type mockTicketCreator struct {
	CreateWithKeyFunc func(ctx context.Context, t *ticket.Ticket, actorID *uint) error
}

func (m *mockTicketCreator) CreateWithKey(ctx context.Context, t *ticket.Ticket, actorID *uint) error {
	if m.CreateWithKeyFunc != nil {
		return m.CreateWithKeyFunc(ctx, t, actorID)
	}
	return nil
}

type mockAssigneePicker struct {
	PickForNewTicketFunc func(ctx context.Context, priority vo.Priority) (*uint, error)
}

func (m *mockAssigneePicker) PickForNewTicket(ctx context.Context, priority vo.Priority) (*uint, error) {
	if m.PickForNewTicketFunc != nil {
		return m.PickForNewTicketFunc(ctx, priority)
	}
	return nil, nil
}

// passthroughTxManager runs the function directly without a real
// transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockLogger struct{}

func (mockLogger) Debug(msg string, args ...any)           {}
func (mockLogger) Info(msg string, args ...any)            {}
func (mockLogger) Warn(msg string, args ...any)            {}
func (mockLogger) Error(msg string, args ...any)           {}
func (m mockLogger) With(args ...any) logger.Interface     { return m }
func (mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (mockLogger) Errorw(msg string, keysAndValues ...any) {}
