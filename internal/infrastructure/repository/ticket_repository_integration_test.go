package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/token"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/authorization"
	apperrors "helpdesk/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.TicketModel{},
		&models.TicketHistoryModel{},
		&models.WatcherModel{},
		&models.UserModel{},
		&models.TokenModel{},
	)
	require.NoError(t, err)

	return gdb
}

func createTestTicket(t *testing.T, key, title string, priority vo.Priority, reporterID uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(title, "test description", vo.TypeTask, priority, reporterID)
	require.NoError(t, err)
	require.NoError(t, tk.SetKey(key))
	return tk
}

func TestTicketRepository_SaveAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	t.Run("save and find by id", func(t *testing.T) {
		tk := createTestTicket(t, "TCK-1", "First ticket", vo.PriorityHigh, 1)
		require.NoError(t, repo.Save(ctx, tk))
		assert.NotZero(t, tk.ID())

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, "TCK-1", found.Key())
		assert.Equal(t, "First ticket", found.Title())
		assert.Equal(t, vo.StatusOpen, found.Status())
	})

	t.Run("find by key", func(t *testing.T) {
		found, err := repo.GetByKey(ctx, "TCK-1")
		require.NoError(t, err)
		assert.Equal(t, "First ticket", found.Title())
	})

	t.Run("missing ticket yields not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("duplicate key should fail", func(t *testing.T) {
		dup := createTestTicket(t, "TCK-1", "Duplicate", vo.PriorityLow, 2)
		err := repo.Save(ctx, dup)
		require.Error(t, err)
		assert.True(t, apperrors.IsDuplicateErrorOn(err, "tickets", "key"))
	})
}

func TestTicketRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk := createTestTicket(t, "TCK-1", "Original", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, tk))
	require.NoError(t, tk.AssignTo(5))
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))

	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, found.AssigneeID())
	assert.Equal(t, uint(5), *found.AssigneeID())
	assert.Equal(t, vo.StatusInProgress, found.Status())

	// Clearing the assignee must persist as NULL.
	found.Unassign()
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, again.AssigneeID())
}

func TestTicketRepository_SoftDelete(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk := createTestTicket(t, "TCK-1", "Doomed", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, tk))

	require.NoError(t, repo.SoftDelete(ctx, tk.ID()))

	_, err := repo.GetByID(ctx, tk.ID())
	assert.True(t, apperrors.IsNotFoundError(err))

	// Row survives for audit purposes.
	var raw models.TicketModel
	require.NoError(t, gdb.Unscoped().First(&raw, tk.ID()).Error)
	assert.True(t, raw.DeletedAt.Valid)

	// Deleting again reports not found.
	err = repo.SoftDelete(ctx, tk.ID())
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketRepository_CountAllExcludesDeleted(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	first := createTestTicket(t, "TCK-1", "one", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, first))
	second := createTestTicket(t, "TCK-2", "two", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, second))

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.SoftDelete(ctx, first.ID()))

	count, err = repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTicketRepository_ListScoping(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	mine := createTestTicket(t, "TCK-1", "mine", vo.PriorityLow, 10)
	require.NoError(t, repo.Save(ctx, mine))

	assigned := createTestTicket(t, "TCK-2", "assigned to me", vo.PriorityLow, 20)
	require.NoError(t, assigned.AssignTo(10))
	require.NoError(t, repo.Save(ctx, assigned))

	other := createTestTicket(t, "TCK-3", "someone else's", vo.PriorityLow, 20)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("own scope sees reported and assigned", func(t *testing.T) {
		results, total, err := repo.List(ctx, ticket.TicketFilter{
			Scope: authorization.ScopeOwn(10),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, results, 2)
	})

	t.Run("all scope sees everything", func(t *testing.T) {
		_, total, err := repo.List(ctx, ticket.TicketFilter{
			Scope: authorization.ScopeAll(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("status filter", func(t *testing.T) {
		status := vo.StatusOpen
		_, total, err := repo.List(ctx, ticket.TicketFilter{
			Scope:  authorization.ScopeAll(),
			Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("search matches title", func(t *testing.T) {
		_, total, err := repo.List(ctx, ticket.TicketFilter{
			Scope:  authorization.ScopeAll(),
			Search: "assigned",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination", func(t *testing.T) {
		results, total, err := repo.List(ctx, ticket.TicketFilter{
			Scope:    authorization.ScopeAll(),
			Page:     2,
			PageSize: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, results, 1)
	})
}

func TestTicketRepository_ActiveLoads(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	open := createTestTicket(t, "TCK-1", "open", vo.PriorityHigh, 1)
	require.NoError(t, open.AssignTo(2))
	require.NoError(t, repo.Save(ctx, open))

	closed := createTestTicket(t, "TCK-2", "closed", vo.PriorityCritical, 1)
	require.NoError(t, closed.AssignTo(2))
	require.NoError(t, closed.ChangeStatus(vo.StatusClosed))
	require.NoError(t, repo.Save(ctx, closed))

	unassigned := createTestTicket(t, "TCK-3", "unassigned", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, unassigned))

	loads, err := repo.ActiveLoads(ctx)
	require.NoError(t, err)
	require.Len(t, loads, 1)
	assert.Equal(t, uint(2), loads[0].AssigneeID)
	assert.Equal(t, vo.PriorityHigh, loads[0].Priority)
}

func TestTicketRepository_CountsByColumn(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	a := createTestTicket(t, "TCK-1", "a", vo.PriorityHigh, 1)
	require.NoError(t, repo.Save(ctx, a))
	b := createTestTicket(t, "TCK-2", "b", vo.PriorityHigh, 1)
	require.NoError(t, repo.Save(ctx, b))
	c := createTestTicket(t, "TCK-3", "c", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, c))

	counts, err := repo.CountsByColumn(ctx, "priority", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["HIGH"])
	assert.Equal(t, int64(1), counts["LOW"])

	_, err = repo.CountsByColumn(ctx, "title; DROP TABLE tickets", nil, nil)
	assert.Error(t, err)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	counts, err = repo.CountsByColumn(ctx, "status", &past, &future)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts["OPEN"])
}

func TestWatcherRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewWatcherRepository(gdb)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1, 10))
	require.NoError(t, repo.Add(ctx, 1, 20))

	// Re-adding is a no-op.
	require.NoError(t, repo.Add(ctx, 1, 10))

	watchers, err := repo.ListByTicketID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{10, 20}, watchers)

	watching, err := repo.IsWatching(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, watching)

	require.NoError(t, repo.Remove(ctx, 1, 10))
	watching, err = repo.IsWatching(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, watching)

	// Removing a non-watcher is a no-op.
	require.NoError(t, repo.Remove(ctx, 1, 99))
}

func newStoredToken(t *testing.T, repo *TokenRepository, ctx context.Context, userID uint, jti string) *token.RefreshToken {
	t.Helper()
	tok, err := token.NewRefreshToken(userID, jti, "hash-"+jti, time.Now().Add(time.Hour), "agent-"+jti, "192.0.2.10")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tok))
	return tok
}

func TestTokenRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTokenRepository(gdb)
	ctx := context.Background()

	t.Run("save and revoke", func(t *testing.T) {
		tok := newStoredToken(t, repo, ctx, 1, "jti-1")
		require.False(t, tok.IsRevoked())

		require.NoError(t, repo.Revoke(ctx, "jti-1"))

		found, err := repo.GetByJTI(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, found.IsRevoked())
		assert.Equal(t, "agent-jti-1", found.UserAgent())
		assert.Equal(t, "192.0.2.10", found.IP())
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "jti-1"))
		require.NoError(t, repo.Revoke(ctx, "never-existed"))
	})

	t.Run("revoke all for user", func(t *testing.T) {
		newStoredToken(t, repo, ctx, 2, "jti-2a")
		newStoredToken(t, repo, ctx, 2, "jti-2b")
		newStoredToken(t, repo, ctx, 3, "jti-3")

		require.NoError(t, repo.RevokeAllForUser(ctx, 2))

		for _, jti := range []string{"jti-2a", "jti-2b"} {
			found, err := repo.GetByJTI(ctx, jti)
			require.NoError(t, err)
			assert.True(t, found.IsRevoked(), jti)
		}

		spared, err := repo.GetByJTI(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, spared.IsRevoked())
	})
}
