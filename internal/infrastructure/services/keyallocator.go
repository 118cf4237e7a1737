package services

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"helpdesk/internal/domain/ticket"
	db "helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

const (
	// maxKeyAttempts bounds how many candidate keys are tried before
	// giving up. Each attempt runs its own transaction.
	maxKeyAttempts = 50

	keyRetryDelay = 10 * time.Millisecond
)

// ErrTicketKeysExhausted is returned when every candidate key within
// the attempt budget collided with an existing one.
var ErrTicketKeysExhausted = apperrors.NewConflictError("failed to allocate a unique ticket key")

// TicketKeyAllocator persists new tickets under sequential keys.
// The candidate key is count(non-deleted)+1; concurrent creators can
// race to the same candidate, in which case the unique index on the
// key column rejects the insert and the allocator retries with a
// higher sequence number.
type TicketKeyAllocator struct {
	tickets   ticket.TicketRepository
	history   ticket.HistoryRepository
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewTicketKeyAllocator(
	tickets ticket.TicketRepository,
	history ticket.HistoryRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *TicketKeyAllocator {
	return &TicketKeyAllocator{
		tickets:   tickets,
		history:   history,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateWithKey allocates a key for the ticket and persists it along
// with its creation history entry in a single transaction. On a key
// collision the transaction rolls back and a new candidate is tried;
// candidates are strictly increasing across attempts so a collision
// caused by a deleted-then-recounted gap cannot loop forever.
func (a *TicketKeyAllocator) CreateWithKey(ctx context.Context, t *ticket.Ticket, actorID *uint) error {
	var lastSeq int64
	attempt := 0

	backoff := retry.WithMaxRetries(maxKeyAttempts-1, retry.NewConstant(keyRetryDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		return a.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			count, err := a.tickets.CountAll(txCtx)
			if err != nil {
				return err
			}

			seq := count + 1
			if seq <= lastSeq {
				seq = lastSeq + 1
			}
			lastSeq = seq

			if err := t.SetKey(ticket.FormatKey(seq)); err != nil {
				return err
			}

			if err := a.tickets.Save(txCtx, t); err != nil {
				// Only a uniqueness violation on the key column is
				// worth retrying; anything else aborts.
				if apperrors.IsDuplicateErrorOn(err, "tickets", "key") {
					a.logger.Debugw("ticket key collision, retrying",
						"key", t.Key(),
						"attempt", attempt,
					)
					return retry.RetryableError(err)
				}
				return err
			}

			entry, err := ticket.NewHistoryEntry(t.ID(), actorID, ticket.SummaryCreated, nil)
			if err != nil {
				return err
			}

			return a.history.Save(txCtx, entry)
		})
	})

	if err != nil {
		if apperrors.IsDuplicateErrorOn(err, "tickets", "key") {
			a.logger.Warnw("ticket key allocation exhausted",
				"attempts", attempt,
				"last_key", t.Key(),
			)
			return ErrTicketKeysExhausted
		}
		return err
	}

	return nil
}
