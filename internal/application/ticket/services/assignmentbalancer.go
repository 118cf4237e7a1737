package services

import (
	"context"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/logger"
)

// AssignmentBalancer picks the least-loaded active admin for a new
// ticket. Load is the sum of priority weights over the assignee's
// active tickets. The workload snapshot is read outside any lock, so
// two tickets created at the same moment may land on the same admin;
// the drift is bounded by one ticket and self-corrects on the next
// assignment.
type AssignmentBalancer struct {
	users   user.UserRepository
	tickets ticket.TicketRepository
	logger  logger.Interface
}

func NewAssignmentBalancer(
	users user.UserRepository,
	tickets ticket.TicketRepository,
	logger logger.Interface,
) *AssignmentBalancer {
	return &AssignmentBalancer{
		users:   users,
		tickets: tickets,
		logger:  logger,
	}
}

// PickForNewTicket returns the chosen assignee ID, or nil when no
// active admin exists.
func (b *AssignmentBalancer) PickForNewTicket(ctx context.Context, priority vo.Priority) (*uint, error) {
	admins, err := b.users.ListActiveAdmins(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]uint, len(admins))
	for i, admin := range admins {
		candidates[i] = admin.ID()
	}

	loads, err := b.tickets.ActiveLoads(ctx)
	if err != nil {
		return nil, err
	}

	chosen, ok := PickAssignee(candidates, loads, priority)
	if !ok {
		b.logger.Warnw("no active admin available for auto-assignment")
		return nil, nil
	}

	b.logger.Debugw("auto-assignment picked", "assignee_id", chosen, "priority", priority.String())
	return &chosen, nil
}

// PickAssignee chooses the candidate whose projected load, including
// the weight of the ticket being placed, is lowest. Candidates must be
// in deterministic order: the first of any tied group wins. Returns
// false when the candidate pool is empty.
func PickAssignee(candidates []uint, loads []ticket.AssigneeLoad, newPriority vo.Priority) (uint, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	loadByUser := make(map[uint]int, len(candidates))
	for _, l := range loads {
		loadByUser[l.AssigneeID] += l.Priority.Weight()
	}

	newWeight := newPriority.Weight()

	best := candidates[0]
	bestLoad := loadByUser[best] + newWeight
	for _, c := range candidates[1:] {
		if load := loadByUser[c] + newWeight; load < bestLoad {
			best = c
			bestLoad = load
		}
	}

	return best, true
}
