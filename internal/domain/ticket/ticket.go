package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

type Ticket struct {
	id          uint
	key         string
	title       string
	description string
	status      vo.Status
	priority    vo.Priority
	ticketType  vo.Type
	reporterID  uint
	assigneeID  *uint
	dueAt       *time.Time
	resolvedAt  *time.Time
	closedAt    *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

func NewTicket(
	title string,
	description string,
	ticketType vo.Type,
	priority vo.Priority,
	reporterID uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if reporterID == 0 {
		return nil, fmt.Errorf("reporter ID is required")
	}

	now := time.Now()

	return &Ticket{
		title:       title,
		description: description,
		status:      vo.StatusOpen,
		priority:    priority,
		ticketType:  ticketType,
		reporterID:  reporterID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	key string,
	title string,
	description string,
	status vo.Status,
	priority vo.Priority,
	ticketType vo.Type,
	reporterID uint,
	assigneeID *uint,
	dueAt *time.Time,
	resolvedAt *time.Time,
	closedAt *time.Time,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("ticket key is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}

	return &Ticket{
		id:          id,
		key:         key,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		ticketType:  ticketType,
		reporterID:  reporterID,
		assigneeID:  assigneeID,
		dueAt:       dueAt,
		resolvedAt:  resolvedAt,
		closedAt:    closedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		deletedAt:   deletedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Key() string {
	return t.key
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.Status {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Type() vo.Type {
	return t.ticketType
}

func (t *Ticket) ReporterID() uint {
	return t.reporterID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) DueAt() *time.Time {
	return t.dueAt
}

func (t *Ticket) ResolvedAt() *time.Time {
	return t.resolvedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) DeletedAt() *time.Time {
	return t.deletedAt
}

func (t *Ticket) IsDeleted() bool {
	return t.deletedAt != nil
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetKey assigns the ticket key. The key may be replaced while the
// ticket is unsaved, so key allocation can retry with a new candidate,
// but never after the ticket has been persisted.
func (t *Ticket) SetKey(key string) error {
	if t.id != 0 && len(t.key) > 0 {
		return fmt.Errorf("ticket key is already set")
	}
	if !IsValidKey(key) {
		return fmt.Errorf("invalid ticket key: %s", key)
	}
	t.key = key
	return nil
}

func (t *Ticket) UpdateTitle(title string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	t.title = title
	t.touch()
	return nil
}

func (t *Ticket) UpdateDescription(description string) error {
	if len(description) > 5000 {
		return fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	t.description = description
	t.touch()
	return nil
}

// ChangeStatus moves the ticket to a new status. Resolving stamps
// resolvedAt, closing stamps closedAt, and reopening clears both.
func (t *Ticket) ChangeStatus(newStatus vo.Status) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	t.status = newStatus
	t.touch()

	now := time.Now()
	switch {
	case newStatus.IsResolved():
		if t.resolvedAt == nil {
			t.resolvedAt = &now
		}
	case newStatus.IsClosed():
		if t.closedAt == nil {
			t.closedAt = &now
		}
	case newStatus.IsReopened():
		t.resolvedAt = nil
		t.closedAt = nil
	}

	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}
	t.priority = newPriority
	t.touch()
	return nil
}

func (t *Ticket) ChangeType(newType vo.Type) error {
	if !newType.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", newType)
	}
	t.ticketType = newType
	t.touch()
	return nil
}

func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	t.assigneeID = &assigneeID
	t.touch()
	return nil
}

func (t *Ticket) Unassign() {
	t.assigneeID = nil
	t.touch()
}

func (t *Ticket) SetDueAt(dueAt *time.Time) {
	t.dueAt = dueAt
	t.touch()
}

// MarkDeleted performs a soft delete. Deleting an already deleted
// ticket is a no-op.
func (t *Ticket) MarkDeleted() {
	if t.deletedAt != nil {
		return
	}
	now := time.Now()
	t.deletedAt = &now
	t.touch()
}

func (t *Ticket) CanBeViewedBy(userID uint, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if t.reporterID == userID {
		return true
	}
	if t.assigneeID != nil && *t.assigneeID == userID {
		return true
	}
	return false
}

// Snapshot captures the audited fields of the ticket for change tracking.
func (t *Ticket) Snapshot() Snapshot {
	return Snapshot{
		Title:       t.title,
		Description: t.description,
		Status:      t.status,
		Priority:    t.priority,
		Type:        t.ticketType,
		AssigneeID:  t.assigneeID,
		DueAt:       t.dueAt,
		ResolvedAt:  t.resolvedAt,
		ClosedAt:    t.closedAt,
	}
}

func (t *Ticket) touch() {
	t.updatedAt = time.Now()
}
