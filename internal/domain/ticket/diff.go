package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

// Snapshot captures the audited fields of a ticket at a point in time.
type Snapshot struct {
	Title       string
	Description string
	Status      vo.Status
	Priority    vo.Priority
	Type        vo.Type
	AssigneeID  *uint
	DueAt       *time.Time
	ResolvedAt  *time.Time
	ClosedAt    *time.Time
}

// FieldChange records one field transition in a change set.
type FieldChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// ChangeSet maps field names to their recorded transitions.
type ChangeSet map[string]FieldChange

// Diff compares two snapshots field by field and returns the set of
// changed fields. It returns nil when nothing changed, so callers can
// skip writing a history entry for no-op updates.
func Diff(before, after Snapshot) ChangeSet {
	changes := ChangeSet{}

	compare := func(field string, from, to interface{}) {
		if normalize(from) != normalize(to) {
			changes[field] = FieldChange{From: auditValue(from), To: auditValue(to)}
		}
	}

	compare("title", before.Title, after.Title)
	compare("description", before.Description, after.Description)
	compare("status", before.Status, after.Status)
	compare("priority", before.Priority, after.Priority)
	compare("type", before.Type, after.Type)
	compare("assigneeId", before.AssigneeID, after.AssigneeID)
	compare("dueAt", before.DueAt, after.DueAt)
	compare("resolvedAt", before.ResolvedAt, after.ResolvedAt)
	compare("closedAt", before.ClosedAt, after.ClosedAt)

	if len(changes) == 0 {
		return nil
	}
	return changes
}

// normalize maps a field value to a canonical string so that values of
// different concrete types compare consistently. Nil pointers of any
// type normalize to the same marker.
func normalize(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case *uint:
		if x == nil {
			return "<nil>"
		}
		return fmt.Sprintf("%d", *x)
	case *time.Time:
		if x == nil {
			return "<nil>"
		}
		return x.UTC().Format(time.RFC3339Nano)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// auditValue converts a field value to its JSON representation for
// storage in a history entry. Nil pointers become JSON null, times
// become canonical UTC strings.
func auditValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case *uint:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC().Format(time.RFC3339Nano)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case vo.Status:
		return x.String()
	case vo.Priority:
		return x.String()
	case vo.Type:
		return x.String()
	default:
		return x
	}
}
