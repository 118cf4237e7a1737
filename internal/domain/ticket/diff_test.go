package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func baseSnapshot() Snapshot {
	return Snapshot{
		Title:       "Printer offline",
		Description: "Third floor printer does not respond",
		Status:      vo.StatusOpen,
		Priority:    vo.PriorityMedium,
		Type:        vo.TypeIncident,
	}
}

func TestDiff_NoChanges(t *testing.T) {
	before := baseSnapshot()
	after := baseSnapshot()

	assert.Nil(t, Diff(before, after))
}

func TestDiff_IdenticalSnapshotIsNil(t *testing.T) {
	now := time.Now()
	assignee := uint(3)

	before := baseSnapshot()
	before.AssigneeID = &assignee
	before.DueAt = &now

	after := baseSnapshot()
	afterAssignee := uint(3)
	afterDue := now
	after.AssigneeID = &afterAssignee
	after.DueAt = &afterDue

	// Distinct pointers to equal values must not register as changes.
	assert.Nil(t, Diff(before, after))
}

func TestDiff_ScalarFieldChanges(t *testing.T) {
	before := baseSnapshot()
	after := baseSnapshot()
	after.Title = "Printer offline again"
	after.Status = vo.StatusInProgress
	after.Priority = vo.PriorityHigh

	changes := Diff(before, after)
	require.NotNil(t, changes)
	assert.Len(t, changes, 3)

	assert.Equal(t, FieldChange{From: "Printer offline", To: "Printer offline again"}, changes["title"])
	assert.Equal(t, FieldChange{From: "OPEN", To: "IN_PROGRESS"}, changes["status"])
	assert.Equal(t, FieldChange{From: "MEDIUM", To: "HIGH"}, changes["priority"])
}

func TestDiff_AssigneeTransitions(t *testing.T) {
	seven := uint(7)
	nine := uint(9)

	tests := []struct {
		name   string
		before *uint
		after  *uint
		want   *FieldChange
	}{
		{name: "assigned from nil", before: nil, after: &seven, want: &FieldChange{From: nil, To: uint(7)}},
		{name: "reassigned", before: &seven, after: &nine, want: &FieldChange{From: uint(7), To: uint(9)}},
		{name: "unassigned", before: &seven, after: nil, want: &FieldChange{From: uint(7), To: nil}},
		{name: "both nil", before: nil, after: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := baseSnapshot()
			before.AssigneeID = tt.before
			after := baseSnapshot()
			after.AssigneeID = tt.after

			changes := Diff(before, after)
			if tt.want == nil {
				assert.Nil(t, changes)
				return
			}

			require.Len(t, changes, 1)
			assert.Equal(t, *tt.want, changes["assigneeId"])
		})
	}
}

func TestDiff_TimeFieldsNormalized(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2026, 3, 1, 20, 0, 0, 0, loc)
	utc := local.UTC()

	before := baseSnapshot()
	before.DueAt = &local
	after := baseSnapshot()
	after.DueAt = &utc

	// Same instant in different zones compares equal.
	assert.Nil(t, Diff(before, after))

	later := utc.Add(time.Hour)
	after.DueAt = &later

	changes := Diff(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, utc.Format(time.RFC3339Nano), changes["dueAt"].From)
	assert.Equal(t, later.UTC().Format(time.RFC3339Nano), changes["dueAt"].To)
}

func TestDeletionChanges(t *testing.T) {
	at := time.Date(2026, 5, 10, 12, 30, 0, 0, time.UTC)

	changes := DeletionChanges(at)
	require.Len(t, changes, 1)
	assert.Equal(t, FieldChange{From: nil, To: "2026-05-10T12:30:00Z"}, changes["deletedAt"])
}
