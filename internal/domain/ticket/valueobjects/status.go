package valueobjects

import "fmt"

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
	StatusReopened   Status = "REOPENED"
	StatusOnHold     Status = "ON_HOLD"
)

var validStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
	StatusReopened:   true,
	StatusOnHold:     true,
}

// activeStatuses are the statuses that count toward an assignee's
// workload when balancing new assignments.
var activeStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusOnHold:     true,
	StatusReopened:   true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsActive reports whether the status represents ongoing work.
// Resolved and closed tickets are not active.
func (s Status) IsActive() bool {
	return activeStatuses[s]
}

func (s Status) IsResolved() bool {
	return s == StatusResolved
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

func (s Status) IsReopened() bool {
	return s == StatusReopened
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return st, nil
}

// ActiveStatuses returns the list of statuses counted as active workload.
func ActiveStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusOnHold, StatusReopened}
}
