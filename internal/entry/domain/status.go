package domain

import "fmt"

// Status is the lifecycle state of a contest entry.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// AllStatuses lists every lifecycle state in order.
var AllStatuses = []Status{StatusDraft, StatusSubmitting, StatusSubmitted, StatusApproved, StatusRejected}

// ParseStatus validates a raw status string.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	switch s {
	case StatusDraft, StatusSubmitting, StatusSubmitted, StatusApproved, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("unknown entry status: %q", value)
}

func (s Status) String() string {
	return string(s)
}

// StatusCases enumerates one handler per lifecycle state.
// MatchStatus refuses to run with a missing case, so adding a status forces
// every consumer to decide how the new state is treated.
type StatusCases[T any] struct {
	Draft      func() T
	Submitting func() T
	Submitted  func() T
	Approved   func() T
	Rejected   func() T
}

// MatchStatus dispatches to the case registered for s.
func MatchStatus[T any](s Status, cases StatusCases[T]) (T, error) {
	var zero T

	var picked func() T
	switch s {
	case StatusDraft:
		picked = cases.Draft
	case StatusSubmitting:
		picked = cases.Submitting
	case StatusSubmitted:
		picked = cases.Submitted
	case StatusApproved:
		picked = cases.Approved
	case StatusRejected:
		picked = cases.Rejected
	default:
		return zero, fmt.Errorf("unknown entry status: %q", s)
	}
	if picked == nil {
		return zero, fmt.Errorf("no case registered for entry status %q", s)
	}
	return picked(), nil
}

// ClaimsPlace reports whether an entry in this status occupies its place key.
// A claimed key blocks other entries from submitting the same address.
func (s Status) ClaimsPlace() (bool, error) {
	return MatchStatus(s, StatusCases[bool]{
		Draft:      func() bool { return false },
		Submitting: func() bool { return true },
		Submitted:  func() bool { return true },
		Approved:   func() bool { return true },
		Rejected:   func() bool { return false },
	})
}
