package models

import "strings"

// Status is an order's lifecycle stage. Orders are created as StatusNew and
// end up in StatusCompleted, which is the only history state.
type Status string

const (
	StatusNew       Status = "new"
	StatusAccepted  Status = "accepted"
	StatusPreparing Status = "preparing"
	StatusHandedOff Status = "handed-off"
	StatusCompleted Status = "completed"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{
	StatusNew,
	StatusAccepted,
	StatusPreparing,
	StatusHandedOff,
	StatusCompleted,
}

// ParseStatus matches s against the known statuses, ignoring case.
// It reports false for anything outside the fixed set.
func ParseStatus(s string) (Status, bool) {
	candidate := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Statuses {
		if st == candidate {
			return st, true
		}
	}
	return "", false
}

func (s Status) String() string {
	return string(s)
}
