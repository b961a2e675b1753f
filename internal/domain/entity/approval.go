package entity

import "time"

// Approval kind constants
type ApprovalKind string

const (
	ApprovalKindEvent  ApprovalKind = "event"
	ApprovalKindBudget ApprovalKind = "budget"
	ApprovalKindChange ApprovalKind = "change"
)

var validApprovalKinds = map[ApprovalKind]bool{
	ApprovalKindEvent:  true,
	ApprovalKindBudget: true,
	ApprovalKindChange: true,
}

// IsValid returns true if the kind is a known approval kind
func (k ApprovalKind) IsValid() bool {
	return validApprovalKinds[k]
}

// Approval status constants
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

var validApprovalStatuses = map[ApprovalStatus]bool{
	ApprovalStatusPending:  true,
	ApprovalStatusApproved: true,
	ApprovalStatusRejected: true,
}

// IsValid returns true if the status is a known approval status
func (s ApprovalStatus) IsValid() bool {
	return validApprovalStatuses[s]
}

// IsResolved returns true once a decision has been recorded
func (s ApprovalStatus) IsResolved() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// Approval is one decision request tied to exactly one event. Resolution is
// terminal: once approved or rejected, no further decisions are accepted.
//
// Invariant: ApproverID and RespondedAt are both nil while Status is pending
// and both set once the approval is resolved.
type Approval struct {
	ID          string         `json:"id"`
	EventID     string         `json:"event_id"`
	Kind        ApprovalKind   `json:"kind"`
	Status      ApprovalStatus `json:"status"`
	RequesterID string         `json:"requester_id"`
	ApproverID  *string        `json:"approver_id,omitempty"`
	RequestedAt time.Time      `json:"requested_at"`
	RespondedAt *time.Time     `json:"responded_at,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	TeamID      string         `json:"team_id,omitempty"`
}

// ResolvedAt returns the timestamp used to order approval history: the
// response time when present, the request time otherwise. The fallback
// should never trigger while the resolution invariant holds, but it is kept
// for robustness against legacy rows.
func (a *Approval) ResolvedAt() time.Time {
	if a.RespondedAt != nil {
		return *a.RespondedAt
	}
	return a.RequestedAt
}
