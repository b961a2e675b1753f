package entity

import (
	"time"

	"github.com/planora/eventops/internal/domain/lifecycle"
)

// Priority levels shared by events and tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// IsValid returns true if the priority is a known level
func (p Priority) IsValid() bool {
	return validPriorities[p]
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}

// Event is one managed occasion moving through the planning lifecycle.
// Status progression is owned by the lifecycle engine; everything else is
// plain data the presentation layer edits through the services.
type Event struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Location    string           `json:"location"`
	Status      lifecycle.Status `json:"status"`
	Priority    Priority         `json:"priority"`

	ExpectedParticipants *int     `json:"expected_participants,omitempty"`
	PlannedBudget        *float64 `json:"planned_budget,omitempty"`
	ApprovedBudget       *float64 `json:"approved_budget,omitempty"`

	TeamID        string `json:"team_id,omitempty"`
	DepartmentID  string `json:"department_id,omitempty"`
	ResponsibleID string `json:"responsible_id,omitempty"`
	RequesterID   string `json:"requester_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
