package entity

import "time"

// Task status constants
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

var validTaskStatuses = map[TaskStatus]bool{
	TaskStatusPending:    true,
	TaskStatusInProgress: true,
	TaskStatusCompleted:  true,
	TaskStatusCancelled:  true,
}

// IsValid returns true if the status is a known task status
func (s TaskStatus) IsValid() bool {
	return validTaskStatuses[s]
}

// String returns the string representation of the status
func (s TaskStatus) String() string {
	return string(s)
}

// Task is a unit of work belonging to exactly one event.
//
// Invariant: CompletionDate is non-nil iff Status is completed. The task
// service sets it on completion and clears it on any other status change.
type Task struct {
	ID             string     `json:"id"`
	EventID        string     `json:"event_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ResponsibleID  string     `json:"responsible_id,omitempty"`
	DueDate        time.Time  `json:"due_date"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`

	// Inherited from the owning event when the task is created without one.
	TeamID string `json:"team_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
