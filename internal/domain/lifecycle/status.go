package lifecycle

// Status represents an event's position in the planning lifecycle
type Status string

const (
	StatusInput            Status = "input"
	StatusTaskCreation     Status = "task_creation"
	StatusBudgetGeneration Status = "budget_generation"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusExecution        Status = "execution"
	StatusPostEvent        Status = "post_event"
	StatusCancelled        Status = "cancelled"
)

// statusOrder defines the total order used for forward-progress comparisons.
// Cancelled sits outside the order and is absorbing.
var statusOrder = map[Status]int{
	StatusInput:            0,
	StatusTaskCreation:     1,
	StatusBudgetGeneration: 2,
	StatusAwaitingApproval: 3,
	StatusExecution:        4,
	StatusPostEvent:        5,
}

var validStatuses = map[Status]bool{
	StatusInput:            true,
	StatusTaskCreation:     true,
	StatusBudgetGeneration: true,
	StatusAwaitingApproval: true,
	StatusExecution:        true,
	StatusPostEvent:        true,
	StatusCancelled:        true,
}

// Ordered lists the progression statuses in lifecycle order, excluding cancelled.
func Ordered() []Status {
	return []Status{
		StatusInput,
		StatusTaskCreation,
		StatusBudgetGeneration,
		StatusAwaitingApproval,
		StatusExecution,
		StatusPostEvent,
	}
}

// Order returns the status position in the lifecycle order.
// Cancelled (and any invalid status) has no position and returns -1.
func (s Status) Order() int {
	if pos, ok := statusOrder[s]; ok {
		return pos
	}
	return -1
}

// Before reports whether s comes strictly before other in the lifecycle order.
// Statuses outside the order never come before anything.
func (s Status) Before(other Status) bool {
	so, oo := s.Order(), other.Order()
	return so >= 0 && oo >= 0 && so < oo
}

// IsTerminal returns true if no further transitions are allowed from the state
func (s Status) IsTerminal() bool {
	return s == StatusCancelled
}

// IsValid returns true if the status is a known lifecycle status
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}
