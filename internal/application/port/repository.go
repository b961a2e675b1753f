package port

import (
	"context"
	"time"

	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

// EventFilter narrows event listings. Zero values mean "no filter".
type EventFilter struct {
	Status lifecycle.Status
	TeamID string
}

// EventRepository defines persistence operations for Event
type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[lifecycle.Status]int, error)
}

// TaskRepository defines persistence operations for Task
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	GetByEventID(ctx context.Context, eventID string) ([]*entity.Task, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	Update(ctx context.Context, task *entity.Task) error
}

// BudgetItemRepository defines persistence operations for BudgetItem
type BudgetItemRepository interface {
	Create(ctx context.Context, item *entity.BudgetItem) error
	GetByID(ctx context.Context, id string) (*entity.BudgetItem, error)
	GetByEventID(ctx context.Context, eventID string) ([]*entity.BudgetItem, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	ListAll(ctx context.Context) ([]*entity.BudgetItem, error)
}

// ApprovalRepository defines persistence operations for Approval
type ApprovalRepository interface {
	Create(ctx context.Context, approval *entity.Approval) error
	GetByID(ctx context.Context, id string) (*entity.Approval, error)
	GetByEventID(ctx context.Context, eventID string) ([]*entity.Approval, error)
	ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.Approval, error)
	ListResolved(ctx context.Context) ([]*entity.Approval, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)

	// ResolveIf records a decision only while the approval is still pending
	// (conditional update on expected current status). It reports whether a
	// row was actually updated, which is how concurrent double decisions are
	// detected.
	ResolveIf(ctx context.Context, id string, status entity.ApprovalStatus, approverID string, respondedAt time.Time, notes string) (bool, error)
}

// ProfileRepository defines persistence operations for Profile
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}

// TeamRepository defines persistence operations for Team
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	List(ctx context.Context) ([]*entity.Team, error)
}

// DepartmentRepository defines persistence operations for Department
type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	GetByID(ctx context.Context, id string) (*entity.Department, error)
	List(ctx context.Context) ([]*entity.Department, error)
}

// TeamMembershipRepository defines persistence operations for TeamMembership
type TeamMembershipRepository interface {
	Create(ctx context.Context, membership *entity.TeamMembership) error
	GetByTeamID(ctx context.Context, teamID string) ([]*entity.TeamMembership, error)
	GetByProfileID(ctx context.Context, profileID string) ([]*entity.TeamMembership, error)
}

// TransactionManager handles database transactions. Writes that must land
// together (an event and its initial approval) run inside one transaction;
// gateways without transaction support would instead surface
// entity.ErrPartialFailure from the services.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
