package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

// CreateEventInput carries a user submission for a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Category    string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	Priority    entity.Priority

	ExpectedParticipants *int
	PlannedBudget        *float64

	TeamID        string
	DepartmentID  string
	ResponsibleID string
}

// EventService manages events and their submission workflow
type EventService interface {
	// Create validates and persists a new event at status input and opens
	// its initial pending approval. Both writes land in one transaction.
	Create(ctx context.Context, input CreateEventInput, access port.AccessContext) (*entity.Event, error)

	GetByID(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context, filter port.EventFilter) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)

	// UpdateStatus applies a manual status change through the lifecycle
	// engine. Manual changes are permissive: any ordered status is reachable
	// from any other, only cancelled is absorbing.
	UpdateStatus(ctx context.Context, id string, status lifecycle.Status) (*entity.Event, error)

	// Delete removes an event without children. Events with tasks, budget
	// items or approvals are refused (restrict-delete).
	Delete(ctx context.Context, id string, access port.AccessContext) error
}

type eventServiceImpl struct {
	eventRepo    port.EventRepository
	taskRepo     port.TaskRepository
	budgetRepo   port.BudgetItemRepository
	approvalRepo port.ApprovalRepository
	approvals    ApprovalService
	engine       LifecycleEngine
	txManager    port.TransactionManager
	logger       Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo port.EventRepository,
	taskRepo port.TaskRepository,
	budgetRepo port.BudgetItemRepository,
	approvalRepo port.ApprovalRepository,
	approvals ApprovalService,
	engine LifecycleEngine,
	txManager port.TransactionManager,
	logger Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:    eventRepo,
		taskRepo:     taskRepo,
		budgetRepo:   budgetRepo,
		approvalRepo: approvalRepo,
		approvals:    approvals,
		engine:       engine,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *eventServiceImpl) validate(input CreateEventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", entity.ErrValidation)
	}
	if input.EndDate.Before(input.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", entity.ErrValidation)
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", entity.ErrValidation, input.Priority)
	}
	if input.PlannedBudget != nil && *input.PlannedBudget < 0 {
		return fmt.Errorf("%w: planned budget must not be negative", entity.ErrValidation)
	}
	if input.ExpectedParticipants != nil && *input.ExpectedParticipants < 0 {
		return fmt.Errorf("%w: expected participants must not be negative", entity.ErrValidation)
	}
	return nil
}

// Create persists a submission and its initial approval request
func (s *eventServiceImpl) Create(ctx context.Context, input CreateEventInput, access port.AccessContext) (*entity.Event, error) {
	if !access.Authenticated() {
		return nil, fmt.Errorf("%w: requester is required", entity.ErrValidation)
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	teamID := input.TeamID
	if teamID == "" {
		teamID = access.TeamID
	}

	now := time.Now()
	event := &entity.Event{
		ID:                   uuid.NewString(),
		Title:                strings.TrimSpace(input.Title),
		Description:          input.Description,
		Category:             input.Category,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		Location:             input.Location,
		Status:               lifecycle.StatusInput,
		Priority:             priority,
		ExpectedParticipants: input.ExpectedParticipants,
		PlannedBudget:        input.PlannedBudget,
		TeamID:               teamID,
		DepartmentID:         input.DepartmentID,
		ResponsibleID:        input.ResponsibleID,
		RequesterID:          access.UserID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.eventRepo.Create(txCtx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if _, err := s.approvals.CreateForNewEvent(txCtx, event, access.UserID); err != nil {
			return fmt.Errorf("create initial approval: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create event", "title", event.Title, "error", err)
		return nil, entity.NewPersistenceError("create event", err)
	}

	s.logger.Info("Event created", "event_id", event.ID, "title", event.Title, "requester", access.UserID)
	return event, nil
}

// GetByID retrieves an event by ID
func (s *eventServiceImpl) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.NewPersistenceError("get event", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", entity.ErrNotFound, id)
	}
	return event, nil
}

// List retrieves events matching the filter, ordered by start date
func (s *eventServiceImpl) List(ctx context.Context, filter port.EventFilter) ([]*entity.Event, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, filter.Status)
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, entity.NewPersistenceError("list events", err)
	}
	return events, nil
}

// Update persists edits to an event's descriptive fields. Status is not
// editable here; it goes through UpdateStatus.
func (s *eventServiceImpl) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	if strings.TrimSpace(event.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", entity.ErrValidation)
	}

	current, err := s.GetByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Status = current.Status
	event.CreatedAt = current.CreatedAt
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		s.logger.Error("Failed to update event", "event_id", event.ID, "error", err)
		return nil, entity.NewPersistenceError("update event", err)
	}
	return event, nil
}

// UpdateStatus applies a manual lifecycle transition
func (s *eventServiceImpl) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) (*entity.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetStatus(ctx, event, status, false); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event, refusing when children still reference it
func (s *eventServiceImpl) Delete(ctx context.Context, id string, access port.AccessContext) error {
	if !access.Authenticated() {
		return fmt.Errorf("%w: acting user is required", entity.ErrValidation)
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	taskCount, err := s.taskRepo.CountByEventID(ctx, id)
	if err != nil {
		return entity.NewPersistenceError("count tasks", err)
	}
	itemCount, err := s.budgetRepo.CountByEventID(ctx, id)
	if err != nil {
		return entity.NewPersistenceError("count budget items", err)
	}
	approvalCount, err := s.approvalRepo.CountByEventID(ctx, id)
	if err != nil {
		return entity.NewPersistenceError("count approvals", err)
	}
	if taskCount > 0 || itemCount > 0 || approvalCount > 0 {
		return fmt.Errorf("%w: event %s still has %d tasks, %d budget items, %d approvals",
			entity.ErrStateConflict, id, taskCount, itemCount, approvalCount)
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete event", "event_id", id, "error", err)
		return entity.NewPersistenceError("delete event", err)
	}

	s.logger.Info("Event deleted", "event_id", id, "by", access.UserID)
	return nil
}
