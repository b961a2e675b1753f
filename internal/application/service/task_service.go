package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
)

// CreateTaskInput carries a new task submission.
type CreateTaskInput struct {
	EventID       string
	Title         string
	Description   string
	ResponsibleID string
	DueDate       time.Time
	Priority      entity.Priority
	TeamID        string
}

// TaskService manages tasks under events
type TaskService interface {
	// Create persists a task and then best-effort advances the owning event
	// past the input stage. The advance is a separate write; its failure
	// never rolls back or fails the task creation.
	Create(ctx context.Context, input CreateTaskInput) (*entity.Task, error)

	ListByEvent(ctx context.Context, eventID string) ([]*entity.Task, error)

	// UpdateStatus moves a task between statuses, maintaining the invariant
	// that the completion date is set iff the task is completed.
	UpdateStatus(ctx context.Context, id string, status entity.TaskStatus, completedOn *time.Time) (*entity.Task, error)
}

type taskServiceImpl struct {
	taskRepo  port.TaskRepository
	eventRepo port.EventRepository
	engine    LifecycleEngine
	logger    Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo port.TaskRepository,
	eventRepo port.EventRepository,
	engine LifecycleEngine,
	logger Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
		engine:    engine,
		logger:    logger,
	}
}

// Create validates and persists a task under an event
func (s *taskServiceImpl) Create(ctx context.Context, input CreateTaskInput) (*entity.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", entity.ErrValidation)
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", entity.ErrValidation, input.Priority)
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, entity.NewPersistenceError("get event", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", entity.ErrNotFound, input.EventID)
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	teamID := input.TeamID
	if teamID == "" {
		teamID = event.TeamID
	}

	task := &entity.Task{
		ID:            uuid.NewString(),
		EventID:       event.ID,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		ResponsibleID: input.ResponsibleID,
		DueDate:       input.DueDate,
		Status:        entity.TaskStatusPending,
		Priority:      priority,
		TeamID:        teamID,
		CreatedAt:     time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("Failed to create task", "event_id", event.ID, "error", err)
		return nil, entity.NewPersistenceError("create task", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "event_id", event.ID)

	count, err := s.taskRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		// Creation already succeeded; the implicit advance is best-effort.
		s.logger.Warn("Could not count tasks for implicit advance", "event_id", event.ID, "error", err)
		return task, nil
	}
	s.engine.AdvanceOnFirstTask(ctx, event, count)

	return task, nil
}

// ListByEvent retrieves the tasks of one event
func (s *taskServiceImpl) ListByEvent(ctx context.Context, eventID string) ([]*entity.Task, error) {
	tasks, err := s.taskRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, entity.NewPersistenceError("list tasks", err)
	}
	return tasks, nil
}

// UpdateStatus moves a task between statuses
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, id string, status entity.TaskStatus, completedOn *time.Time) (*entity.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown task status %q", entity.ErrValidation, status)
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.NewPersistenceError("get task", err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %s", entity.ErrNotFound, id)
	}

	task.Status = status
	if status == entity.TaskStatusCompleted {
		when := time.Now()
		if completedOn != nil {
			when = *completedOn
		}
		task.CompletionDate = &when
	} else {
		task.CompletionDate = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("Failed to update task", "task_id", id, "error", err)
		return nil, entity.NewPersistenceError("update task", err)
	}

	s.logger.Info("Task status updated", "task_id", id, "status", string(status))
	return task, nil
}
