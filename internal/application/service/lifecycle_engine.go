package service

import (
	"context"
	"fmt"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

// LifecycleEngine owns event status transitions: manual changes requested by
// operators and implicit forward advancement triggered by side activity.
type LifecycleEngine interface {
	// SetStatus moves an event to newStatus and persists the change.
	// Setting the current status again is a silent success with no write.
	// In silent mode persistence failures are logged and swallowed; this is
	// the best-effort mode used for implicit advancement.
	SetStatus(ctx context.Context, event *entity.Event, newStatus lifecycle.Status, silent bool) error

	// AdvanceOnFirstTask advances an event that is still before the
	// task_creation stage once it has at least one task. Idempotent and
	// forward-only; never fails the caller.
	AdvanceOnFirstTask(ctx context.Context, event *entity.Event, taskCount int)

	// AdvanceOnFirstBudgetItem is the budget_generation counterpart of
	// AdvanceOnFirstTask.
	AdvanceOnFirstBudgetItem(ctx context.Context, event *entity.Event, itemCount int)
}

type lifecycleEngineImpl struct {
	eventRepo port.EventRepository
	logger    Logger
}

// NewLifecycleEngine creates a new LifecycleEngine
func NewLifecycleEngine(eventRepo port.EventRepository, logger Logger) LifecycleEngine {
	return &lifecycleEngineImpl{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// SetStatus validates and persists a status transition, mutating the event
// in memory only after the write succeeds.
func (e *lifecycleEngineImpl) SetStatus(ctx context.Context, event *entity.Event, newStatus lifecycle.Status, silent bool) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("%w: unknown status %q", entity.ErrValidation, newStatus)
	}
	if event.Status == newStatus {
		return nil
	}
	if !lifecycle.CanTransition(event.Status, newStatus) {
		return fmt.Errorf("%w: event %s is %s and cannot move to %s",
			entity.ErrStateConflict, event.ID, event.Status, newStatus)
	}

	if err := e.eventRepo.UpdateStatus(ctx, event.ID, newStatus); err != nil {
		if silent {
			e.logger.Warn("Best-effort status advance failed",
				"event_id", event.ID, "status", newStatus.String(), "error", err)
			return nil
		}
		e.logger.Error("Failed to update event status",
			"event_id", event.ID, "status", newStatus.String(), "error", err)
		return entity.NewPersistenceError("update event status", err)
	}

	prev := event.Status
	event.Status = newStatus
	e.logger.Info("Event status changed",
		"event_id", event.ID, "from", prev.String(), "to", newStatus.String(), "silent", silent)
	return nil
}

// AdvanceOnFirstTask applies the implicit task_creation advance. Manual
// transitions always win: if the event already moved at or past the stage,
// nothing happens.
func (e *lifecycleEngineImpl) AdvanceOnFirstTask(ctx context.Context, event *entity.Event, taskCount int) {
	next, ok := lifecycle.NextOnFirstTask(event.Status, taskCount)
	if !ok {
		return
	}
	_ = e.SetStatus(ctx, event, next, true)
}

// AdvanceOnFirstBudgetItem applies the implicit budget_generation advance.
func (e *lifecycleEngineImpl) AdvanceOnFirstBudgetItem(ctx context.Context, event *entity.Event, itemCount int) {
	next, ok := lifecycle.NextOnFirstBudgetItem(event.Status, itemCount)
	if !ok {
		return
	}
	_ = e.SetStatus(ctx, event, next, true)
}
