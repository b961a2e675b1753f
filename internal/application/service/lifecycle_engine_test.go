package service

import (
	"context"
	"errors"
	"testing"

	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

func TestSetStatusPersistsBeforeMutating(t *testing.T) {
	var persisted lifecycle.Status
	repo := &mockEventRepo{
		updateStatusFunc: func(ctx context.Context, id string, status lifecycle.Status) error {
			persisted = status
			return nil
		},
	}
	engine := NewLifecycleEngine(repo, testLogger{})

	event := &entity.Event{ID: "e1", Status: lifecycle.StatusInput}
	if err := engine.SetStatus(context.Background(), event, lifecycle.StatusExecution, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted != lifecycle.StatusExecution {
		t.Errorf("persisted status = %s, want execution", persisted)
	}
	if event.Status != lifecycle.StatusExecution {
		t.Errorf("in-memory status = %s, want execution", event.Status)
	}
}

func TestSetStatusSameStatusIsNoOp(t *testing.T) {
	called := false
	repo := &mockEventRepo{
		updateStatusFunc: func(ctx context.Context, id string, status lifecycle.Status) error {
			called = true
			return nil
		},
	}
	engine := NewLifecycleEngine(repo, testLogger{})

	event := &entity.Event{ID: "e1", Status: lifecycle.StatusExecution}
	if err := engine.SetStatus(context.Background(), event, lifecycle.StatusExecution, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("no write expected when status is unchanged")
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	engine := NewLifecycleEngine(&mockEventRepo{}, testLogger{})

	event := &entity.Event{ID: "e1", Status: lifecycle.StatusInput}
	err := engine.SetStatus(context.Background(), event, lifecycle.Status("bogus"), false)
	if !errors.Is(err, entity.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if event.Status != lifecycle.StatusInput {
		t.Errorf("status mutated on failed transition: %s", event.Status)
	}
}

func TestCancelledEventRefusesTransitions(t *testing.T) {
	engine := NewLifecycleEngine(&mockEventRepo{}, testLogger{})

	event := &entity.Event{ID: "e1", Status: lifecycle.StatusCancelled}
	err := engine.SetStatus(context.Background(), event, lifecycle.StatusExecution, false)
	if !errors.Is(err, entity.ErrStateConflict) {
		t.Errorf("expected state conflict, got %v", err)
	}
}

func TestSetStatusSilentSwallowsPersistenceFailure(t *testing.T) {
	repo := &mockEventRepo{
		updateStatusFunc: func(ctx context.Context, id string, status lifecycle.Status) error {
			return errors.New("disk full")
		},
	}
	engine := NewLifecycleEngine(repo, testLogger{})

	event := &entity.Event{ID: "e1", Status: lifecycle.StatusInput}
	if err := engine.SetStatus(context.Background(), event, lifecycle.StatusTaskCreation, true); err != nil {
		t.Fatalf("silent mode must not surface the error, got %v", err)
	}
	if event.Status != lifecycle.StatusInput {
		t.Errorf("in-memory status must stay put on failed write, got %s", event.Status)
	}
}

func TestSetStatusLoudReportsPersistenceFailure(t *testing.T) {
	repo := &mockEventRepo{
		updateStatusFunc: func(ctx context.Context, id string, status lifecycle.Status) error {
			return errors.New("disk full")
		},
	}
	engine := NewLifecycleEngine(repo, testLogger{})

	event := &entity.Event{ID: "e1", Status: lifecycle.StatusInput}
	err := engine.SetStatus(context.Background(), event, lifecycle.StatusTaskCreation, false)
	var pe *entity.PersistenceError
	if !errors.As(err, &pe) {
		t.Errorf("expected persistence error, got %v", err)
	}
}

func TestAdvanceOnFirstTask(t *testing.T) {
	tests := []struct {
		name       string
		current    lifecycle.Status
		taskCount  int
		wantStatus lifecycle.Status
		wantWrite  bool
	}{
		{"advances from input", lifecycle.StatusInput, 1, lifecycle.StatusTaskCreation, true},
		{"no tasks no advance", lifecycle.StatusInput, 0, lifecycle.StatusInput, false},
		{"already at stage", lifecycle.StatusTaskCreation, 3, lifecycle.StatusTaskCreation, false},
		{"past the stage", lifecycle.StatusExecution, 2, lifecycle.StatusExecution, false},
		{"cancelled never advances", lifecycle.StatusCancelled, 1, lifecycle.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrote := false
			repo := &mockEventRepo{
				updateStatusFunc: func(ctx context.Context, id string, status lifecycle.Status) error {
					wrote = true
					return nil
				},
			}
			engine := NewLifecycleEngine(repo, testLogger{})

			event := &entity.Event{ID: "e1", Status: tt.current}
			engine.AdvanceOnFirstTask(context.Background(), event, tt.taskCount)

			if event.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", event.Status, tt.wantStatus)
			}
			if wrote != tt.wantWrite {
				t.Errorf("wrote = %v, want %v", wrote, tt.wantWrite)
			}
		})
	}
}

func TestAdvanceOnFirstBudgetItem(t *testing.T) {
	tests := []struct {
		name       string
		current    lifecycle.Status
		itemCount  int
		wantStatus lifecycle.Status
	}{
		{"advances from input", lifecycle.StatusInput, 1, lifecycle.StatusBudgetGeneration},
		{"advances from task_creation", lifecycle.StatusTaskCreation, 1, lifecycle.StatusBudgetGeneration},
		{"no items no advance", lifecycle.StatusInput, 0, lifecycle.StatusInput},
		{"awaiting approval stays", lifecycle.StatusAwaitingApproval, 5, lifecycle.StatusAwaitingApproval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewLifecycleEngine(&mockEventRepo{}, testLogger{})

			event := &entity.Event{ID: "e1", Status: tt.current}
			engine.AdvanceOnFirstBudgetItem(context.Background(), event, tt.itemCount)

			if event.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", event.Status, tt.wantStatus)
			}
		})
	}
}

// Repeated advances must never move an event backward, whatever the order of
// activity that triggers them.
func TestRepeatedAdvancesAreMonotonic(t *testing.T) {
	engine := NewLifecycleEngine(&mockEventRepo{}, testLogger{})
	event := &entity.Event{ID: "e1", Status: lifecycle.StatusInput}
	ctx := context.Background()

	engine.AdvanceOnFirstBudgetItem(ctx, event, 1)
	if event.Status != lifecycle.StatusBudgetGeneration {
		t.Fatalf("status = %s, want budget_generation", event.Status)
	}

	// A later first task must not pull the event back to task_creation.
	engine.AdvanceOnFirstTask(ctx, event, 1)
	if event.Status != lifecycle.StatusBudgetGeneration {
		t.Errorf("implicit advance moved event backward to %s", event.Status)
	}
}
