package service

import (
	"context"
	"errors"
	"testing"

	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

func validBudgetInput() AddBudgetItemInput {
	return AddBudgetItemInput{
		EventID:     "e1",
		Category:    "catering",
		Description: "Lunch for 40",
		Quantity:    40,
		UnitPrice:   12.5,
	}
}

func newBudgetService(budgetRepo *mockBudgetItemRepo, eventRepo *mockEventRepo) BudgetService {
	engine := NewLifecycleEngine(eventRepo, testLogger{})
	return NewBudgetService(budgetRepo, eventRepo, engine, testLogger{})
}

func TestAddBudgetItemInheritsTeam(t *testing.T) {
	var stored *entity.BudgetItem
	budgetRepo := &mockBudgetItemRepo{
		createFunc: func(ctx context.Context, item *entity.BudgetItem) error {
			stored = item
			return nil
		},
	}
	eventRepo := &mockEventRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Event, error) {
			return &entity.Event{ID: id, TeamID: "t3", Status: lifecycle.StatusTaskCreation}, nil
		},
	}
	svc := newBudgetService(budgetRepo, eventRepo)

	item, err := svc.Add(context.Background(), validBudgetInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("item was not persisted")
	}
	if item.TeamID != "t3" {
		t.Errorf("team_id = %q, want inherited t3", item.TeamID)
	}
	if item.Approved {
		t.Error("new lines start unapproved")
	}
}

func TestAddFirstBudgetItemAdvancesEvent(t *testing.T) {
	budgetRepo := &mockBudgetItemRepo{
		countByEventIDFunc: func(ctx context.Context, eventID string) (int, error) { return 1, nil },
	}
	var advancedTo lifecycle.Status
	eventRepo := &mockEventRepo{
		updateStatusFunc: func(ctx context.Context, id string, status lifecycle.Status) error {
			advancedTo = status
			return nil
		},
	}
	svc := newBudgetService(budgetRepo, eventRepo)

	if _, err := svc.Add(context.Background(), validBudgetInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advancedTo != lifecycle.StatusBudgetGeneration {
		t.Errorf("event advanced to %s, want budget_generation", advancedTo)
	}
}

func TestAddBudgetItemValidation(t *testing.T) {
	svc := newBudgetService(&mockBudgetItemRepo{}, &mockEventRepo{})

	negTotal := -5.0

	tests := []struct {
		name   string
		mutate func(*AddBudgetItemInput)
	}{
		{"empty category", func(in *AddBudgetItemInput) { in.Category = " " }},
		{"empty description", func(in *AddBudgetItemInput) { in.Description = "" }},
		{"zero quantity", func(in *AddBudgetItemInput) { in.Quantity = 0 }},
		{"negative unit price", func(in *AddBudgetItemInput) { in.UnitPrice = -1 }},
		{"negative stored total", func(in *AddBudgetItemInput) { in.StoredTotal = &negTotal }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validBudgetInput()
			tt.mutate(&input)
			_, err := svc.Add(context.Background(), input)
			if !errors.Is(err, entity.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAddBudgetItemUnknownEvent(t *testing.T) {
	eventRepo := &mockEventRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Event, error) {
			return nil, nil
		},
	}
	svc := newBudgetService(&mockBudgetItemRepo{}, eventRepo)

	_, err := svc.Add(context.Background(), validBudgetInput())
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSetApprovedTogglesLine(t *testing.T) {
	var toggledID string
	var toggledTo bool
	budgetRepo := &mockBudgetItemRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.BudgetItem, error) {
			return &entity.BudgetItem{ID: id}, nil
		},
		setApprovedFunc: func(ctx context.Context, id string, approved bool) error {
			toggledID, toggledTo = id, approved
			return nil
		},
	}
	svc := newBudgetService(budgetRepo, &mockEventRepo{})

	item, err := svc.SetApproved(context.Background(), "b1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggledID != "b1" || !toggledTo {
		t.Error("approval toggle was not persisted")
	}
	if !item.Approved {
		t.Error("returned item must reflect the toggle")
	}
}

func TestSetApprovedUnknownItem(t *testing.T) {
	svc := newBudgetService(&mockBudgetItemRepo{}, &mockEventRepo{})

	_, err := svc.SetApproved(context.Background(), "missing", true)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSummaryForEventSplitsApprovedAndPending(t *testing.T) {
	stored := 100.0
	budgetRepo := &mockBudgetItemRepo{
		getByEventIDFunc: func(ctx context.Context, eventID string) ([]*entity.BudgetItem, error) {
			return []*entity.BudgetItem{
				{Quantity: 2, UnitPrice: 25, Approved: true},       // 50 approved
				{Quantity: 1, UnitPrice: 30},                       // 30 pending
				{Quantity: 3, UnitPrice: 999, StoredTotal: &stored, Approved: true}, // stored total wins
			}, nil
		},
	}
	svc := newBudgetService(budgetRepo, &mockEventRepo{})

	summary, err := svc.SummaryForEvent(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 180 {
		t.Errorf("total = %v, want 180", summary.Total)
	}
	if summary.Approved != 150 {
		t.Errorf("approved = %v, want 150", summary.Approved)
	}
	if summary.Pending != 30 {
		t.Errorf("pending = %v, want 30", summary.Pending)
	}
}
