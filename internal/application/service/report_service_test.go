package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/planora/eventops/internal/domain/budget"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

type mockWorkbookWriter struct {
	writeFunc func(event *entity.Event, items []*entity.BudgetItem, summary budget.Summary, path string) error
}

func (m *mockWorkbookWriter) WriteBudgetWorkbook(event *entity.Event, items []*entity.BudgetItem, summary budget.Summary, path string) error {
	if m.writeFunc != nil {
		return m.writeFunc(event, items, summary, path)
	}
	return nil
}

func newReportService(eventRepo *mockEventRepo, taskRepo *mockTaskRepo, budgetRepo *mockBudgetItemRepo, writer BudgetWorkbookWriter) ReportService {
	return NewReportService(eventRepo, taskRepo, budgetRepo, writer, "reports", testLogger{})
}

func TestStatusCountsZeroFillsMissingStatuses(t *testing.T) {
	eventRepo := &mockEventRepo{
		countByStatusFunc: func(ctx context.Context) (map[lifecycle.Status]int, error) {
			return map[lifecycle.Status]int{lifecycle.StatusExecution: 3}, nil
		},
	}
	svc := newReportService(eventRepo, &mockTaskRepo{}, &mockBudgetItemRepo{}, &mockWorkbookWriter{})

	counts, err := svc.StatusCounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counts[lifecycle.StatusExecution] != 3 {
		t.Errorf("execution = %d, want 3", counts[lifecycle.StatusExecution])
	}
	for _, status := range append(lifecycle.Ordered(), lifecycle.StatusCancelled) {
		if _, ok := counts[status]; !ok {
			t.Errorf("status %s missing from counts", status)
		}
	}
}

func TestEventTaskProgress(t *testing.T) {
	taskRepo := &mockTaskRepo{
		getByEventIDFunc: func(ctx context.Context, eventID string) ([]*entity.Task, error) {
			return []*entity.Task{
				{Status: entity.TaskStatusCompleted},
				{Status: entity.TaskStatusCompleted},
				{Status: entity.TaskStatusPending},
				{Status: entity.TaskStatusCancelled},
			}, nil
		},
	}
	svc := newReportService(&mockEventRepo{}, taskRepo, &mockBudgetItemRepo{}, &mockWorkbookWriter{})

	progress, err := svc.EventTaskProgress(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.Total != 4 || progress.Completed != 2 {
		t.Errorf("progress = %d/%d, want 2/4", progress.Completed, progress.Total)
	}
	if progress.Percent != 50 {
		t.Errorf("percent = %v, want 50", progress.Percent)
	}
}

func TestEventTaskProgressNoTasks(t *testing.T) {
	svc := newReportService(&mockEventRepo{}, &mockTaskRepo{}, &mockBudgetItemRepo{}, &mockWorkbookWriter{})

	progress, err := svc.EventTaskProgress(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.Percent != 0 {
		t.Errorf("percent = %v, want 0 for empty task list", progress.Percent)
	}
}

func TestOverallBudgetAggregatesAllItems(t *testing.T) {
	budgetRepo := &mockBudgetItemRepo{
		listAllFunc: func(ctx context.Context) ([]*entity.BudgetItem, error) {
			return []*entity.BudgetItem{
				{EventID: "e1", Quantity: 1, UnitPrice: 10, Approved: true},
				{EventID: "e2", Quantity: 2, UnitPrice: 20},
			}, nil
		},
	}
	svc := newReportService(&mockEventRepo{}, &mockTaskRepo{}, budgetRepo, &mockWorkbookWriter{})

	summary, err := svc.OverallBudget(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 50 || summary.Approved != 10 || summary.Pending != 40 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestExportEventBudgetWritesWorkbook(t *testing.T) {
	var gotPath string
	var gotSummary budget.Summary
	writer := &mockWorkbookWriter{
		writeFunc: func(event *entity.Event, items []*entity.BudgetItem, summary budget.Summary, path string) error {
			gotPath = path
			gotSummary = summary
			return nil
		},
	}
	budgetRepo := &mockBudgetItemRepo{
		getByEventIDFunc: func(ctx context.Context, eventID string) ([]*entity.BudgetItem, error) {
			return []*entity.BudgetItem{{Quantity: 2, UnitPrice: 5}}, nil
		},
	}
	svc := newReportService(&mockEventRepo{}, &mockTaskRepo{}, budgetRepo, writer)

	path, err := svc.ExportEventBudget(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != gotPath {
		t.Error("returned path must match the written path")
	}
	if !strings.HasPrefix(path, "reports/") || !strings.HasSuffix(path, ".xlsx") {
		t.Errorf("unexpected path %q", path)
	}
	if gotSummary.Total != 10 {
		t.Errorf("summary total = %v, want 10", gotSummary.Total)
	}
}

func TestExportEventBudgetUnknownEvent(t *testing.T) {
	eventRepo := &mockEventRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Event, error) {
			return nil, nil
		},
	}
	svc := newReportService(eventRepo, &mockTaskRepo{}, &mockBudgetItemRepo{}, &mockWorkbookWriter{})

	_, err := svc.ExportEventBudget(context.Background(), "missing")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestExportEventBudgetWriterFailure(t *testing.T) {
	writer := &mockWorkbookWriter{
		writeFunc: func(event *entity.Event, items []*entity.BudgetItem, summary budget.Summary, path string) error {
			return errors.New("disk full")
		},
	}
	svc := newReportService(&mockEventRepo{}, &mockTaskRepo{}, &mockBudgetItemRepo{}, writer)

	if _, err := svc.ExportEventBudget(context.Background(), "e1"); err == nil {
		t.Error("writer failure must surface")
	}
}
