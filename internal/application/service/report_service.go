package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/budget"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

// BudgetWorkbookWriter renders one event's budget into a spreadsheet file.
type BudgetWorkbookWriter interface {
	WriteBudgetWorkbook(event *entity.Event, items []*entity.BudgetItem, summary budget.Summary, path string) error
}

// TaskProgress is the done-vs-total projection for one event.
type TaskProgress struct {
	EventID   string  `json:"event_id"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}

// ReportService exposes read-only projections over events, tasks and budgets
type ReportService interface {
	StatusCounts(ctx context.Context) (map[lifecycle.Status]int, error)
	OverallBudget(ctx context.Context) (budget.Summary, error)
	EventBudget(ctx context.Context, eventID string) (budget.Summary, error)
	EventTaskProgress(ctx context.Context, eventID string) (TaskProgress, error)

	// ExportEventBudget writes an .xlsx workbook for one event's budget and
	// returns the generated file path.
	ExportEventBudget(ctx context.Context, eventID string) (string, error)
}

type reportServiceImpl struct {
	eventRepo  port.EventRepository
	taskRepo   port.TaskRepository
	budgetRepo port.BudgetItemRepository
	writer     BudgetWorkbookWriter
	outputDir  string
	logger     Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	eventRepo port.EventRepository,
	taskRepo port.TaskRepository,
	budgetRepo port.BudgetItemRepository,
	writer BudgetWorkbookWriter,
	outputDir string,
	logger Logger,
) ReportService {
	return &reportServiceImpl{
		eventRepo:  eventRepo,
		taskRepo:   taskRepo,
		budgetRepo: budgetRepo,
		writer:     writer,
		outputDir:  outputDir,
		logger:     logger,
	}
}

// StatusCounts returns how many events sit in every lifecycle status
func (s *reportServiceImpl) StatusCounts(ctx context.Context) (map[lifecycle.Status]int, error) {
	counts, err := s.eventRepo.CountByStatus(ctx)
	if err != nil {
		return nil, entity.NewPersistenceError("count events by status", err)
	}
	// Statuses with no events still show up as zero.
	for _, status := range append(lifecycle.Ordered(), lifecycle.StatusCancelled) {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

// OverallBudget summarizes every budget line in the system
func (s *reportServiceImpl) OverallBudget(ctx context.Context) (budget.Summary, error) {
	items, err := s.budgetRepo.ListAll(ctx)
	if err != nil {
		return budget.Summary{}, entity.NewPersistenceError("list budget items", err)
	}
	return budget.Summarize(items), nil
}

// EventBudget summarizes one event's budget lines
func (s *reportServiceImpl) EventBudget(ctx context.Context, eventID string) (budget.Summary, error) {
	items, err := s.budgetRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return budget.Summary{}, entity.NewPersistenceError("list budget items", err)
	}
	return budget.Summarize(items), nil
}

// EventTaskProgress reports completed-over-total for one event's tasks
func (s *reportServiceImpl) EventTaskProgress(ctx context.Context, eventID string) (TaskProgress, error) {
	tasks, err := s.taskRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return TaskProgress{}, entity.NewPersistenceError("list tasks", err)
	}

	progress := TaskProgress{EventID: eventID, Total: len(tasks)}
	for _, task := range tasks {
		if task.Status == entity.TaskStatusCompleted {
			progress.Completed++
		}
	}
	if progress.Total > 0 {
		progress.Percent = float64(progress.Completed) / float64(progress.Total) * 100
	}
	return progress, nil
}

// ExportEventBudget renders one event's budget workbook to the output dir
func (s *reportServiceImpl) ExportEventBudget(ctx context.Context, eventID string) (string, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return "", entity.NewPersistenceError("get event", err)
	}
	if event == nil {
		return "", fmt.Errorf("%w: event %s", entity.ErrNotFound, eventID)
	}

	items, err := s.budgetRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return "", entity.NewPersistenceError("list budget items", err)
	}

	path := filepath.Join(s.outputDir,
		fmt.Sprintf("budget_%s_%s.xlsx", event.ID, time.Now().Format("20060102_150405")))
	if err := s.writer.WriteBudgetWorkbook(event, items, budget.Summarize(items), path); err != nil {
		s.logger.Error("Failed to export budget workbook", "event_id", eventID, "error", err)
		return "", fmt.Errorf("write budget workbook: %w", err)
	}

	s.logger.Info("Budget workbook exported", "event_id", eventID, "path", path)
	return path, nil
}
