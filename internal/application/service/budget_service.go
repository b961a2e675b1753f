package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/budget"
	"github.com/planora/eventops/internal/domain/entity"
)

// AddBudgetItemInput carries a new budget line submission.
type AddBudgetItemInput struct {
	EventID     string
	Category    string
	Description string
	Supplier    string
	Quantity    float64
	UnitPrice   float64
	StoredTotal *float64
	TeamID      string
}

// BudgetService manages budget lines under events
type BudgetService interface {
	// Add persists a budget line and then best-effort advances the owning
	// event toward budget_generation. The two writes are independent.
	Add(ctx context.Context, input AddBudgetItemInput) (*entity.BudgetItem, error)

	ListByEvent(ctx context.Context, eventID string) ([]*entity.BudgetItem, error)

	// SetApproved toggles the approved flag of one line, independently of
	// the owning event's lifecycle status.
	SetApproved(ctx context.Context, id string, approved bool) (*entity.BudgetItem, error)

	// SummaryForEvent computes the approved-vs-pending split of one event.
	SummaryForEvent(ctx context.Context, eventID string) (budget.Summary, error)
}

type budgetServiceImpl struct {
	budgetRepo port.BudgetItemRepository
	eventRepo  port.EventRepository
	engine     LifecycleEngine
	logger     Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo port.BudgetItemRepository,
	eventRepo port.EventRepository,
	engine LifecycleEngine,
	logger Logger,
) BudgetService {
	return &budgetServiceImpl{
		budgetRepo: budgetRepo,
		eventRepo:  eventRepo,
		engine:     engine,
		logger:     logger,
	}
}

// Add validates and persists a budget line under an event
func (s *budgetServiceImpl) Add(ctx context.Context, input AddBudgetItemInput) (*entity.BudgetItem, error) {
	if strings.TrimSpace(input.Category) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: category and description are required", entity.ErrValidation)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", entity.ErrValidation)
	}
	if input.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price must not be negative", entity.ErrValidation)
	}
	if input.StoredTotal != nil && *input.StoredTotal < 0 {
		return nil, fmt.Errorf("%w: stored total must not be negative", entity.ErrValidation)
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, entity.NewPersistenceError("get event", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", entity.ErrNotFound, input.EventID)
	}

	teamID := input.TeamID
	if teamID == "" {
		teamID = event.TeamID
	}

	item := &entity.BudgetItem{
		ID:          uuid.NewString(),
		EventID:     event.ID,
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
		Supplier:    input.Supplier,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		StoredTotal: input.StoredTotal,
		TeamID:      teamID,
		CreatedAt:   time.Now(),
	}

	if err := s.budgetRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create budget item", "event_id", event.ID, "error", err)
		return nil, entity.NewPersistenceError("create budget item", err)
	}

	s.logger.Info("Budget item created",
		"item_id", item.ID, "event_id", event.ID, "line_total", budget.LineTotal(item))

	count, err := s.budgetRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		s.logger.Warn("Could not count budget items for implicit advance", "event_id", event.ID, "error", err)
		return item, nil
	}
	s.engine.AdvanceOnFirstBudgetItem(ctx, event, count)

	return item, nil
}

// ListByEvent retrieves the budget lines of one event
func (s *budgetServiceImpl) ListByEvent(ctx context.Context, eventID string) ([]*entity.BudgetItem, error) {
	items, err := s.budgetRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, entity.NewPersistenceError("list budget items", err)
	}
	return items, nil
}

// SetApproved toggles a line's approved flag
func (s *budgetServiceImpl) SetApproved(ctx context.Context, id string, approved bool) (*entity.BudgetItem, error) {
	item, err := s.budgetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.NewPersistenceError("get budget item", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: budget item %s", entity.ErrNotFound, id)
	}

	if err := s.budgetRepo.SetApproved(ctx, id, approved); err != nil {
		s.logger.Error("Failed to toggle budget item approval", "item_id", id, "error", err)
		return nil, entity.NewPersistenceError("toggle budget item approval", err)
	}

	item.Approved = approved
	s.logger.Info("Budget item approval toggled", "item_id", id, "approved", approved)
	return item, nil
}

// SummaryForEvent computes totals over one event's budget lines
func (s *budgetServiceImpl) SummaryForEvent(ctx context.Context, eventID string) (budget.Summary, error) {
	items, err := s.budgetRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return budget.Summary{}, entity.NewPersistenceError("list budget items", err)
	}
	return budget.Summarize(items), nil
}
