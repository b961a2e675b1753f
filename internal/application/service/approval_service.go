package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

// defaultEventApprovalNote is attached to the approval request that is
// opened automatically when an event is submitted.
const defaultEventApprovalNote = "Awaiting review of the newly submitted event."

// ApprovalService manages the decision requests attached to events
type ApprovalService interface {
	// CreateForNewEvent opens the pending kind=event approval for a freshly
	// submitted event. Runs in the caller's context so the event service can
	// keep both writes in one transaction.
	CreateForNewEvent(ctx context.Context, event *entity.Event, requesterID string) (*entity.Approval, error)

	// RequestBudgetReview opens a pending kind=budget approval for an event.
	RequestBudgetReview(ctx context.Context, eventID string, access port.AccessContext, notes string) (*entity.Approval, error)

	// Decide records an approved/rejected outcome exactly once. Approving a
	// kind=event approval forces the related event into execution.
	Decide(ctx context.Context, approvalID string, decision entity.ApprovalStatus, access port.AccessContext, notes string) (*entity.Approval, error)

	GetByID(ctx context.Context, id string) (*entity.Approval, error)
	ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.Approval, error)
	ListByEvent(ctx context.Context, eventID string) ([]*entity.Approval, error)

	// History returns resolved approvals most-recent-first by response
	// timestamp, falling back to request timestamp for rows missing one.
	History(ctx context.Context) ([]*entity.Approval, error)
}

type approvalServiceImpl struct {
	approvalRepo port.ApprovalRepository
	eventRepo    port.EventRepository
	engine       LifecycleEngine
	logger       Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	approvalRepo port.ApprovalRepository,
	eventRepo port.EventRepository,
	engine LifecycleEngine,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		approvalRepo: approvalRepo,
		eventRepo:    eventRepo,
		engine:       engine,
		logger:       logger,
	}
}

// CreateForNewEvent opens the initial pending approval for an event
func (s *approvalServiceImpl) CreateForNewEvent(ctx context.Context, event *entity.Event, requesterID string) (*entity.Approval, error) {
	approval := &entity.Approval{
		ID:          uuid.NewString(),
		EventID:     event.ID,
		Kind:        entity.ApprovalKindEvent,
		Status:      entity.ApprovalStatusPending,
		RequesterID: requesterID,
		RequestedAt: time.Now(),
		Notes:       defaultEventApprovalNote,
		TeamID:      event.TeamID,
	}

	if err := s.approvalRepo.Create(ctx, approval); err != nil {
		s.logger.Error("Failed to create event approval", "event_id", event.ID, "error", err)
		return nil, entity.NewPersistenceError("create approval", err)
	}

	s.logger.Info("Approval requested", "approval_id", approval.ID, "event_id", event.ID, "kind", "event")
	return approval, nil
}

// RequestBudgetReview opens a pending budget approval for an event
func (s *approvalServiceImpl) RequestBudgetReview(ctx context.Context, eventID string, access port.AccessContext, notes string) (*entity.Approval, error) {
	if !access.Authenticated() {
		return nil, fmt.Errorf("%w: requester is required", entity.ErrValidation)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, entity.NewPersistenceError("get event", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", entity.ErrNotFound, eventID)
	}

	approval := &entity.Approval{
		ID:          uuid.NewString(),
		EventID:     event.ID,
		Kind:        entity.ApprovalKindBudget,
		Status:      entity.ApprovalStatusPending,
		RequesterID: access.UserID,
		RequestedAt: time.Now(),
		Notes:       notes,
		TeamID:      event.TeamID,
	}

	if err := s.approvalRepo.Create(ctx, approval); err != nil {
		s.logger.Error("Failed to create budget approval", "event_id", eventID, "error", err)
		return nil, entity.NewPersistenceError("create approval", err)
	}

	s.logger.Info("Approval requested", "approval_id", approval.ID, "event_id", eventID, "kind", "budget")
	return approval, nil
}

// Decide resolves a pending approval. Resolution is terminal: the underlying
// update only lands while the row is still pending, so two racing decisions
// cannot both succeed.
func (s *approvalServiceImpl) Decide(ctx context.Context, approvalID string, decision entity.ApprovalStatus, access port.AccessContext, notes string) (*entity.Approval, error) {
	if !access.Authenticated() {
		return nil, fmt.Errorf("%w: approver is required", entity.ErrValidation)
	}
	if !decision.IsResolved() {
		return nil, fmt.Errorf("%w: decision must be approved or rejected, got %q", entity.ErrValidation, decision)
	}
	if decision == entity.ApprovalStatusRejected && strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: rejection requires notes explaining the reason", entity.ErrValidation)
	}

	approval, err := s.approvalRepo.GetByID(ctx, approvalID)
	if err != nil {
		return nil, entity.NewPersistenceError("get approval", err)
	}
	if approval == nil {
		return nil, fmt.Errorf("%w: approval %s", entity.ErrNotFound, approvalID)
	}
	if approval.Status.IsResolved() {
		return nil, fmt.Errorf("%w: approval %s is already %s", entity.ErrStateConflict, approvalID, approval.Status)
	}

	respondedAt := time.Now()
	updated, err := s.approvalRepo.ResolveIf(ctx, approvalID, decision, access.UserID, respondedAt, notes)
	if err != nil {
		s.logger.Error("Failed to resolve approval", "approval_id", approvalID, "error", err)
		return nil, entity.NewPersistenceError("resolve approval", err)
	}
	if !updated {
		// Someone else resolved it between our read and write.
		return nil, fmt.Errorf("%w: approval %s was resolved concurrently", entity.ErrStateConflict, approvalID)
	}

	approverID := access.UserID
	approval.Status = decision
	approval.ApproverID = &approverID
	approval.RespondedAt = &respondedAt
	approval.Notes = notes

	s.logger.Info("Approval resolved",
		"approval_id", approvalID, "decision", string(decision), "approver", access.UserID)

	if decision == entity.ApprovalStatusApproved && approval.Kind == entity.ApprovalKindEvent {
		if err := s.moveEventToExecution(ctx, approval.EventID); err != nil {
			return approval, err
		}
	}

	return approval, nil
}

// moveEventToExecution applies the approval side effect: the event is forced
// to execution wherever it currently sits in the lifecycle order. A cancelled
// event stays cancelled.
func (s *approvalServiceImpl) moveEventToExecution(ctx context.Context, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("%w: approval recorded but event %s could not be loaded: %v",
			entity.ErrPartialFailure, eventID, err)
	}
	if event == nil {
		s.logger.Warn("Approved approval references missing event", "event_id", eventID)
		return nil
	}
	if event.Status.IsTerminal() {
		s.logger.Warn("Skipping execution override on cancelled event", "event_id", eventID)
		return nil
	}

	if err := s.engine.SetStatus(ctx, event, lifecycle.StatusExecution, false); err != nil {
		return fmt.Errorf("%w: approval recorded but event %s status could not be updated: %v",
			entity.ErrPartialFailure, eventID, err)
	}
	return nil
}

// GetByID retrieves an approval by ID
func (s *approvalServiceImpl) GetByID(ctx context.Context, id string) (*entity.Approval, error) {
	approval, err := s.approvalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.NewPersistenceError("get approval", err)
	}
	if approval == nil {
		return nil, fmt.Errorf("%w: approval %s", entity.ErrNotFound, id)
	}
	return approval, nil
}

// ListByStatus retrieves approvals in one partition (pending/approved/rejected)
func (s *approvalServiceImpl) ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.Approval, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown approval status %q", entity.ErrValidation, status)
	}
	approvals, err := s.approvalRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, entity.NewPersistenceError("list approvals", err)
	}
	return approvals, nil
}

// ListByEvent retrieves all approvals attached to an event
func (s *approvalServiceImpl) ListByEvent(ctx context.Context, eventID string) ([]*entity.Approval, error) {
	approvals, err := s.approvalRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, entity.NewPersistenceError("list approvals", err)
	}
	return approvals, nil
}

// History returns resolved approvals most-recent-first
func (s *approvalServiceImpl) History(ctx context.Context) ([]*entity.Approval, error) {
	approvals, err := s.approvalRepo.ListResolved(ctx)
	if err != nil {
		return nil, entity.NewPersistenceError("list resolved approvals", err)
	}
	sort.SliceStable(approvals, func(i, j int) bool {
		return approvals[i].ResolvedAt().After(approvals[j].ResolvedAt())
	})
	return approvals, nil
}
