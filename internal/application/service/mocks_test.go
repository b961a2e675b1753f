package service

import (
	"context"
	"time"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
)

// testLogger satisfies Logger without output
type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}

// Mock repositories

type mockEventRepo struct {
	createFunc        func(ctx context.Context, event *entity.Event) error
	getByIDFunc       func(ctx context.Context, id string) (*entity.Event, error)
	listFunc          func(ctx context.Context, filter port.EventFilter) ([]*entity.Event, error)
	updateFunc        func(ctx context.Context, event *entity.Event) error
	updateStatusFunc  func(ctx context.Context, id string, status lifecycle.Status) error
	deleteFunc        func(ctx context.Context, id string) error
	countByStatusFunc func(ctx context.Context) (map[lifecycle.Status]int, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *entity.Event) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Event{ID: id, Status: lifecycle.StatusInput}, nil
}

func (m *mockEventRepo) List(ctx context.Context, filter port.EventFilter) ([]*entity.Event, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *entity.Event) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockEventRepo) CountByStatus(ctx context.Context) (map[lifecycle.Status]int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return map[lifecycle.Status]int{}, nil
}

type mockTaskRepo struct {
	createFunc         func(ctx context.Context, task *entity.Task) error
	getByIDFunc        func(ctx context.Context, id string) (*entity.Task, error)
	getByEventIDFunc   func(ctx context.Context, eventID string) ([]*entity.Task, error)
	countByEventIDFunc func(ctx context.Context, eventID string) (int, error)
	updateFunc         func(ctx context.Context, task *entity.Task) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskRepo) GetByEventID(ctx context.Context, eventID string) ([]*entity.Task, error) {
	if m.getByEventIDFunc != nil {
		return m.getByEventIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockTaskRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if m.countByEventIDFunc != nil {
		return m.countByEventIDFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

type mockBudgetItemRepo struct {
	createFunc         func(ctx context.Context, item *entity.BudgetItem) error
	getByIDFunc        func(ctx context.Context, id string) (*entity.BudgetItem, error)
	getByEventIDFunc   func(ctx context.Context, eventID string) ([]*entity.BudgetItem, error)
	countByEventIDFunc func(ctx context.Context, eventID string) (int, error)
	setApprovedFunc    func(ctx context.Context, id string, approved bool) error
	listAllFunc        func(ctx context.Context) ([]*entity.BudgetItem, error)
}

func (m *mockBudgetItemRepo) Create(ctx context.Context, item *entity.BudgetItem) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	return nil
}

func (m *mockBudgetItemRepo) GetByID(ctx context.Context, id string) (*entity.BudgetItem, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBudgetItemRepo) GetByEventID(ctx context.Context, eventID string) ([]*entity.BudgetItem, error) {
	if m.getByEventIDFunc != nil {
		return m.getByEventIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockBudgetItemRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if m.countByEventIDFunc != nil {
		return m.countByEventIDFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *mockBudgetItemRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	if m.setApprovedFunc != nil {
		return m.setApprovedFunc(ctx, id, approved)
	}
	return nil
}

func (m *mockBudgetItemRepo) ListAll(ctx context.Context) ([]*entity.BudgetItem, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

type mockApprovalRepo struct {
	createFunc         func(ctx context.Context, approval *entity.Approval) error
	getByIDFunc        func(ctx context.Context, id string) (*entity.Approval, error)
	getByEventIDFunc   func(ctx context.Context, eventID string) ([]*entity.Approval, error)
	listByStatusFunc   func(ctx context.Context, status entity.ApprovalStatus) ([]*entity.Approval, error)
	listResolvedFunc   func(ctx context.Context) ([]*entity.Approval, error)
	countByEventIDFunc func(ctx context.Context, eventID string) (int, error)
	resolveIfFunc      func(ctx context.Context, id string, status entity.ApprovalStatus, approverID string, respondedAt time.Time, notes string) (bool, error)
}

func (m *mockApprovalRepo) Create(ctx context.Context, approval *entity.Approval) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, approval)
	}
	return nil
}

func (m *mockApprovalRepo) GetByID(ctx context.Context, id string) (*entity.Approval, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockApprovalRepo) GetByEventID(ctx context.Context, eventID string) ([]*entity.Approval, error) {
	if m.getByEventIDFunc != nil {
		return m.getByEventIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockApprovalRepo) ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.Approval, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockApprovalRepo) ListResolved(ctx context.Context) ([]*entity.Approval, error) {
	if m.listResolvedFunc != nil {
		return m.listResolvedFunc(ctx)
	}
	return nil, nil
}

func (m *mockApprovalRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if m.countByEventIDFunc != nil {
		return m.countByEventIDFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *mockApprovalRepo) ResolveIf(ctx context.Context, id string, status entity.ApprovalStatus, approverID string, respondedAt time.Time, notes string) (bool, error) {
	if m.resolveIfFunc != nil {
		return m.resolveIfFunc(ctx, id, status, approverID, respondedAt, notes)
	}
	return true, nil
}

// mockTxManager runs the function directly, no real transaction
type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}
