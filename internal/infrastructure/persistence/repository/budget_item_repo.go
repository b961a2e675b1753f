package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/infrastructure/persistence/sqlite"
)

// BudgetItemRepository implements port.BudgetItemRepository
type BudgetItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBudgetItemRepository creates a new budget item repository
func NewBudgetItemRepository(db *sql.DB, logger *zap.Logger) port.BudgetItemRepository {
	return &BudgetItemRepository{
		db:     db,
		logger: logger,
	}
}

const budgetItemColumns = `
	id, event_id, category, description, supplier, quantity, unit_price,
	stored_total, approved, team_id, created_at
`

// Create inserts a new budget line
func (r *BudgetItemRepository) Create(ctx context.Context, item *entity.BudgetItem) error {
	query := `
		INSERT INTO budget_items (
			id, event_id, category, description, supplier, quantity, unit_price,
			stored_total, approved, team_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		item.ID,
		item.EventID,
		item.Category,
		item.Description,
		item.Supplier,
		item.Quantity,
		item.UnitPrice,
		nullableFloat(item.StoredTotal),
		item.Approved,
		item.TeamID,
		item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create budget item", zap.String("id", item.ID), zap.Error(err))
		return fmt.Errorf("failed to create budget item: %w", err)
	}

	return nil
}

// GetByID retrieves a budget line by ID
func (r *BudgetItemRepository) GetByID(ctx context.Context, id string) (*entity.BudgetItem, error) {
	query := `SELECT ` + budgetItemColumns + ` FROM budget_items WHERE id = ?`

	row := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id)
	item, err := scanBudgetItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get budget item", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get budget item: %w", err)
	}

	return item, nil
}

// GetByEventID retrieves the budget lines of one event
func (r *BudgetItemRepository) GetByEventID(ctx context.Context, eventID string) ([]*entity.BudgetItem, error) {
	query := `SELECT ` + budgetItemColumns + ` FROM budget_items WHERE event_id = ? ORDER BY created_at ASC`
	return r.queryItems(ctx, query, eventID)
}

// ListAll retrieves every budget line
func (r *BudgetItemRepository) ListAll(ctx context.Context) ([]*entity.BudgetItem, error) {
	query := `SELECT ` + budgetItemColumns + ` FROM budget_items ORDER BY created_at ASC`
	return r.queryItems(ctx, query)
}

func (r *BudgetItemRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*entity.BudgetItem, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list budget items", zap.Error(err))
		return nil, fmt.Errorf("failed to list budget items: %w", err)
	}
	defer rows.Close()

	var items []*entity.BudgetItem
	for rows.Next() {
		item, err := scanBudgetItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// CountByEventID returns how many budget lines an event has
func (r *BudgetItemRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM budget_items WHERE event_id = ?`

	var count int
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, eventID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count budget items", zap.String("event_id", eventID), zap.Error(err))
		return 0, fmt.Errorf("failed to count budget items: %w", err)
	}

	return count, nil
}

// SetApproved toggles the approved flag
func (r *BudgetItemRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	query := `UPDATE budget_items SET approved = ? WHERE id = ?`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, approved, id)
	if err != nil {
		r.logger.Error("Failed to set budget item approval", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to set budget item approval: %w", err)
	}

	return nil
}

func scanBudgetItem(row rowScanner) (*entity.BudgetItem, error) {
	var item entity.BudgetItem
	var storedTotal sql.NullFloat64

	err := row.Scan(
		&item.ID,
		&item.EventID,
		&item.Category,
		&item.Description,
		&item.Supplier,
		&item.Quantity,
		&item.UnitPrice,
		&storedTotal,
		&item.Approved,
		&item.TeamID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if storedTotal.Valid {
		v := storedTotal.Float64
		item.StoredTotal = &v
	}

	return &item, nil
}

// Verify interface compliance
var _ port.BudgetItemRepository = (*BudgetItemRepository)(nil)
