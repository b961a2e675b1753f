package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/infrastructure/persistence/sqlite"
)

// ApprovalRepository implements port.ApprovalRepository
type ApprovalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalRepository creates a new approval repository
func NewApprovalRepository(db *sql.DB, logger *zap.Logger) port.ApprovalRepository {
	return &ApprovalRepository{
		db:     db,
		logger: logger,
	}
}

const approvalColumns = `
	id, event_id, kind, status, requester_id, approver_id,
	requested_at, responded_at, notes, team_id
`

// Create inserts a new approval request
func (r *ApprovalRepository) Create(ctx context.Context, approval *entity.Approval) error {
	query := `
		INSERT INTO approvals (
			id, event_id, kind, status, requester_id, approver_id,
			requested_at, responded_at, notes, team_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		approval.ID,
		approval.EventID,
		string(approval.Kind),
		string(approval.Status),
		approval.RequesterID,
		nullableString(approval.ApproverID),
		approval.RequestedAt,
		nullableTime(approval.RespondedAt),
		approval.Notes,
		approval.TeamID,
	)
	if err != nil {
		r.logger.Error("Failed to create approval", zap.String("id", approval.ID), zap.Error(err))
		return fmt.Errorf("failed to create approval: %w", err)
	}

	return nil
}

// GetByID retrieves an approval by ID
func (r *ApprovalRepository) GetByID(ctx context.Context, id string) (*entity.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE id = ?`

	row := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id)
	approval, err := scanApproval(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get approval", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}

	return approval, nil
}

// GetByEventID retrieves the approvals of one event, newest request first
func (r *ApprovalRepository) GetByEventID(ctx context.Context, eventID string) ([]*entity.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE event_id = ? ORDER BY requested_at DESC`
	return r.queryApprovals(ctx, query, eventID)
}

// ListByStatus retrieves one status partition, newest request first
func (r *ApprovalRepository) ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE status = ? ORDER BY requested_at DESC`
	return r.queryApprovals(ctx, query, string(status))
}

// ListResolved retrieves every approved or rejected approval
func (r *ApprovalRepository) ListResolved(ctx context.Context) ([]*entity.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE status != ?`
	return r.queryApprovals(ctx, query, string(entity.ApprovalStatusPending))
}

// CountByEventID returns how many approvals reference an event
func (r *ApprovalRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM approvals WHERE event_id = ?`

	var count int
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, eventID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count approvals", zap.String("event_id", eventID), zap.Error(err))
		return 0, fmt.Errorf("failed to count approvals: %w", err)
	}

	return count, nil
}

// ResolveIf records a decision only while the row is still pending. The
// status guard in the WHERE clause is what makes concurrent double decisions
// lose instead of silently overwriting each other.
func (r *ApprovalRepository) ResolveIf(ctx context.Context, id string, status entity.ApprovalStatus, approverID string, respondedAt time.Time, notes string) (bool, error) {
	query := `
		UPDATE approvals
		SET status = ?, approver_id = ?, responded_at = ?, notes = ?
		WHERE id = ? AND status = ?
	`

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		string(status),
		approverID,
		respondedAt,
		notes,
		id,
		string(entity.ApprovalStatusPending),
	)
	if err != nil {
		r.logger.Error("Failed to resolve approval", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to resolve approval: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r *ApprovalRepository) queryApprovals(ctx context.Context, query string, args ...interface{}) ([]*entity.Approval, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list approvals", zap.Error(err))
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var approvals []*entity.Approval
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		approvals = append(approvals, approval)
	}

	return approvals, rows.Err()
}

func scanApproval(row rowScanner) (*entity.Approval, error) {
	var approval entity.Approval
	var kind, status string
	var approverID sql.NullString
	var respondedAt sql.NullTime

	err := row.Scan(
		&approval.ID,
		&approval.EventID,
		&kind,
		&status,
		&approval.RequesterID,
		&approverID,
		&approval.RequestedAt,
		&respondedAt,
		&approval.Notes,
		&approval.TeamID,
	)
	if err != nil {
		return nil, err
	}

	approval.Kind = entity.ApprovalKind(kind)
	approval.Status = entity.ApprovalStatus(status)
	if approverID.Valid {
		approval.ApproverID = &approverID.String
	}
	if respondedAt.Valid {
		approval.RespondedAt = &respondedAt.Time
	}

	return &approval, nil
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// Verify interface compliance
var _ port.ApprovalRepository = (*ApprovalRepository)(nil)
