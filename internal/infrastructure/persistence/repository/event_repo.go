package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/internal/domain/lifecycle"
	"github.com/planora/eventops/internal/infrastructure/persistence/sqlite"
)

// EventRepository implements port.EventRepository
type EventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, logger *zap.Logger) port.EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

const eventColumns = `
	id, title, description, category, start_date, end_date, location,
	status, priority, expected_participants, planned_budget, approved_budget,
	team_id, department_id, responsible_id, requester_id,
	created_at, updated_at
`

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (
			id, title, description, category, start_date, end_date, location,
			status, priority, expected_participants, planned_budget, approved_budget,
			team_id, department_id, responsible_id, requester_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.Status.String(),
		event.Priority.String(),
		nullableInt(event.ExpectedParticipants),
		nullableFloat(event.PlannedBudget),
		nullableFloat(event.ApprovedBudget),
		event.TeamID,
		event.DepartmentID,
		event.ResponsibleID,
		event.RequesterID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create event", zap.String("id", event.ID), zap.Error(err))
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	row := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id)
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get event", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// List retrieves events matching the filter, ordered by start date
func (r *EventRepository) List(ctx context.Context, filter port.EventFilter) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.TeamID != "" {
		conditions = append(conditions, "team_id = ?")
		args = append(args, filter.TeamID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY start_date ASC"

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// Update rewrites an event's descriptive fields
func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events SET
			title = ?, description = ?, category = ?, start_date = ?, end_date = ?,
			location = ?, priority = ?, expected_participants = ?,
			planned_budget = ?, approved_budget = ?,
			team_id = ?, department_id = ?, responsible_id = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Category,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.Priority.String(),
		nullableInt(event.ExpectedParticipants),
		nullableFloat(event.PlannedBudget),
		nullableFloat(event.ApprovedBudget),
		event.TeamID,
		event.DepartmentID,
		event.ResponsibleID,
		event.UpdatedAt,
		event.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update event", zap.String("id", event.ID), zap.Error(err))
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

// UpdateStatus updates only the lifecycle status
func (r *EventRepository) UpdateStatus(ctx context.Context, id string, status lifecycle.Status) error {
	query := `UPDATE events SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, status.String(), id)
	if err != nil {
		r.logger.Error("Failed to update event status",
			zap.String("id", id), zap.String("status", status.String()), zap.Error(err))
		return fmt.Errorf("failed to update event status: %w", err)
	}

	return nil
}

// Delete removes an event row
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = ?`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete event", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// CountByStatus returns event counts grouped by lifecycle status
func (r *EventRepository) CountByStatus(ctx context.Context) (map[lifecycle.Status]int, error) {
	query := `SELECT status, COUNT(*) FROM events GROUP BY status`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count events by status", zap.Error(err))
		return nil, fmt.Errorf("failed to count events by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[lifecycle.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[lifecycle.Status(status)] = count
	}

	return counts, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*entity.Event, error) {
	var event entity.Event
	var status, priority string
	var participants sql.NullInt64
	var planned, approved sql.NullFloat64

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Category,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&status,
		&priority,
		&participants,
		&planned,
		&approved,
		&event.TeamID,
		&event.DepartmentID,
		&event.ResponsibleID,
		&event.RequesterID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Status = lifecycle.Status(status)
	event.Priority = entity.Priority(priority)
	if participants.Valid {
		n := int(participants.Int64)
		event.ExpectedParticipants = &n
	}
	if planned.Valid {
		v := planned.Float64
		event.PlannedBudget = &v
	}
	if approved.Valid {
		v := approved.Float64
		event.ApprovedBudget = &v
	}

	return &event, nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// Verify interface compliance
var _ port.EventRepository = (*EventRepository)(nil)
