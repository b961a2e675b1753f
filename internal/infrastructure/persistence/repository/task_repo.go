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

// TaskRepository implements port.TaskRepository
type TaskRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB, logger *zap.Logger) port.TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

const taskColumns = `
	id, event_id, title, description, responsible_id, due_date,
	status, priority, completion_date, team_id, created_at
`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (
			id, event_id, title, description, responsible_id, due_date,
			status, priority, completion_date, team_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		task.ID,
		task.EventID,
		task.Title,
		task.Description,
		task.ResponsibleID,
		task.DueDate,
		task.Status.String(),
		task.Priority.String(),
		nullableTime(task.CompletionDate),
		task.TeamID,
		task.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create task", zap.String("id", task.ID), zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	row := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get task", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// GetByEventID retrieves the tasks of one event ordered by due date
func (r *TaskRepository) GetByEventID(ctx context.Context, eventID string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE event_id = ? ORDER BY due_date ASC`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, eventID)
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.String("event_id", eventID), zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// CountByEventID returns how many tasks an event has
func (r *TaskRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE event_id = ?`

	var count int
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, eventID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count tasks", zap.String("event_id", eventID), zap.Error(err))
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// Update rewrites a task row
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	query := `
		UPDATE tasks SET
			title = ?, description = ?, responsible_id = ?, due_date = ?,
			status = ?, priority = ?, completion_date = ?, team_id = ?
		WHERE id = ?
	`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.ResponsibleID,
		task.DueDate,
		task.Status.String(),
		task.Priority.String(),
		nullableTime(task.CompletionDate),
		task.TeamID,
		task.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.String("id", task.ID), zap.Error(err))
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var task entity.Task
	var status, priority string
	var completion sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.EventID,
		&task.Title,
		&task.Description,
		&task.ResponsibleID,
		&task.DueDate,
		&status,
		&priority,
		&completion,
		&task.TeamID,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = entity.TaskStatus(status)
	task.Priority = entity.Priority(priority)
	if completion.Valid {
		task.CompletionDate = &completion.Time
	}

	return &task, nil
}

func nullableTime(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// Verify interface compliance
var _ port.TaskRepository = (*TaskRepository)(nil)
