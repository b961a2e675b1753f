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

// ProfileRepository implements port.ProfileRepository
type ProfileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, logger *zap.Logger) port.ProfileRepository {
	return &ProfileRepository{db: db, logger: logger}
}

// Create inserts a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	query := `INSERT INTO profiles (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		profile.ID, profile.Name, profile.Email, profile.Role, profile.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create profile", zap.String("id", profile.ID), zap.Error(err))
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT id, name, email, role, created_at FROM profiles WHERE id = ?`

	var p entity.Profile
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get profile", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// List retrieves all profiles ordered by name
func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	query := `SELECT id, name, email, role, created_at FROM profiles ORDER BY name ASC`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// Update rewrites a profile row
func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	query := `UPDATE profiles SET name = ?, email = ?, role = ? WHERE id = ?`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		profile.Name, profile.Email, profile.Role, profile.ID)
	if err != nil {
		r.logger.Error("Failed to update profile", zap.String("id", profile.ID), zap.Error(err))
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// TeamRepository implements port.TeamRepository
type TeamRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB, logger *zap.Logger) port.TeamRepository {
	return &TeamRepository{db: db, logger: logger}
}

// Create inserts a new team
func (r *TeamRepository) Create(ctx context.Context, team *entity.Team) error {
	query := `INSERT INTO teams (id, name, created_at) VALUES (?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, team.ID, team.Name, team.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create team", zap.String("id", team.ID), zap.Error(err))
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	query := `SELECT id, name, created_at FROM teams WHERE id = ?`

	var t entity.Team
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get team", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &t, nil
}

// List retrieves all teams ordered by name
func (r *TeamRepository) List(ctx context.Context) ([]*entity.Team, error) {
	query := `SELECT id, name, created_at FROM teams ORDER BY name ASC`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list teams", zap.Error(err))
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

// DepartmentRepository implements port.DepartmentRepository
type DepartmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *sql.DB, logger *zap.Logger) port.DepartmentRepository {
	return &DepartmentRepository{db: db, logger: logger}
}

// Create inserts a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *entity.Department) error {
	query := `INSERT INTO departments (id, name, created_at) VALUES (?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		department.ID, department.Name, department.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create department", zap.String("id", department.ID), zap.Error(err))
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	query := `SELECT id, name, created_at FROM departments WHERE id = ?`

	var d entity.Department
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get department", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &d, nil
}

// List retrieves all departments ordered by name
func (r *DepartmentRepository) List(ctx context.Context) ([]*entity.Department, error) {
	query := `SELECT id, name, created_at FROM departments ORDER BY name ASC`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list departments", zap.Error(err))
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

// TeamMembershipRepository implements port.TeamMembershipRepository
type TeamMembershipRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTeamMembershipRepository creates a new team membership repository
func NewTeamMembershipRepository(db *sql.DB, logger *zap.Logger) port.TeamMembershipRepository {
	return &TeamMembershipRepository{db: db, logger: logger}
}

// Create inserts a new membership
func (r *TeamMembershipRepository) Create(ctx context.Context, membership *entity.TeamMembership) error {
	query := `INSERT INTO team_memberships (id, team_id, profile_id, role, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		membership.ID, membership.TeamID, membership.ProfileID, membership.Role, membership.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create membership", zap.String("id", membership.ID), zap.Error(err))
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// GetByTeamID retrieves the memberships of one team
func (r *TeamMembershipRepository) GetByTeamID(ctx context.Context, teamID string) ([]*entity.TeamMembership, error) {
	query := `SELECT id, team_id, profile_id, role, created_at FROM team_memberships WHERE team_id = ?`
	return r.queryMemberships(ctx, query, teamID)
}

// GetByProfileID retrieves the memberships of one profile
func (r *TeamMembershipRepository) GetByProfileID(ctx context.Context, profileID string) ([]*entity.TeamMembership, error) {
	query := `SELECT id, team_id, profile_id, role, created_at FROM team_memberships WHERE profile_id = ?`
	return r.queryMemberships(ctx, query, profileID)
}

func (r *TeamMembershipRepository) queryMemberships(ctx context.Context, query string, args ...interface{}) ([]*entity.TeamMembership, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list memberships", zap.Error(err))
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*entity.TeamMembership
	for rows.Next() {
		var m entity.TeamMembership
		if err := rows.Scan(&m.ID, &m.TeamID, &m.ProfileID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}
	return memberships, rows.Err()
}

// Verify interface compliance
var (
	_ port.ProfileRepository        = (*ProfileRepository)(nil)
	_ port.TeamRepository           = (*TeamRepository)(nil)
	_ port.DepartmentRepository     = (*DepartmentRepository)(nil)
	_ port.TeamMembershipRepository = (*TeamMembershipRepository)(nil)
)
