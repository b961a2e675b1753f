package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planora/eventops/internal/application/port"
	"github.com/planora/eventops/internal/domain/entity"
	"github.com/planora/eventops/pkg/utils"
)

// DirectoryService manages the people and organizational units that events
// reference. Authentication itself is external; this is the lookup data.
type DirectoryService interface {
	CreateProfile(ctx context.Context, name, email, role string) (*entity.Profile, error)
	GetProfile(ctx context.Context, id string) (*entity.Profile, error)
	ListProfiles(ctx context.Context) ([]*entity.Profile, error)

	CreateTeam(ctx context.Context, name string) (*entity.Team, error)
	ListTeams(ctx context.Context) ([]*entity.Team, error)

	CreateDepartment(ctx context.Context, name string) (*entity.Department, error)
	ListDepartments(ctx context.Context) ([]*entity.Department, error)

	AddTeamMember(ctx context.Context, teamID, profileID, role string) (*entity.TeamMembership, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]*entity.TeamMembership, error)
}

type directoryServiceImpl struct {
	profileRepo    port.ProfileRepository
	teamRepo       port.TeamRepository
	departmentRepo port.DepartmentRepository
	membershipRepo port.TeamMembershipRepository
	logger         Logger
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(
	profileRepo port.ProfileRepository,
	teamRepo port.TeamRepository,
	departmentRepo port.DepartmentRepository,
	membershipRepo port.TeamMembershipRepository,
	logger Logger,
) DirectoryService {
	return &directoryServiceImpl{
		profileRepo:    profileRepo,
		teamRepo:       teamRepo,
		departmentRepo: departmentRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// CreateProfile registers a person
func (s *directoryServiceImpl) CreateProfile(ctx context.Context, name, email, role string) (*entity.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", entity.ErrValidation)
	}
	if err := utils.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	profile := &entity.Profile{
		ID:        uuid.NewString(),
		Name:      utils.SanitizeString(strings.TrimSpace(name)),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.logger.Error("Failed to create profile", "email", email, "error", err)
		return nil, entity.NewPersistenceError("create profile", err)
	}

	s.logger.Info("Profile created", "profile_id", profile.ID)
	return profile, nil
}

// GetProfile retrieves a profile by ID
func (s *directoryServiceImpl) GetProfile(ctx context.Context, id string) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.NewPersistenceError("get profile", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile %s", entity.ErrNotFound, id)
	}
	return profile, nil
}

// ListProfiles retrieves all profiles
func (s *directoryServiceImpl) ListProfiles(ctx context.Context) ([]*entity.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, entity.NewPersistenceError("list profiles", err)
	}
	return profiles, nil
}

// CreateTeam registers a team
func (s *directoryServiceImpl) CreateTeam(ctx context.Context, name string) (*entity.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", entity.ErrValidation)
	}

	team := &entity.Team{
		ID:        uuid.NewString(),
		Name:      utils.SanitizeString(strings.TrimSpace(name)),
		CreatedAt: time.Now(),
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		s.logger.Error("Failed to create team", "name", name, "error", err)
		return nil, entity.NewPersistenceError("create team", err)
	}
	return team, nil
}

// ListTeams retrieves all teams
func (s *directoryServiceImpl) ListTeams(ctx context.Context) ([]*entity.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, entity.NewPersistenceError("list teams", err)
	}
	return teams, nil
}

// CreateDepartment registers a department
func (s *directoryServiceImpl) CreateDepartment(ctx context.Context, name string) (*entity.Department, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", entity.ErrValidation)
	}

	department := &entity.Department{
		ID:        uuid.NewString(),
		Name:      utils.SanitizeString(strings.TrimSpace(name)),
		CreatedAt: time.Now(),
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		s.logger.Error("Failed to create department", "name", name, "error", err)
		return nil, entity.NewPersistenceError("create department", err)
	}
	return department, nil
}

// ListDepartments retrieves all departments
func (s *directoryServiceImpl) ListDepartments(ctx context.Context) ([]*entity.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, entity.NewPersistenceError("list departments", err)
	}
	return departments, nil
}

// AddTeamMember links a profile to a team
func (s *directoryServiceImpl) AddTeamMember(ctx context.Context, teamID, profileID, role string) (*entity.TeamMembership, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, entity.NewPersistenceError("get team", err)
	}
	if team == nil {
		return nil, fmt.Errorf("%w: team %s", entity.ErrNotFound, teamID)
	}
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, entity.NewPersistenceError("get profile", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile %s", entity.ErrNotFound, profileID)
	}

	membership := &entity.TeamMembership{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		ProfileID: profileID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		s.logger.Error("Failed to add team member", "team_id", teamID, "profile_id", profileID, "error", err)
		return nil, entity.NewPersistenceError("create membership", err)
	}

	s.logger.Info("Team member added", "team_id", teamID, "profile_id", profileID)
	return membership, nil
}

// ListTeamMembers retrieves one team's memberships
func (s *directoryServiceImpl) ListTeamMembers(ctx context.Context, teamID string) ([]*entity.TeamMembership, error) {
	memberships, err := s.membershipRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, entity.NewPersistenceError("list memberships", err)
	}
	return memberships, nil
}
