package entity

import "time"

// Profile is a person known to the system, referenced by id from events,
// tasks and approvals. Authentication itself is external.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Team groups events and people for scoping.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Department is the organizational unit an event belongs to.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMembership links a profile to a team.
type TeamMembership struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	ProfileID string    `json:"profile_id"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
