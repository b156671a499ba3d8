package model

import (
	"strings"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// User is a member of staff. Incidents and projects refer to users by name,
// time logs by ID.
type User struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Team      types.TeamCode `json:"team"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
}

// UserFields is the set of columns a user create or update may set.
type UserFields struct {
	Name     string         `json:"name"`
	Team     types.TeamCode `json:"team"`
	IsActive bool           `json:"is_active"`
}

// Normalize trims the name and upper-cases the team code.
func (f UserFields) Normalize() UserFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Team = types.TeamCode(strings.ToUpper(strings.TrimSpace(string(f.Team))))
	return f
}

// Validate checks required fields.
func (f UserFields) Validate() error {
	if f.Name == "" {
		return missing("name")
	}
	if f.Team == "" {
		return missing("team")
	}
	return nil
}

// UserNames returns the names of users in order.
func UserNames(users []*User) []string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return names
}
