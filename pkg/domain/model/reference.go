package model

import "github.com/athelas-portal/athelas/pkg/domain/types"

// Reference carries the lookup tables and seed roster. It is loaded from the
// application config and falls back to built-in defaults.
type Reference struct {
	Teams        *types.TeamRegistry
	ProjectTypes []types.ProjectType
	Roster       []string
	RosterTeam   types.TeamCode
	SeedSamples  bool
}

// DefaultRoster is the user list seeded into an empty database.
func DefaultRoster() []string {
	return []string{
		"Joshua Ay-Ad",
		"Linda Chow",
		"Aaron Gunewardena",
		"Katherine Mollure",
		"Christine Antonio",
		"Annie Wongkovit",
		"Carla Santarromana",
	}
}

// DefaultReference returns the built-in reference tables.
func DefaultReference() *Reference {
	return &Reference{
		Teams:        types.NewTeamRegistry(nil),
		ProjectTypes: types.DefaultProjectTypes(),
		Roster:       DefaultRoster(),
		RosterTeam:   types.TeamBTS,
		SeedSamples:  true,
	}
}

// HasProjectType reports whether code is a configured project type.
func (r *Reference) HasProjectType(code types.ProjectTypeCode) bool {
	for _, t := range r.ProjectTypes {
		if t.Code == code {
			return true
		}
	}
	return false
}
