package types

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TeamCode is the short organisational unit code used as the first segment
// of a project code, e.g. "HOS" in "HOS-25-0101".
type TeamCode string

const (
	TeamAOP TeamCode = "AOP"
	TeamBPF TeamCode = "BPF"
	TeamBTS TeamCode = "BTS"
	TeamCAD TeamCode = "CAD"
	TeamCLX TeamCode = "CLX"
	TeamDME TeamCode = "DME"
	TeamEXC TeamCode = "EXC"
	TeamHHC TeamCode = "HHC"
	TeamHOS TeamCode = "HOS"
	TeamMTS TeamCode = "MTS"
	TeamPBI TeamCode = "PBI"
	TeamRMH TeamCode = "RMH"

	// TeamUnknown is reported when a project code carries no usable prefix.
	TeamUnknown TeamCode = "UNK"
)

var teamCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,7}$`)

// Validate checks the code shape. Membership in a registry is checked by
// TeamRegistry.
func (t TeamCode) Validate() error {
	if t == "" {
		return goerr.New("team code cannot be empty")
	}
	if !teamCodePattern.MatchString(string(t)) {
		return goerr.New("team code must be 2-8 uppercase alphanumerics", goerr.V("code", t))
	}
	return nil
}

func (t TeamCode) String() string {
	return string(t)
}

// Team is a code/name pair.
type Team struct {
	Code TeamCode `json:"code"`
	Name string   `json:"name"`
}

// DefaultTeams returns the built-in team table.
func DefaultTeams() []Team {
	return []Team{
		{Code: TeamAOP, Name: "Agency Operations"},
		{Code: TeamBPF, Name: "Business Performance"},
		{Code: TeamBTS, Name: "Business and Technology Solutions"},
		{Code: TeamCAD, Name: "Community Agency Division"},
		{Code: TeamCLX, Name: "Clinical Excellence"},
		{Code: TeamDME, Name: "Durable Medical Equipment"},
		{Code: TeamEXC, Name: "Executives"},
		{Code: TeamHHC, Name: "Home Health"},
		{Code: TeamHOS, Name: "Hospice"},
		{Code: TeamMTS, Name: "Medical Transportation Services"},
		{Code: TeamPBI, Name: "Prebilling"},
		{Code: TeamRMH, Name: "Referral Management Hub"},
	}
}

// TeamRegistry resolves team codes to display names, preserving order.
type TeamRegistry struct {
	teams []Team
	index map[TeamCode]string
}

// NewTeamRegistry builds a registry. An empty list yields DefaultTeams.
func NewTeamRegistry(teams []Team) *TeamRegistry {
	if len(teams) == 0 {
		teams = DefaultTeams()
	}
	r := &TeamRegistry{
		teams: make([]Team, len(teams)),
		index: make(map[TeamCode]string, len(teams)),
	}
	copy(r.teams, teams)
	for _, t := range teams {
		r.index[t.Code] = t.Name
	}
	return r
}

// Teams returns the registered teams in declaration order.
func (r *TeamRegistry) Teams() []Team {
	out := make([]Team, len(r.teams))
	copy(out, r.teams)
	return out
}

// Has reports whether code is registered. Matching is case-insensitive.
func (r *TeamRegistry) Has(code string) bool {
	_, ok := r.index[TeamCode(strings.ToUpper(strings.TrimSpace(code)))]
	return ok
}

// Name returns the display name for code, or "Unknown".
func (r *TeamRegistry) Name(code TeamCode) string {
	if name, ok := r.index[code]; ok {
		return name
	}
	return "Unknown"
}

// TeamOfProjectCode extracts the team segment of a project code. A code
// without any segment yields TeamUnknown.
func TeamOfProjectCode(projectCode string) TeamCode {
	head, _, _ := strings.Cut(strings.TrimSpace(projectCode), "-")
	if head == "" {
		return TeamUnknown
	}
	return TeamCode(head)
}
