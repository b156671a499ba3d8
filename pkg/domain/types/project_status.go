package types

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "Planning"
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusOnHold    ProjectStatus = "On Hold"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusCancelled ProjectStatus = "Cancelled"
)

// AllProjectStatuses returns all valid project statuses
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectStatusPlanning,
		ProjectStatusActive,
		ProjectStatusOnHold,
		ProjectStatusCompleted,
		ProjectStatusCancelled,
	}
}

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning,
		ProjectStatusActive,
		ProjectStatusOnHold,
		ProjectStatusCompleted,
		ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

// Normalize treats an empty status as Planning.
func (s ProjectStatus) Normalize() ProjectStatus {
	if s == "" {
		return ProjectStatusPlanning
	}
	return s
}

func (s ProjectStatus) String() string {
	return string(s)
}

// ParseProjectStatus parses s case-insensitively. Blank input yields Planning.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	v, err := parseOptionalEnum("project status", s, AllProjectStatuses())
	if err != nil {
		return "", err
	}
	return v.Normalize(), nil
}
