package types

// IncidentStatus represents the handling state of an incident. Any status may
// follow any other.
type IncidentStatus string

const (
	IncidentStatusNew        IncidentStatus = "New"
	IncidentStatusInProgress IncidentStatus = "In Progress"
	IncidentStatusOnHold     IncidentStatus = "On Hold"
	IncidentStatusResolved   IncidentStatus = "Resolved"
	IncidentStatusClosed     IncidentStatus = "Closed"
)

// AllIncidentStatuses returns all valid incident statuses
func AllIncidentStatuses() []IncidentStatus {
	return []IncidentStatus{
		IncidentStatusNew,
		IncidentStatusInProgress,
		IncidentStatusOnHold,
		IncidentStatusResolved,
		IncidentStatusClosed,
	}
}

// IsValid checks if the incident status is valid
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusNew,
		IncidentStatusInProgress,
		IncidentStatusOnHold,
		IncidentStatusResolved,
		IncidentStatusClosed:
		return true
	default:
		return false
	}
}

// IsActive reports whether the incident still needs work. Unknown and empty
// statuses count as active.
func (s IncidentStatus) IsActive() bool {
	return s != IncidentStatusResolved && s != IncidentStatusClosed
}

// Normalize treats an empty status as New.
func (s IncidentStatus) Normalize() IncidentStatus {
	if s == "" {
		return IncidentStatusNew
	}
	return s
}

func (s IncidentStatus) String() string {
	return string(s)
}

// ParseIncidentStatus parses s case-insensitively. Blank input yields New.
func ParseIncidentStatus(s string) (IncidentStatus, error) {
	v, err := parseOptionalEnum("incident status", s, AllIncidentStatuses())
	if err != nil {
		return "", err
	}
	return v.Normalize(), nil
}
