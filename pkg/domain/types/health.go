package types

// Health is a traffic-light rating used in status reports.
type Health string

const (
	HealthOnTrack    Health = "On Track"
	HealthAtRisk     Health = "At Risk"
	HealthOffTrack   Health = "Off Track"
	HealthNotStarted Health = "Not Started"
	HealthCompleted  Health = "Completed"
)

func AllHealths() []Health {
	return []Health{HealthOnTrack, HealthAtRisk, HealthOffTrack, HealthNotStarted, HealthCompleted}
}

func (h Health) IsValid() bool {
	switch h {
	case HealthOnTrack, HealthAtRisk, HealthOffTrack, HealthNotStarted, HealthCompleted:
		return true
	default:
		return false
	}
}

// Normalize treats an empty rating as Not Started.
func (h Health) Normalize() Health {
	if h == "" {
		return HealthNotStarted
	}
	return h
}

func (h Health) String() string { return string(h) }

// Icon is the marker shown next to a rating in overview tables.
func (h Health) Icon() string {
	switch h {
	case HealthOnTrack:
		return "🟢"
	case HealthAtRisk:
		return "🟡"
	case HealthOffTrack:
		return "🔴"
	case HealthCompleted:
		return "🔵"
	default:
		return "⚪"
	}
}

// ParseHealth parses s case-insensitively. Blank input yields Not Started.
func ParseHealth(s string) (Health, error) {
	v, err := parseOptionalEnum("health", s, AllHealths())
	if err != nil {
		return "", err
	}
	return v.Normalize(), nil
}

// MilestoneStatus tracks a single milestone.
type MilestoneStatus string

const (
	MilestoneOnTrack   MilestoneStatus = "On Track"
	MilestoneAtRisk    MilestoneStatus = "At Risk"
	MilestoneOffTrack  MilestoneStatus = "Off Track"
	MilestoneCompleted MilestoneStatus = "Completed"
)

func AllMilestoneStatuses() []MilestoneStatus {
	return []MilestoneStatus{MilestoneOnTrack, MilestoneAtRisk, MilestoneOffTrack, MilestoneCompleted}
}

func (s MilestoneStatus) String() string { return string(s) }

// ParseMilestoneStatus parses s case-insensitively. Blank input yields On Track.
func ParseMilestoneStatus(s string) (MilestoneStatus, error) {
	v, err := parseOptionalEnum("milestone status", s, AllMilestoneStatuses())
	if err != nil {
		return "", err
	}
	if v == "" {
		return MilestoneOnTrack, nil
	}
	return v, nil
}
