package types

// UpdateType labels an entry in a project's history.
type UpdateType string

const (
	UpdateCreated      UpdateType = "Created"
	UpdateStatusChange UpdateType = "Status Change"
	UpdateStatusUpdate UpdateType = "Status Update"
	UpdateTimeLogged   UpdateType = "Time Logged"
	UpdateStatusReport UpdateType = "Status Report"
)

func AllUpdateTypes() []UpdateType {
	return []UpdateType{
		UpdateCreated,
		UpdateStatusChange,
		UpdateStatusUpdate,
		UpdateTimeLogged,
		UpdateStatusReport,
	}
}

func (u UpdateType) String() string { return string(u) }

// TimeCategory classifies logged time.
type TimeCategory string

const (
	TimeDev     TimeCategory = "Dev"
	TimeMeeting TimeCategory = "Meeting"
	TimeDoc     TimeCategory = "Doc"
	TimeSupport TimeCategory = "Support"
	TimeOther   TimeCategory = "Other"
)

func AllTimeCategories() []TimeCategory {
	return []TimeCategory{TimeDev, TimeMeeting, TimeDoc, TimeSupport, TimeOther}
}

func (c TimeCategory) String() string { return string(c) }

// ParseTimeCategory parses s case-insensitively. Blank input yields Other.
func ParseTimeCategory(s string) (TimeCategory, error) {
	v, err := parseOptionalEnum("time category", s, AllTimeCategories())
	if err != nil {
		return "", err
	}
	if v == "" {
		return TimeOther, nil
	}
	return v, nil
}
