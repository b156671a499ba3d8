package types

// SourceCategory is the channel an incident was reported through.
type SourceCategory string

const (
	SourceEmail SourceCategory = "Email"
	SourceChat  SourceCategory = "Chat"
)

func AllSourceCategories() []SourceCategory {
	return []SourceCategory{SourceEmail, SourceChat}
}

func (s SourceCategory) String() string { return string(s) }

// ParseSourceCategory accepts blank input as "not set".
func ParseSourceCategory(s string) (SourceCategory, error) {
	return parseOptionalEnum("source category", s, AllSourceCategories())
}

// IssueType classifies an incident.
type IssueType string

const (
	IssueHardware  IssueType = "Hardware"
	IssueSoftware  IssueType = "Software"
	IssueNetwork   IssueType = "Network"
	IssueAccess    IssueType = "Access/Permissions"
	IssueWorkflow  IssueType = "Workflow"
	IssueTraining  IssueType = "Training"
	IssueDataError IssueType = "Data Error"
)

func AllIssueTypes() []IssueType {
	return []IssueType{
		IssueHardware,
		IssueSoftware,
		IssueNetwork,
		IssueAccess,
		IssueWorkflow,
		IssueTraining,
		IssueDataError,
	}
}

func (t IssueType) String() string { return string(t) }

// ParseIssueType accepts blank input as "not set".
func ParseIssueType(s string) (IssueType, error) {
	return parseOptionalEnum("issue type", s, AllIssueTypes())
}

// Workaround records whether a workaround exists for an incident.
type Workaround string

const (
	WorkaroundYes     Workaround = "Yes"
	WorkaroundNo      Workaround = "No"
	WorkaroundPending Workaround = "Pending"
)

func AllWorkarounds() []Workaround {
	return []Workaround{WorkaroundYes, WorkaroundNo, WorkaroundPending}
}

func (w Workaround) String() string { return string(w) }

// ParseWorkaround accepts blank input as "not set".
func ParseWorkaround(s string) (Workaround, error) {
	return parseOptionalEnum("workaround", s, AllWorkarounds())
}

// Unassigned is the placeholder assignee shown for incidents nobody owns.
// It is stored as an empty string.
const Unassigned = "Unassigned"

// IsUnassigned reports whether an assignee value means "nobody".
func IsUnassigned(assignee string) bool {
	return assignee == "" || assignee == Unassigned
}
