package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrUserNotFound      = errors.New("user not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrIncidentNotFound  = errors.New("incident not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrSessionNotFound   = errors.New("session not found")

	// Access control errors
	ErrAccessDenied  = errors.New("admin access denied")
	ErrAdminDisabled = errors.New("admin area is disabled")

	// Request errors
	ErrUnknownEntity = errors.New("unknown entity")
	ErrNoFields      = errors.New("no fields to update")
	ErrNoSink        = errors.New("export destination is not configured")
)

// Context keys for error values
const (
	UserIDKey      = "user_id"
	ProjectIDKey   = "project_id"
	IncidentIDKey  = "incident_id"
	MilestoneIDKey = "milestone_id"
	SessionIDKey   = "session_id"
	EntityKey      = "entity"
)
