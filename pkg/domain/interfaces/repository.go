package interfaces

import "context"

// Repository is the persistence boundary. Every method runs in its own
// scope; RunInTx groups several calls so they commit or roll back together.
type Repository interface {
	User() UserRepository
	Project() ProjectRepository
	Incident() IncidentRepository
	Milestone() MilestoneRepository
	StatusReport() StatusReportRepository
	TimeLog() TimeLogRepository
	ProjectUpdate() ProjectUpdateRepository
	Report() ReportRepository

	// RunInTx calls fn with a repository bound to a single transaction.
	// The transaction is committed when fn returns nil.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error

	Close() error
}
