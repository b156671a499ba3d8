package interfaces

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
)

// ReportRepository runs read-only aggregations, recomputed on every call.
type ReportRepository interface {
	IncidentCounts(ctx context.Context) (*model.IncidentCounts, error)
	TimeSummary(ctx context.Context) (*model.TimeSummary, error)

	// UserHours returns the total hours logged by one user.
	UserHours(ctx context.Context, userID int64) (float64, error)
}
