package interfaces

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
)

// IncidentRepository lists incidents newest first.
type IncidentRepository interface {
	List(ctx context.Context) ([]*model.Incident, error)
	Get(ctx context.Context, id int64) (*model.Incident, error)
	Create(ctx context.Context, f model.IncidentFields) (*model.Incident, error)
	Update(ctx context.Context, id int64, f model.IncidentFields) (*model.Incident, error)
	Delete(ctx context.Context, id int64) error

	// UpdateMany applies u to every listed incident and returns the number of
	// rows changed. Unknown IDs are ignored.
	UpdateMany(ctx context.Context, ids []int64, u model.IncidentBulkUpdate) (int64, error)

	// DeleteMany removes every listed incident and returns the number of
	// rows removed. Unknown IDs are ignored.
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
}
