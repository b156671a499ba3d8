package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type IncidentUseCase struct {
	repo interfaces.Repository
}

func NewIncidentUseCase(repo interfaces.Repository) *IncidentUseCase {
	return &IncidentUseCase{repo: repo}
}

// IncidentFilter narrows the dashboard list. Empty sets match everything.
// The assignee "Unassigned" matches incidents without an assignee.
type IncidentFilter struct {
	Statuses  []types.IncidentStatus `json:"statuses"`
	Assignees []string               `json:"assignees"`
	Query     string                 `json:"query"`
}

func (f IncidentFilter) match(i *model.Incident) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if strings.EqualFold(string(s), string(i.Status)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Assignees) > 0 {
		found := false
		for _, a := range f.Assignees {
			if types.IsUnassigned(a) && types.IsUnassigned(i.AssignedMember) {
				found = true
				break
			}
			if a == i.AssignedMember {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return i.Matches(f.Query)
}

// List returns incidents newest first that pass filter.
func (uc *IncidentUseCase) List(ctx context.Context, filter IncidentFilter) ([]*model.Incident, error) {
	all, err := uc.repo.Incident().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}

	out := make([]*model.Incident, 0, len(all))
	for _, i := range all {
		if filter.match(i) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (uc *IncidentUseCase) Get(ctx context.Context, id int64) (*model.Incident, error) {
	i, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		return nil, incidentErr(err, id)
	}
	return i, nil
}

func (uc *IncidentUseCase) Create(ctx context.Context, f model.IncidentFields) (*model.Incident, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid incident")
	}
	if err := checkProjectRef(ctx, uc.repo, f.ProjectID); err != nil {
		return nil, err
	}

	i, err := uc.repo.Incident().Create(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident", goerr.V("inc_number", f.IncNumber))
	}
	return i, nil
}

// Update replaces every editable column of the incident.
func (uc *IncidentUseCase) Update(ctx context.Context, id int64, f model.IncidentFields) (*model.Incident, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid incident", goerr.V(IncidentIDKey, id))
	}
	if err := checkProjectRef(ctx, uc.repo, f.ProjectID); err != nil {
		return nil, err
	}

	i, err := uc.repo.Incident().Update(ctx, id, f)
	if err != nil {
		return nil, incidentErr(err, id)
	}
	return i, nil
}

func (uc *IncidentUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Incident().Delete(ctx, id); err != nil {
		return incidentErr(err, id)
	}
	return nil
}

// BulkUpdate applies u to every listed incident and returns how many rows
// changed. Unknown IDs are skipped.
func (uc *IncidentUseCase) BulkUpdate(ctx context.Context, ids []int64, u model.IncidentBulkUpdate) (int64, error) {
	if u.IsEmpty() {
		return 0, goerr.Wrap(ErrNoFields, "bulk update has no fields")
	}
	u = u.Normalize()
	if err := u.Validate(); err != nil {
		return 0, goerr.Wrap(err, "invalid bulk update")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := uc.repo.Incident().UpdateMany(ctx, ids, u)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to bulk update incidents", goerr.V("count", len(ids)))
	}
	return n, nil
}

// BulkDelete removes every listed incident and returns how many rows were
// removed.
func (uc *IncidentUseCase) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := uc.repo.Incident().DeleteMany(ctx, ids)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to bulk delete incidents", goerr.V("count", len(ids)))
	}
	return n, nil
}

func checkProjectRef(ctx context.Context, repo interfaces.Repository, projectID *int64) error {
	if projectID == nil {
		return nil
	}
	if _, err := repo.Project().Get(ctx, *projectID); err != nil {
		return projectErr(err, *projectID)
	}
	return nil
}

func incidentErr(err error, id int64) error {
	if errors.Is(err, model.ErrNotFound) {
		return goerr.Wrap(ErrIncidentNotFound, "incident not found", goerr.V(IncidentIDKey, id))
	}
	return goerr.Wrap(err, "incident operation failed", goerr.V(IncidentIDKey, id))
}
