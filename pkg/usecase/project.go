package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/utils/querycache"
	"github.com/m-mizutani/goerr/v2"
)

type ProjectUseCase struct {
	repo  interfaces.Repository
	ref   *model.Reference
	cache *querycache.Cache
	now   func() time.Time
}

func NewProjectUseCase(repo interfaces.Repository, ref *model.Reference, cache *querycache.Cache, now func() time.Time) *ProjectUseCase {
	if ref == nil {
		ref = model.DefaultReference()
	}
	if now == nil {
		now = time.Now
	}
	return &ProjectUseCase{
		repo:  repo,
		ref:   ref,
		cache: cache,
		now:   now,
	}
}

// List returns projects newest first, served from the read cache. A nil
// status lists every project.
func (uc *ProjectUseCase) List(ctx context.Context, status *types.ProjectStatus) ([]*model.Project, error) {
	key := "all"
	var opts []interfaces.ListProjectOption
	if status != nil {
		key = "status/" + string(*status)
		opts = append(opts, interfaces.WithProjectStatus(*status))
	}

	projects, err := querycache.Get(ctx, uc.cache, projectsNamespace, key, func(ctx context.Context) ([]*model.Project, error) {
		return uc.repo.Project().List(ctx, opts...)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	return projects, nil
}

func (uc *ProjectUseCase) Get(ctx context.Context, id int64) (*model.Project, error) {
	p, err := uc.repo.Project().Get(ctx, id)
	if err != nil {
		return nil, projectErr(err, id)
	}
	return p, nil
}

// GetByCode returns nil, nil when no project has code.
func (uc *ProjectUseCase) GetByCode(ctx context.Context, code string) (*model.Project, error) {
	p, err := uc.repo.Project().GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project by code", goerr.V("code", code))
	}
	return p, nil
}

// NextCode proposes the next free code for team, type and year; a zero year
// means the current one. Codes freed by deletion are reused only when they
// are above the highest code in use.
func (uc *ProjectUseCase) NextCode(ctx context.Context, team types.TeamCode, projectType types.ProjectTypeCode, year int) (string, error) {
	if year == 0 {
		year = uc.now().Year()
	}
	return nextCode(ctx, uc.repo, uc.ref, team, projectType, year)
}

func nextCode(ctx context.Context, repo interfaces.Repository, ref *model.Reference, team types.TeamCode, projectType types.ProjectTypeCode, year int) (string, error) {
	team = types.TeamCode(strings.ToUpper(strings.TrimSpace(string(team))))
	if !ref.Teams.Has(string(team)) {
		return "", goerr.Wrap(model.ErrInvalidValue, "unknown team", goerr.V(model.FieldKey, "team"), goerr.V(model.ValueKey, team))
	}
	if !ref.HasProjectType(projectType) {
		return "", goerr.Wrap(model.ErrInvalidValue, "unknown project type", goerr.V(model.FieldKey, "project_type"), goerr.V(model.ValueKey, projectType))
	}

	prefix, err := model.ProjectCodePrefix(team, projectType, year)
	if err != nil {
		return "", err
	}
	codes, err := repo.Project().ListCodes(ctx, prefix)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list project codes", goerr.V("prefix", prefix))
	}
	return model.NextProjectCode(prefix, codes), nil
}

// CreateProjectInput describes a new project. When Code is empty it is
// generated from Team, Type and Year; a zero Year means the current year.
type CreateProjectInput struct {
	Code   string                `json:"project_code"`
	Team   types.TeamCode        `json:"team"`
	Type   types.ProjectTypeCode `json:"project_type"`
	Year   int                   `json:"year"`
	Fields model.ProjectFields   `json:"fields"`
}

// Create inserts the project and its "Created" history entry together.
func (uc *ProjectUseCase) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	f := in.Fields.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid project")
	}

	var created *model.Project
	err := uc.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
		code := strings.TrimSpace(in.Code)
		if code == "" {
			year := in.Year
			if year == 0 {
				year = uc.now().Year()
			}
			var err error
			if code, err = nextCode(ctx, tx, uc.ref, in.Team, in.Type, year); err != nil {
				return err
			}
		}
		if err := model.ValidateProjectCode(code); err != nil {
			return err
		}

		p, err := tx.Project().Create(ctx, code, f)
		if err != nil {
			return goerr.Wrap(err, "failed to create project", goerr.V("code", code))
		}

		actor := f.ProjectManager
		if actor == "" {
			actor = model.SystemActor
		}
		if _, err := tx.ProjectUpdate().Create(ctx, p.ID, model.ProjectUpdateFields{
			Type:     types.UpdateCreated,
			UserName: actor,
			Text:     "Project created: " + p.Name,
		}); err != nil {
			return goerr.Wrap(err, "failed to record project creation", goerr.V(ProjectIDKey, p.ID))
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(projectsNamespace)
	return created, nil
}

// Update replaces the editable fields. A status change is recorded in the
// project history under actor, or "System" when actor is empty.
func (uc *ProjectUseCase) Update(ctx context.Context, id int64, f model.ProjectFields, actor string) (*model.Project, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid project", goerr.V(ProjectIDKey, id))
	}
	if actor == "" {
		actor = model.SystemActor
	}

	var updated *model.Project
	err := uc.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
		current, err := tx.Project().Get(ctx, id)
		if err != nil {
			return projectErr(err, id)
		}

		if current.Status != f.Status {
			if _, err := tx.ProjectUpdate().Create(ctx, id, model.ProjectUpdateFields{
				Type:     types.UpdateStatusChange,
				UserName: actor,
				Text:     "Status: " + string(current.Status) + " -> " + string(f.Status),
				OldValue: string(current.Status),
				NewValue: string(f.Status),
			}); err != nil {
				return goerr.Wrap(err, "failed to record status change", goerr.V(ProjectIDKey, id))
			}
		}

		updated, err = tx.Project().Update(ctx, id, f)
		if err != nil {
			return projectErr(err, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(projectsNamespace)
	return updated, nil
}

// Delete removes the project with its milestones, reports, time logs and
// history. Incidents linked to it keep their project id.
func (uc *ProjectUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Project().Delete(ctx, id); err != nil {
		return projectErr(err, id)
	}
	uc.cache.Invalidate(projectsNamespace)
	return nil
}

// History returns the project's history newest first.
func (uc *ProjectUseCase) History(ctx context.Context, id int64) ([]*model.ProjectUpdate, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}
	history, err := uc.repo.ProjectUpdate().ListByProject(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list project history", goerr.V(ProjectIDKey, id))
	}
	return history, nil
}

// PostStatusUpdate appends a free-form "Status Update" entry.
func (uc *ProjectUseCase) PostStatusUpdate(ctx context.Context, id int64, actor, text string) (*model.ProjectUpdate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, goerr.Wrap(model.ErrMissingRequired, "update text is required", goerr.V(model.FieldKey, "update_text"))
	}
	if actor == "" {
		actor = model.SystemActor
	}

	u, err := uc.repo.ProjectUpdate().Create(ctx, id, model.ProjectUpdateFields{
		Type:     types.UpdateStatusUpdate,
		UserName: actor,
		Text:     text,
	})
	if err != nil {
		return nil, projectErr(err, id)
	}
	return u, nil
}

func projectErr(err error, id int64) error {
	if errors.Is(err, model.ErrNotFound) {
		return goerr.Wrap(ErrProjectNotFound, "project not found", goerr.V(ProjectIDKey, id))
	}
	return goerr.Wrap(err, "project operation failed", goerr.V(ProjectIDKey, id))
}
