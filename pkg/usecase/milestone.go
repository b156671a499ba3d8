package usecase

import (
	"context"
	"errors"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Milestones returns the project's milestones by start date, undated last.
func (uc *ProjectUseCase) Milestones(ctx context.Context, projectID int64) ([]*model.Milestone, error) {
	if _, err := uc.Get(ctx, projectID); err != nil {
		return nil, err
	}
	ms, err := uc.repo.Milestone().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list milestones", goerr.V(ProjectIDKey, projectID))
	}
	return ms, nil
}

func (uc *ProjectUseCase) CreateMilestone(ctx context.Context, projectID int64, f model.MilestoneFields) (*model.Milestone, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid milestone", goerr.V(ProjectIDKey, projectID))
	}

	m, err := uc.repo.Milestone().Create(ctx, projectID, f)
	if err != nil {
		return nil, projectErr(err, projectID)
	}
	return m, nil
}

func (uc *ProjectUseCase) UpdateMilestone(ctx context.Context, id int64, f model.MilestoneFields) (*model.Milestone, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid milestone", goerr.V(MilestoneIDKey, id))
	}

	m, err := uc.repo.Milestone().Update(ctx, id, f)
	if err != nil {
		return nil, milestoneErr(err, id)
	}
	return m, nil
}

func (uc *ProjectUseCase) DeleteMilestone(ctx context.Context, id int64) error {
	if err := uc.repo.Milestone().Delete(ctx, id); err != nil {
		return milestoneErr(err, id)
	}
	return nil
}

// StatusReports returns the project's reports, newest report date first.
func (uc *ProjectUseCase) StatusReports(ctx context.Context, projectID int64) ([]*model.StatusReport, error) {
	if _, err := uc.Get(ctx, projectID); err != nil {
		return nil, err
	}
	reports, err := uc.repo.StatusReport().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list status reports", goerr.V(ProjectIDKey, projectID))
	}
	return reports, nil
}

// LatestStatusReport returns nil, nil when the project has no report yet.
func (uc *ProjectUseCase) LatestStatusReport(ctx context.Context, projectID int64) (*model.StatusReport, error) {
	if _, err := uc.Get(ctx, projectID); err != nil {
		return nil, err
	}
	r, err := uc.repo.StatusReport().Latest(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest status report", goerr.V(ProjectIDKey, projectID))
	}
	return r, nil
}

// PublishStatusReport stores a report and announces it in the project
// history. A zero report date means today.
func (uc *ProjectUseCase) PublishStatusReport(ctx context.Context, projectID int64, f model.StatusReportFields) (*model.StatusReport, error) {
	if f.ReportDate.IsZero() {
		f.ReportDate = uc.now()
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid status report", goerr.V(ProjectIDKey, projectID))
	}

	var created *model.StatusReport
	err := uc.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
		r, err := createStatusReport(ctx, tx, projectID, f)
		if err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func createStatusReport(ctx context.Context, repo interfaces.Repository, projectID int64, f model.StatusReportFields) (*model.StatusReport, error) {
	r, err := repo.StatusReport().Create(ctx, projectID, f)
	if err != nil {
		return nil, projectErr(err, projectID)
	}
	if _, err := repo.ProjectUpdate().Create(ctx, projectID, model.ProjectUpdateFields{
		Type:     types.UpdateStatusReport,
		UserName: model.SystemActor,
		Text:     "New formal status report published",
	}); err != nil {
		return nil, projectErr(err, projectID)
	}
	return r, nil
}

func milestoneErr(err error, id int64) error {
	if errors.Is(err, model.ErrNotFound) {
		return goerr.Wrap(ErrMilestoneNotFound, "milestone not found", goerr.V(MilestoneIDKey, id))
	}
	return goerr.Wrap(err, "milestone operation failed", goerr.V(MilestoneIDKey, id))
}
