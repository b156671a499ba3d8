package usecase

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ReportUseCase serves the dashboards. Every figure is recomputed per call.
type ReportUseCase struct {
	repo     interfaces.Repository
	ref      *model.Reference
	projects *ProjectUseCase
}

func NewReportUseCase(repo interfaces.Repository, ref *model.Reference, projects *ProjectUseCase) *ReportUseCase {
	if ref == nil {
		ref = model.DefaultReference()
	}
	return &ReportUseCase{
		repo:     repo,
		ref:      ref,
		projects: projects,
	}
}

func (uc *ReportUseCase) IncidentCounts(ctx context.Context) (*model.IncidentCounts, error) {
	counts, err := uc.repo.Report().IncidentCounts(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count incidents")
	}
	return counts, nil
}

func (uc *ReportUseCase) TimeSummary(ctx context.Context) (*model.TimeSummary, error) {
	summary, err := uc.repo.Report().TimeSummary(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to summarise time logs")
	}
	return summary, nil
}

// Overview returns one row per Active project. A project without any status
// report is shown as Not Started.
func (uc *ReportUseCase) Overview(ctx context.Context) ([]*model.ProjectOverviewRow, error) {
	projects, err := uc.activeProjects(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*model.ProjectOverviewRow, 0, len(projects))
	for _, p := range projects {
		latest, err := uc.repo.StatusReport().Latest(ctx, p.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get latest status report", goerr.V(ProjectIDKey, p.ID))
		}

		health := latest.OverallHealth()
		team := types.TeamOfProjectCode(p.Code)
		rows = append(rows, &model.ProjectOverviewRow{
			ProjectID:     p.ID,
			ProjectName:   p.Name,
			ProjectCode:   p.Code,
			Lead:          p.ProjectManager,
			TeamCode:      team,
			TeamName:      uc.ref.Teams.Name(team),
			Health:        health,
			HealthIcon:    health.Icon(),
			Frequency:     model.ReportingFrequency,
			TargetEndDate: p.TargetEndDate,
		})
	}
	return rows, nil
}

// Briefing returns the latest report and milestones of every Active project.
func (uc *ReportUseCase) Briefing(ctx context.Context) ([]*model.BriefingEntry, error) {
	projects, err := uc.activeProjects(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.BriefingEntry, 0, len(projects))
	for _, p := range projects {
		latest, err := uc.repo.StatusReport().Latest(ctx, p.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get latest status report", goerr.V(ProjectIDKey, p.ID))
		}
		milestones, err := uc.repo.Milestone().ListByProject(ctx, p.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list milestones", goerr.V(ProjectIDKey, p.ID))
		}
		entries = append(entries, &model.BriefingEntry{
			Project:    p,
			Latest:     latest,
			Milestones: milestones,
		})
	}
	return entries, nil
}

func (uc *ReportUseCase) activeProjects(ctx context.Context) ([]*model.Project, error) {
	active := types.ProjectStatusActive
	return uc.projects.List(ctx, &active)
}
