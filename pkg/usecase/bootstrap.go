package usecase

import (
	"context"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// showcaseProjectCode is the sample project that gets milestones and a
// status report.
const showcaseProjectCode = "HOS-25-0101"

type sampleProject struct {
	code string
	name string
}

var sampleProjects = []sampleProject{
	{"AOP-25-0101", "Active Episodes – No SOC Workflow Optimization"},
	{"AOP-25-0102", "Supply Checkout Process Standardization"},
	{"BTS-25-0201", "eSmart File Manager"},
	{"CLX-25-0701", "Care Experience All Stars"},
	{"DME-25-0401", "DME CMS 2024 Alignment"},
	{"DME-25-0201", "RPA: DME Referral Touchpoints"},
	{"HHC-25-0101", "Kern Internalization"},
	{showcaseProjectCode, "After Hours Care Services Optimization"},
	{"MTS-25-0101", "Non-Scheduled 911 Activation Reduction"},
	{"PBI-25-0501", "Pre-Billing Enhancements 2025"},
}

type sampleMilestone struct {
	group    string
	name     string
	percent  int
	start    string
	end      string
	comments string
	status   types.MilestoneStatus
}

var showcaseMilestones = []sampleMilestone{
	{"AHCS Re-alignment", "Collect & analyze data to identify gaps", 80, "2024-11-01", "", "Reviewed productivity data, call volume...", types.MilestoneOnTrack},
	{"AHCS Re-alignment", "Evaluate Current Staffing Model", 90, "2024-11-01", "", "Evaluate staffing model per shift...", types.MilestoneOnTrack},
	{"KPATHS", "Develop Clinical Protocols", 100, "2024-09-01", "2024-11-30", "Completed. Dr. Rosen & Dr. Wong approved.", types.MilestoneCompleted},
	{"KPATHS", "Develop Training Plan", 100, "2024-11-30", "2025-02-16", "Completed.", types.MilestoneCompleted},
	{"KPATHS", "System & Access", 100, "2024-08-01", "2025-02-16", "Training & In Production environment complete.", types.MilestoneCompleted},
	{"KPATHS", "Testing Phase", 100, "2025-03-03", "2025-03-31", "Validation occurred on 02/28.", types.MilestoneCompleted},
	{"KPATHS", "Maintenance/Enhancements", 60, "2025-03-17", "", "Gathering suggested enhancements.", types.MilestoneOnTrack},
	{"24/7 Hour Model", "Data Collection & Needs Assessment", 100, "2025-01-27", "2025-09-25", "Completed data collection.", types.MilestoneCompleted},
	{"24/7 Hour Model", "Framework Development", 80, "2025-02-03", "2025-11-30", "Starting to map out staffing model.", types.MilestoneOnTrack},
}

const (
	showcaseSummary = "The team is continuing to work on defining the implementation timeline and outline how the new team will be operationalized moving forward. " +
		"Working on finalizing staffing model & timeline for future After Hours Care Services model with a focus on phase 1."
	showcaseAccomplishments = "• Re-identified the AHCS Operational Goals to align with KPATHS.\n" +
		"• Completed data collection for needs assessment."
	showcaseNextSteps = "• Re-communication & Accountability plan for in basket - pending\n" +
		"• Finalize the HI AHCS Support Model\n" +
		"• Update the framework of future model based on business case results"
)

// Sample project defaults.
const (
	sampleDescription = "2025 Strategic Initiative"
	sampleBudgetHours = 100
	reportInterval    = 14 * 24 * time.Hour
)

var sampleStartDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// BootstrapUseCase seeds reference data into empty tables. Every step is
// skipped when its table already holds data, so Seed is safe on every boot.
type BootstrapUseCase struct {
	repo     interfaces.Repository
	ref      *model.Reference
	users    *UserUseCase
	projects *ProjectUseCase
	now      func() time.Time
}

func NewBootstrapUseCase(repo interfaces.Repository, ref *model.Reference, users *UserUseCase, projects *ProjectUseCase, now func() time.Time) *BootstrapUseCase {
	if ref == nil {
		ref = model.DefaultReference()
	}
	if now == nil {
		now = time.Now
	}
	return &BootstrapUseCase{
		repo:     repo,
		ref:      ref,
		users:    users,
		projects: projects,
		now:      now,
	}
}

// SeedResult counts what Seed inserted.
type SeedResult struct {
	Users         int `json:"users"`
	Projects      int `json:"projects"`
	Milestones    int `json:"milestones"`
	StatusReports int `json:"status_reports"`
}

func (uc *BootstrapUseCase) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	err := uc.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
		if err := uc.seedUsers(ctx, tx, result); err != nil {
			return err
		}
		if !uc.ref.SeedSamples {
			return nil
		}
		if err := uc.seedProjects(ctx, tx, result); err != nil {
			return err
		}
		return uc.seedShowcase(ctx, tx, result)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to seed database")
	}

	if result.Users > 0 {
		uc.users.cache.Invalidate(usersNamespace)
	}
	if result.Projects > 0 {
		uc.projects.cache.Invalidate(projectsNamespace)
	}

	logging.From(ctx).Info("database seeded",
		"users", result.Users,
		"projects", result.Projects,
		"milestones", result.Milestones,
		"status_reports", result.StatusReports,
	)
	return result, nil
}

func (uc *BootstrapUseCase) seedUsers(ctx context.Context, tx interfaces.Repository, result *SeedResult) error {
	n, err := tx.User().Count(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to count users")
	}
	if n > 0 {
		return nil
	}

	for _, name := range uc.ref.Roster {
		f := model.UserFields{Name: name, Team: uc.ref.RosterTeam, IsActive: true}.Normalize()
		if err := f.Validate(); err != nil {
			return goerr.Wrap(err, "invalid roster entry", goerr.V("name", name))
		}
		if _, err := tx.User().Create(ctx, f); err != nil {
			return goerr.Wrap(err, "failed to seed user", goerr.V("name", name))
		}
		result.Users++
	}
	return nil
}

func (uc *BootstrapUseCase) seedProjects(ctx context.Context, tx interfaces.Repository, result *SeedResult) error {
	n, err := tx.Project().Count(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to count projects")
	}
	if n > 0 {
		return nil
	}

	var manager string
	if len(uc.ref.Roster) > 0 {
		manager = uc.ref.Roster[0]
	}
	start := sampleStartDate

	for _, s := range sampleProjects {
		f := model.ProjectFields{
			Name:           s.name,
			Description:    sampleDescription,
			ProjectManager: manager,
			Status:         types.ProjectStatusActive,
			StartDate:      &start,
			BudgetHours:    sampleBudgetHours,
			Priority:       types.PriorityHigh,
		}.Normalize()
		if _, err := tx.Project().Create(ctx, s.code, f); err != nil {
			return goerr.Wrap(err, "failed to seed project", goerr.V("code", s.code))
		}
		result.Projects++
	}
	return nil
}

func (uc *BootstrapUseCase) seedShowcase(ctx context.Context, tx interfaces.Repository, result *SeedResult) error {
	p, err := tx.Project().GetByCode(ctx, showcaseProjectCode)
	if err != nil {
		return goerr.Wrap(err, "failed to look up showcase project")
	}
	if p == nil {
		return nil
	}

	n, err := tx.Milestone().CountByProject(ctx, p.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to count milestones", goerr.V(ProjectIDKey, p.ID))
	}
	if n > 0 {
		return nil
	}

	for _, m := range showcaseMilestones {
		f := model.MilestoneFields{
			GroupName:       m.group,
			Name:            m.name,
			PercentComplete: m.percent,
			StartDate:       mustDate(m.start),
			EndDate:         mustDate(m.end),
			Comments:        m.comments,
			Status:          m.status,
		}
		if _, err := tx.Milestone().Create(ctx, p.ID, f); err != nil {
			return goerr.Wrap(err, "failed to seed milestone", goerr.V(ProjectIDKey, p.ID))
		}
		result.Milestones++
	}

	today := model.Date(uc.now())
	f := model.StatusReportFields{
		ReportDate:       today,
		NextReportDate:   model.DatePtr(today.Add(reportInterval)),
		HealthScope:      types.HealthOnTrack,
		HealthSchedule:   types.HealthOnTrack,
		HealthBudget:     types.HealthOnTrack,
		HealthResources:  types.HealthOnTrack,
		HealthQuality:    types.HealthOnTrack,
		HealthOverall:    types.HealthOnTrack,
		ExecutiveSummary: showcaseSummary,
		Accomplishments:  showcaseAccomplishments,
		NextSteps:        showcaseNextSteps,
	}
	if _, err := tx.StatusReport().Create(ctx, p.ID, f); err != nil {
		return goerr.Wrap(err, "failed to seed status report", goerr.V(ProjectIDKey, p.ID))
	}
	result.StatusReports++
	return nil
}

func mustDate(s string) *time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}
