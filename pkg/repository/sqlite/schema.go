package sqlite

import (
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"gorm.io/datatypes"
)

// Row types mirror the seven tables. Children of projects carry a belongs-to
// association only so the migrator emits ON DELETE CASCADE; the association
// is never loaded. time_logs.user_id is indexed but not constrained.

type userRow struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_users_name"`
	Team      string    `gorm:"column:team;not null"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (userRow) TableName() string { return "users" }

type projectRow struct {
	ID               int64                       `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectName      string                      `gorm:"column:project_name;not null"`
	ProjectCode      string                      `gorm:"column:project_code;uniqueIndex:idx_projects_project_code"`
	Description      string                      `gorm:"column:description"`
	ProjectManager   string                      `gorm:"column:project_manager"`
	BusinessOwner    string                      `gorm:"column:business_owner"`
	ExecutiveSponsor string                      `gorm:"column:executive_sponsor"`
	AssignedMembers  datatypes.JSONSlice[string] `gorm:"column:assigned_members"`
	Status           string                      `gorm:"column:status"`
	StartDate        *time.Time                  `gorm:"column:start_date;type:date"`
	TargetEndDate    *time.Time                  `gorm:"column:target_end_date;type:date"`
	ActualEndDate    *time.Time                  `gorm:"column:actual_end_date;type:date"`
	BudgetHours      float64                     `gorm:"column:budget_hours"`
	Priority         string                      `gorm:"column:priority"`
	CreatedAt        time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (projectRow) TableName() string { return "projects" }

type incidentRow struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement"`
	IncNumber         string     `gorm:"column:inc_number"`
	Title             string     `gorm:"column:title"`
	Description       string     `gorm:"column:description"`
	Status            string     `gorm:"column:status"`
	Priority          string     `gorm:"column:priority"`
	Notes             string     `gorm:"column:notes"`
	CahManager        string     `gorm:"column:cah_manager"`
	AssignedBTSMember string     `gorm:"column:assigned_bts_member"`
	AffectedUser      string     `gorm:"column:affected_user"`
	SSDITAssignedTo   string     `gorm:"column:ssd_it_assigned_to"`
	SourceCategory    string     `gorm:"column:source_category"`
	SpecificSource    string     `gorm:"column:specific_source"`
	IssueType         string     `gorm:"column:issue_type"`
	SNComments        string     `gorm:"column:sn_comments"`
	BTSNotes          string     `gorm:"column:bts_notes"`
	MRN               string     `gorm:"column:mrn"`
	Workaround        string     `gorm:"column:workaround"`
	Resolution        string     `gorm:"column:resolution"`
	DateTicketCreated *time.Time `gorm:"column:date_ticket_created;type:date"`
	DateReceivedBTS   *time.Time `gorm:"column:date_received_bts;type:date"`
	DateEscalatedDT   *time.Time `gorm:"column:date_escalated_dt;type:date"`
	DateReportedEpic  *time.Time `gorm:"column:date_reported_epic;type:date"`
	ProjectID         *int64     `gorm:"column:project_id"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (incidentRow) TableName() string { return "incidents" }

type timeLogRow struct {
	ID          int64       `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID   int64       `gorm:"column:project_id;not null;index:idx_time_logs_project_id"`
	Project     *projectRow `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	UserID      int64       `gorm:"column:user_id;not null;index:idx_time_logs_user_id"`
	Date        time.Time   `gorm:"column:date;type:date;not null"`
	Hours       float64     `gorm:"column:hours;not null"`
	Description string      `gorm:"column:description"`
	Category    string      `gorm:"column:category"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (timeLogRow) TableName() string { return "time_logs" }

type projectUpdateRow struct {
	ID         int64       `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID  int64       `gorm:"column:project_id;not null;index:idx_project_updates_project_id"`
	Project    *projectRow `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	UpdateType string      `gorm:"column:update_type;not null"`
	UserName   string      `gorm:"column:user_name"`
	UpdateText string      `gorm:"column:update_text"`
	OldValue   string      `gorm:"column:old_value"`
	NewValue   string      `gorm:"column:new_value"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (projectUpdateRow) TableName() string { return "project_updates" }

type milestoneRow struct {
	ID              int64       `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID       int64       `gorm:"column:project_id;index:idx_project_milestones_project_id"`
	Project         *projectRow `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	GroupName       string      `gorm:"column:group_name"`
	MilestoneName   string      `gorm:"column:milestone_name"`
	PercentComplete int         `gorm:"column:percent_complete"`
	StartDate       *time.Time  `gorm:"column:start_date;type:date"`
	EndDate         *time.Time  `gorm:"column:end_date;type:date"`
	Comments        string      `gorm:"column:comments"`
	Status          string      `gorm:"column:status"`
}

func (milestoneRow) TableName() string { return "project_milestones" }

type statusReportRow struct {
	ID               int64       `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID        int64       `gorm:"column:project_id;index:idx_status_reports_project_id"`
	Project          *projectRow `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	ReportDate       time.Time   `gorm:"column:report_date;type:date"`
	NextReportDate   *time.Time  `gorm:"column:next_report_date;type:date"`
	HealthScope      string      `gorm:"column:health_scope"`
	HealthSchedule   string      `gorm:"column:health_schedule"`
	HealthBudget     string      `gorm:"column:health_budget"`
	HealthResources  string      `gorm:"column:health_resources"`
	HealthQuality    string      `gorm:"column:health_quality"`
	HealthOverall    string      `gorm:"column:health_overall"`
	ExecutiveSummary string      `gorm:"column:executive_summary"`
	Accomplishments  string      `gorm:"column:accomplishments"`
	NextSteps        string      `gorm:"column:next_steps"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (statusReportRow) TableName() string { return "status_reports" }

// allTables lists every row type in dependency order.
func allTables() []any {
	return []any{
		&userRow{},
		&projectRow{},
		&incidentRow{},
		&timeLogRow{},
		&projectUpdateRow{},
		&milestoneRow{},
		&statusReportRow{},
	}
}

func (r *userRow) toModel() *model.User {
	return &model.User{
		ID:        r.ID,
		Name:      r.Name,
		Team:      types.TeamCode(r.Team),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

func userColumns(f model.UserFields) map[string]any {
	return map[string]any{
		"name":      f.Name,
		"team":      string(f.Team),
		"is_active": f.IsActive,
	}
}

func (r *projectRow) toModel() *model.Project {
	members := []string(r.AssignedMembers)
	if members == nil {
		members = []string{}
	}
	return &model.Project{
		ID:               r.ID,
		Name:             r.ProjectName,
		Code:             r.ProjectCode,
		Description:      r.Description,
		ProjectManager:   r.ProjectManager,
		BusinessOwner:    r.BusinessOwner,
		ExecutiveSponsor: r.ExecutiveSponsor,
		AssignedMembers:  members,
		Status:           types.ProjectStatus(r.Status),
		StartDate:        r.StartDate,
		TargetEndDate:    r.TargetEndDate,
		ActualEndDate:    r.ActualEndDate,
		BudgetHours:      r.BudgetHours,
		Priority:         types.Priority(r.Priority),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// projectColumns is the update allow-list for projects. project_code,
// created_at and id are never written after insert.
func projectColumns(f model.ProjectFields) map[string]any {
	members := f.AssignedMembers
	if members == nil {
		members = []string{}
	}
	return map[string]any{
		"project_name":      f.Name,
		"description":       f.Description,
		"project_manager":   f.ProjectManager,
		"business_owner":    f.BusinessOwner,
		"executive_sponsor": f.ExecutiveSponsor,
		"assigned_members":  datatypes.NewJSONSlice(members),
		"status":            string(f.Status),
		"start_date":        f.StartDate,
		"target_end_date":   f.TargetEndDate,
		"actual_end_date":   f.ActualEndDate,
		"budget_hours":      f.BudgetHours,
		"priority":          string(f.Priority),
	}
}

func (r *incidentRow) toModel() *model.Incident {
	return &model.Incident{
		ID: r.ID,
		IncidentFields: model.IncidentFields{
			IncNumber:         r.IncNumber,
			Title:             r.Title,
			Description:       r.Description,
			Status:            types.IncidentStatus(r.Status),
			Priority:          types.Priority(r.Priority),
			Notes:             r.Notes,
			CareManager:       r.CahManager,
			AssignedMember:    r.AssignedBTSMember,
			AffectedUser:      r.AffectedUser,
			ITAssignee:        r.SSDITAssignedTo,
			SourceCategory:    types.SourceCategory(r.SourceCategory),
			SpecificSource:    r.SpecificSource,
			IssueType:         types.IssueType(r.IssueType),
			TicketComments:    r.SNComments,
			TeamNotes:         r.BTSNotes,
			MRN:               r.MRN,
			Workaround:        types.Workaround(r.Workaround),
			Resolution:        r.Resolution,
			DateTicketCreated: r.DateTicketCreated,
			DateReceived:      r.DateReceivedBTS,
			DateEscalated:     r.DateEscalatedDT,
			DateReportedEpic:  r.DateReportedEpic,
			ProjectID:         r.ProjectID,
		},
		CreatedAt: r.CreatedAt,
	}
}

// incidentColumns is the update allow-list for incidents.
func incidentColumns(f model.IncidentFields) map[string]any {
	return map[string]any{
		"inc_number":          f.IncNumber,
		"title":               f.Title,
		"description":         f.Description,
		"status":              string(f.Status),
		"priority":            string(f.Priority),
		"notes":               f.Notes,
		"cah_manager":         f.CareManager,
		"assigned_bts_member": f.AssignedMember,
		"affected_user":       f.AffectedUser,
		"ssd_it_assigned_to":  f.ITAssignee,
		"source_category":     string(f.SourceCategory),
		"specific_source":     f.SpecificSource,
		"issue_type":          string(f.IssueType),
		"sn_comments":         f.TicketComments,
		"bts_notes":           f.TeamNotes,
		"mrn":                 f.MRN,
		"workaround":          string(f.Workaround),
		"resolution":          f.Resolution,
		"date_ticket_created": f.DateTicketCreated,
		"date_received_bts":   f.DateReceived,
		"date_escalated_dt":   f.DateEscalated,
		"date_reported_epic":  f.DateReportedEpic,
		"project_id":          f.ProjectID,
	}
}

func bulkColumns(u model.IncidentBulkUpdate) map[string]any {
	cols := map[string]any{}
	if u.Status != nil {
		cols["status"] = string(*u.Status)
	}
	if u.AssignedMember != nil {
		cols["assigned_bts_member"] = *u.AssignedMember
	}
	if u.Priority != nil {
		cols["priority"] = string(*u.Priority)
	}
	return cols
}

func newIncidentRow(f model.IncidentFields) *incidentRow {
	r := &incidentRow{}
	applyIncident(r, f)
	return r
}

func applyIncident(r *incidentRow, f model.IncidentFields) {
	r.IncNumber = f.IncNumber
	r.Title = f.Title
	r.Description = f.Description
	r.Status = string(f.Status)
	r.Priority = string(f.Priority)
	r.Notes = f.Notes
	r.CahManager = f.CareManager
	r.AssignedBTSMember = f.AssignedMember
	r.AffectedUser = f.AffectedUser
	r.SSDITAssignedTo = f.ITAssignee
	r.SourceCategory = string(f.SourceCategory)
	r.SpecificSource = f.SpecificSource
	r.IssueType = string(f.IssueType)
	r.SNComments = f.TicketComments
	r.BTSNotes = f.TeamNotes
	r.MRN = f.MRN
	r.Workaround = string(f.Workaround)
	r.Resolution = f.Resolution
	r.DateTicketCreated = f.DateTicketCreated
	r.DateReceivedBTS = f.DateReceived
	r.DateEscalatedDT = f.DateEscalated
	r.DateReportedEpic = f.DateReportedEpic
	r.ProjectID = f.ProjectID
}

func (r *milestoneRow) toModel() *model.Milestone {
	return &model.Milestone{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		MilestoneFields: model.MilestoneFields{
			GroupName:       r.GroupName,
			Name:            r.MilestoneName,
			PercentComplete: r.PercentComplete,
			StartDate:       r.StartDate,
			EndDate:         r.EndDate,
			Comments:        r.Comments,
			Status:          types.MilestoneStatus(r.Status),
		},
	}
}

func milestoneColumns(f model.MilestoneFields) map[string]any {
	return map[string]any{
		"group_name":       f.GroupName,
		"milestone_name":   f.Name,
		"percent_complete": f.PercentComplete,
		"start_date":       f.StartDate,
		"end_date":         f.EndDate,
		"comments":         f.Comments,
		"status":           string(f.Status),
	}
}

func (r *statusReportRow) toModel() *model.StatusReport {
	return &model.StatusReport{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		StatusReportFields: model.StatusReportFields{
			ReportDate:       r.ReportDate,
			NextReportDate:   r.NextReportDate,
			HealthScope:      types.Health(r.HealthScope),
			HealthSchedule:   types.Health(r.HealthSchedule),
			HealthBudget:     types.Health(r.HealthBudget),
			HealthResources:  types.Health(r.HealthResources),
			HealthQuality:    types.Health(r.HealthQuality),
			HealthOverall:    types.Health(r.HealthOverall),
			ExecutiveSummary: r.ExecutiveSummary,
			Accomplishments:  r.Accomplishments,
			NextSteps:        r.NextSteps,
		},
		CreatedAt: r.CreatedAt,
	}
}

func (r *projectUpdateRow) toModel() *model.ProjectUpdate {
	return &model.ProjectUpdate{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		ProjectUpdateFields: model.ProjectUpdateFields{
			Type:     types.UpdateType(r.UpdateType),
			UserName: r.UserName,
			Text:     r.UpdateText,
			OldValue: r.OldValue,
			NewValue: r.NewValue,
		},
		CreatedAt: r.CreatedAt,
	}
}

func (r *timeLogRow) toModel() *model.TimeLog {
	return &model.TimeLog{
		ID: r.ID,
		TimeLogFields: model.TimeLogFields{
			ProjectID:   r.ProjectID,
			UserID:      r.UserID,
			Date:        r.Date,
			Hours:       r.Hours,
			Description: r.Description,
			Category:    types.TimeCategory(r.Category),
		},
		CreatedAt: r.CreatedAt,
	}
}
