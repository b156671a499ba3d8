package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/service/tabular"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Entity names a table that can be exported, and for some, imported.
type Entity string

const (
	EntityUsers          Entity = "users"
	EntityProjects       Entity = "projects"
	EntityIncidents      Entity = "incidents"
	EntityMilestones     Entity = "milestones"
	EntityStatusReports  Entity = "status_reports"
	EntityTimeLogs       Entity = "time_logs"
	EntityProjectHistory Entity = "project_history"
)

func AllEntities() []Entity {
	return []Entity{
		EntityUsers,
		EntityProjects,
		EntityIncidents,
		EntityMilestones,
		EntityStatusReports,
		EntityTimeLogs,
		EntityProjectHistory,
	}
}

// ParseEntity accepts the entity name in any case, with "-" for "_".
func ParseEntity(s string) (Entity, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, e := range AllEntities() {
		if string(e) == norm {
			return e, nil
		}
	}
	return "", goerr.Wrap(ErrUnknownEntity, "unknown entity", goerr.V(EntityKey, s))
}

// Importable reports whether Import accepts e.
func (e Entity) Importable() bool {
	return e == EntityProjects || e == EntityIncidents
}

const timestampLayout = "2006-01-02 15:04:05"

// Import columns. The first column of each list is required.
var (
	projectImportColumns = []string{
		"project_name", "project_code", "status", "project_manager", "budget_hours",
		"priority", "assigned_members", "start_date", "target_end_date",
		"business_owner", "executive_sponsor",
	}
	incidentImportColumns = []string{
		"inc_number", "title", "description", "status", "priority", "notes",
		"cah_manager", "assigned_bts_member", "affected_user", "ssd_it_assigned_to",
		"source_category", "specific_source", "issue_type", "sn_comments", "bts_notes",
		"mrn", "workaround", "resolution", "date_ticket_created", "date_received_bts",
		"date_escalated_dt", "date_reported_epic", "project_id",
	}
)

// TransferUseCase moves tables in and out as CSV.
type TransferUseCase struct {
	repo      interfaces.Repository
	projects  *ProjectUseCase
	incidents *IncidentUseCase
	users     *UserUseCase
	sink      interfaces.ExportSink
	now       func() time.Time
}

func NewTransferUseCase(repo interfaces.Repository, projects *ProjectUseCase, incidents *IncidentUseCase, users *UserUseCase, sink interfaces.ExportSink, now func() time.Time) *TransferUseCase {
	if now == nil {
		now = time.Now
	}
	return &TransferUseCase{
		repo:      repo,
		projects:  projects,
		incidents: incidents,
		users:     users,
		sink:      sink,
		now:       now,
	}
}

// Template writes the header-only import file of e.
func (uc *TransferUseCase) Template(e Entity, w io.Writer) error {
	switch e {
	case EntityProjects:
		return tabular.Encode(w, projectImportColumns, nil)
	case EntityIncidents:
		return tabular.Encode(w, incidentImportColumns, nil)
	default:
		return goerr.Wrap(ErrUnknownEntity, "entity has no import template", goerr.V(EntityKey, e))
	}
}

// Import reads a CSV file of e. Rows are applied one by one; a failing row
// is reported in the result and does not affect the others.
func (uc *TransferUseCase) Import(ctx context.Context, e Entity, r io.Reader) (*model.ImportResult, error) {
	if !e.Importable() {
		return nil, goerr.Wrap(ErrUnknownEntity, "entity cannot be imported", goerr.V(EntityKey, e))
	}

	table, err := tabular.Decode(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read import file", goerr.V(EntityKey, e))
	}

	var apply func(ctx context.Context, row tabular.Row) (key string, created bool, err error)
	switch e {
	case EntityProjects:
		if err := table.Require("project_name", "project_code"); err != nil {
			return nil, goerr.Wrap(err, "invalid project import file")
		}
		apply = uc.importProject
	case EntityIncidents:
		if err := table.Require("inc_number"); err != nil {
			return nil, goerr.Wrap(err, "invalid incident import file")
		}
		apply = uc.importIncident
	}

	result := &model.ImportResult{Errors: []model.RowError{}}
	for i, row := range table.Rows {
		result.Processed++
		key, created, err := apply(ctx, row)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.RowError{
				Row:     i + 1,
				Key:     key,
				Message: err.Error(),
			})
			logging.From(ctx).Warn("import row skipped",
				"entity", e,
				"line", row.Line,
				"key", key,
				logging.ErrAttr(err),
			)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	logging.From(ctx).Info("import finished",
		"entity", e,
		"processed", result.Processed,
		"created", result.Created,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

func (uc *TransferUseCase) importProject(ctx context.Context, row tabular.Row) (string, bool, error) {
	code := row.Get("project_code")
	if code == "" {
		return code, false, goerr.Wrap(model.ErrMissingRequired, "project_code is required", goerr.V(model.FieldKey, "project_code"))
	}

	existing, err := uc.projects.GetByCode(ctx, code)
	if err != nil {
		return code, false, err
	}

	if existing == nil {
		f, err := projectFieldsFromRow(row, model.ProjectFields{})
		if err != nil {
			return code, false, err
		}
		if _, err := uc.projects.Create(ctx, CreateProjectInput{Code: code, Fields: f}); err != nil {
			return code, false, err
		}
		return code, true, nil
	}

	f, err := projectFieldsFromRow(row, existing.Fields())
	if err != nil {
		return code, false, err
	}
	if _, err := uc.projects.Update(ctx, existing.ID, f, model.ImportActor); err != nil {
		return code, false, err
	}
	return code, false, nil
}

// projectFieldsFromRow overlays the columns present in row onto base.
func projectFieldsFromRow(row tabular.Row, base model.ProjectFields) (model.ProjectFields, error) {
	f := base
	text := map[string]*string{
		"project_name":      &f.Name,
		"description":       &f.Description,
		"project_manager":   &f.ProjectManager,
		"business_owner":    &f.BusinessOwner,
		"executive_sponsor": &f.ExecutiveSponsor,
	}
	for col, dst := range text {
		if row.Has(col) {
			*dst = row.Get(col)
		}
	}

	if row.Has("assigned_members") {
		f.AssignedMembers = tabular.SplitList(row.Get("assigned_members"))
	}
	if row.Has("status") {
		v, err := parseEnumColumn("status", row.Get("status"), types.ParseProjectStatus)
		if err != nil {
			return f, err
		}
		f.Status = v
	}
	if row.Has("priority") {
		v, err := parseEnumColumn("priority", row.Get("priority"), types.ParsePriority)
		if err != nil {
			return f, err
		}
		f.Priority = v
	}
	if row.Has("budget_hours") {
		v, err := parseFloatColumn("budget_hours", row.Get("budget_hours"))
		if err != nil {
			return f, err
		}
		f.BudgetHours = v
	}

	dates := map[string]**time.Time{
		"start_date":      &f.StartDate,
		"target_end_date": &f.TargetEndDate,
		"actual_end_date": &f.ActualEndDate,
	}
	for col, dst := range dates {
		if !row.Has(col) {
			continue
		}
		v, err := parseDateColumn(col, row.Get(col))
		if err != nil {
			return f, err
		}
		*dst = v
	}
	return f, nil
}

func (uc *TransferUseCase) importIncident(ctx context.Context, row tabular.Row) (string, bool, error) {
	key := row.Get("inc_number")
	if key == "" {
		return key, false, goerr.Wrap(model.ErrMissingRequired, "inc_number is required", goerr.V(model.FieldKey, "inc_number"))
	}

	var existing *model.Incident
	if raw := row.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return key, false, goerr.Wrap(model.ErrInvalidValue, "id is not a number", goerr.V(model.FieldKey, "id"), goerr.V(model.ValueKey, raw))
		}
		i, err := uc.incidents.Get(ctx, id)
		switch {
		case err == nil:
			existing = i
		case !isNotFound(err):
			return key, false, err
		}
	}

	if existing == nil {
		f, err := incidentFieldsFromRow(row, model.IncidentFields{})
		if err != nil {
			return key, false, err
		}
		if _, err := uc.incidents.Create(ctx, f); err != nil {
			return key, false, err
		}
		return key, true, nil
	}

	f, err := incidentFieldsFromRow(row, existing.IncidentFields)
	if err != nil {
		return key, false, err
	}
	if _, err := uc.incidents.Update(ctx, existing.ID, f); err != nil {
		return key, false, err
	}
	return key, false, nil
}

// incidentFieldsFromRow overlays the columns present in row onto base.
func incidentFieldsFromRow(row tabular.Row, base model.IncidentFields) (model.IncidentFields, error) {
	f := base
	text := map[string]*string{
		"inc_number":          &f.IncNumber,
		"title":               &f.Title,
		"description":         &f.Description,
		"notes":               &f.Notes,
		"cah_manager":         &f.CareManager,
		"assigned_bts_member": &f.AssignedMember,
		"affected_user":       &f.AffectedUser,
		"ssd_it_assigned_to":  &f.ITAssignee,
		"specific_source":     &f.SpecificSource,
		"sn_comments":         &f.TicketComments,
		"bts_notes":           &f.TeamNotes,
		"mrn":                 &f.MRN,
		"resolution":          &f.Resolution,
	}
	for col, dst := range text {
		if row.Has(col) {
			*dst = row.Get(col)
		}
	}

	if row.Has("status") {
		v, err := parseEnumColumn("status", row.Get("status"), types.ParseIncidentStatus)
		if err != nil {
			return f, err
		}
		f.Status = v
	}
	if row.Has("priority") {
		v, err := parseEnumColumn("priority", row.Get("priority"), types.ParsePriority)
		if err != nil {
			return f, err
		}
		f.Priority = v
	}
	if row.Has("source_category") {
		v, err := parseEnumColumn("source_category", row.Get("source_category"), types.ParseSourceCategory)
		if err != nil {
			return f, err
		}
		f.SourceCategory = v
	}
	if row.Has("issue_type") {
		v, err := parseEnumColumn("issue_type", row.Get("issue_type"), types.ParseIssueType)
		if err != nil {
			return f, err
		}
		f.IssueType = v
	}
	if row.Has("workaround") {
		v, err := parseEnumColumn("workaround", row.Get("workaround"), types.ParseWorkaround)
		if err != nil {
			return f, err
		}
		f.Workaround = v
	}

	dates := map[string]**time.Time{
		"date_ticket_created": &f.DateTicketCreated,
		"date_received_bts":   &f.DateReceived,
		"date_escalated_dt":   &f.DateEscalated,
		"date_reported_epic":  &f.DateReportedEpic,
	}
	for col, dst := range dates {
		if !row.Has(col) {
			continue
		}
		v, err := parseDateColumn(col, row.Get(col))
		if err != nil {
			return f, err
		}
		*dst = v
	}

	if row.Has("project_id") {
		raw := row.Get("project_id")
		if raw == "" {
			f.ProjectID = nil
		} else {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return f, goerr.Wrap(model.ErrInvalidValue, "project_id is not a number", goerr.V(model.FieldKey, "project_id"), goerr.V(model.ValueKey, raw))
			}
			f.ProjectID = &id
		}
	}
	return f, nil
}

// Export writes every row of e as CSV.
func (uc *TransferUseCase) Export(ctx context.Context, e Entity, w io.Writer) error {
	header, rows, err := uc.tableOf(ctx, e)
	if err != nil {
		return err
	}
	if err := tabular.Encode(w, header, rows); err != nil {
		return goerr.Wrap(err, "failed to encode export", goerr.V(EntityKey, e))
	}
	return nil
}

// ExportedFile is one file written by ExportAll.
type ExportedFile struct {
	Entity   Entity `json:"entity"`
	Location string `json:"location"`
	Rows     int    `json:"rows"`
}

// ExportAll writes every entity to the export sink concurrently. File names
// share one timestamp so a run can be told apart from the next.
func (uc *TransferUseCase) ExportAll(ctx context.Context) ([]ExportedFile, error) {
	if uc.sink == nil {
		return nil, goerr.Wrap(ErrNoSink, "no export sink configured")
	}

	stamp := uc.now().UTC().Format("20060102-150405")
	entities := AllEntities()
	files := make([]ExportedFile, len(entities))

	eg, ctx := errgroup.WithContext(ctx)
	for i, e := range entities {
		eg.Go(func() error {
			header, rows, err := uc.tableOf(ctx, e)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := tabular.Encode(&buf, header, rows); err != nil {
				return goerr.Wrap(err, "failed to encode export", goerr.V(EntityKey, e))
			}

			name := string(e) + "_" + stamp + ".csv"
			location, err := uc.sink.Put(ctx, name, "text/csv", buf.Bytes())
			if err != nil {
				return goerr.Wrap(err, "failed to store export", goerr.V(EntityKey, e), goerr.V("name", name))
			}
			files[i] = ExportedFile{Entity: e, Location: location, Rows: len(rows)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("export finished", "files", len(files), "stamp", stamp)
	return files, nil
}

func (uc *TransferUseCase) tableOf(ctx context.Context, e Entity) ([]string, [][]string, error) {
	switch e {
	case EntityUsers:
		return uc.usersTable(ctx)
	case EntityProjects:
		return uc.projectsTable(ctx)
	case EntityIncidents:
		return uc.incidentsTable(ctx)
	case EntityMilestones:
		return uc.milestonesTable(ctx)
	case EntityStatusReports:
		return uc.statusReportsTable(ctx)
	case EntityTimeLogs:
		return uc.timeLogsTable(ctx)
	case EntityProjectHistory:
		return uc.historyTable(ctx)
	default:
		return nil, nil, goerr.Wrap(ErrUnknownEntity, "entity cannot be exported", goerr.V(EntityKey, e))
	}
}

func (uc *TransferUseCase) usersTable(ctx context.Context) ([]string, [][]string, error) {
	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list users for export")
	}
	header := []string{"id", "name", "team", "is_active", "created_at"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			formatID(u.ID), u.Name, string(u.Team), formatBool(u.IsActive), formatTimestamp(u.CreatedAt),
		})
	}
	return header, rows, nil
}

func (uc *TransferUseCase) projectsTable(ctx context.Context) ([]string, [][]string, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list projects for export")
	}
	header := []string{
		"id", "project_name", "project_code", "description", "project_manager",
		"business_owner", "executive_sponsor", "assigned_members", "status",
		"start_date", "target_end_date", "actual_end_date", "budget_hours",
		"priority", "created_at", "updated_at",
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			formatID(p.ID), p.Name, p.Code, p.Description, p.ProjectManager,
			p.BusinessOwner, p.ExecutiveSponsor, tabular.JoinList(p.AssignedMembers), string(p.Status),
			model.FormatDate(p.StartDate), model.FormatDate(p.TargetEndDate), model.FormatDate(p.ActualEndDate), formatFloat(p.BudgetHours),
			string(p.Priority), formatTimestamp(p.CreatedAt), formatTimestamp(p.UpdatedAt),
		})
	}
	return header, rows, nil
}

func (uc *TransferUseCase) incidentsTable(ctx context.Context) ([]string, [][]string, error) {
	incidents, err := uc.repo.Incident().List(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list incidents for export")
	}
	header := append([]string{"id"}, incidentImportColumns...)
	header = append(header, "created_at")

	rows := make([][]string, 0, len(incidents))
	for _, i := range incidents {
		projectID := ""
		if i.ProjectID != nil {
			projectID = formatID(*i.ProjectID)
		}
		rows = append(rows, []string{
			formatID(i.ID), i.IncNumber, i.Title, i.Description, string(i.Status), string(i.Priority), i.Notes,
			i.CareManager, i.AssignedMember, i.AffectedUser, i.ITAssignee,
			string(i.SourceCategory), i.SpecificSource, string(i.IssueType), i.TicketComments, i.TeamNotes,
			i.MRN, string(i.Workaround), i.Resolution, model.FormatDate(i.DateTicketCreated), model.FormatDate(i.DateReceived),
			model.FormatDate(i.DateEscalated), model.FormatDate(i.DateReportedEpic), projectID,
			formatTimestamp(i.CreatedAt),
		})
	}
	return header, rows, nil
}

func (uc *TransferUseCase) milestonesTable(ctx context.Context) ([]string, [][]string, error) {
	milestones, err := uc.repo.Milestone().List(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list milestones for export")
	}
	header := []string{
		"id", "project_id", "group_name", "milestone_name", "percent_complete",
		"start_date", "end_date", "comments", "status",
	}
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		rows = append(rows, []string{
			formatID(m.ID), formatID(m.ProjectID), m.GroupName, m.Name, strconv.Itoa(m.PercentComplete),
			model.FormatDate(m.StartDate), model.FormatDate(m.EndDate), m.Comments, string(m.Status),
		})
	}
	return header, rows, nil
}

func (uc *TransferUseCase) statusReportsTable(ctx context.Context) ([]string, [][]string, error) {
	reports, err := uc.repo.StatusReport().List(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list status reports for export")
	}
	header := []string{
		"id", "project_id", "report_date", "next_report_date", "health_scope",
		"health_schedule", "health_budget", "health_resources", "health_quality",
		"health_overall", "executive_summary", "accomplishments", "next_steps", "created_at",
	}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		reportDate := r.ReportDate
		rows = append(rows, []string{
			formatID(r.ID), formatID(r.ProjectID), model.FormatDate(&reportDate), model.FormatDate(r.NextReportDate), string(r.HealthScope),
			string(r.HealthSchedule), string(r.HealthBudget), string(r.HealthResources), string(r.HealthQuality),
			string(r.HealthOverall), r.ExecutiveSummary, r.Accomplishments, r.NextSteps, formatTimestamp(r.CreatedAt),
		})
	}
	return header, rows, nil
}

func (uc *TransferUseCase) timeLogsTable(ctx context.Context) ([]string, [][]string, error) {
	entries, err := uc.repo.TimeLog().List(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list time logs for export")
	}
	header := []string{
		"id", "project_id", "project_code", "project_name", "user_id", "user_name",
		"date", "hours", "description", "category", "created_at",
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		date := e.Date
		rows = append(rows, []string{
			formatID(e.ID), formatID(e.ProjectID), e.ProjectCode, e.ProjectName, formatID(e.UserID), e.UserName,
			model.FormatDate(&date), formatFloat(e.Hours), e.Description, string(e.Category), formatTimestamp(e.CreatedAt),
		})
	}
	return header, rows, nil
}

func (uc *TransferUseCase) historyTable(ctx context.Context) ([]string, [][]string, error) {
	history, err := uc.repo.ProjectUpdate().List(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list project history for export")
	}
	header := []string{
		"id", "project_id", "update_type", "user_name", "update_text",
		"old_value", "new_value", "created_at",
	}
	rows := make([][]string, 0, len(history))
	for _, h := range history {
		rows = append(rows, []string{
			formatID(h.ID), formatID(h.ProjectID), string(h.Type), h.UserName, h.Text,
			h.OldValue, h.NewValue, formatTimestamp(h.CreatedAt),
		})
	}
	return header, rows, nil
}

func parseEnumColumn[T ~string](column, raw string, parse func(string) (T, error)) (T, error) {
	v, err := parse(raw)
	if err != nil {
		return v, goerr.Wrap(model.ErrInvalidValue, "invalid "+column, goerr.V(model.FieldKey, column), goerr.V(model.ValueKey, raw))
	}
	return v, nil
}

// parseFloatColumn reads a number. Blank input is zero.
func parseFloatColumn(column, raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, goerr.Wrap(model.ErrInvalidValue, column+" is not a number", goerr.V(model.FieldKey, column), goerr.V(model.ValueKey, raw))
	}
	return v, nil
}

func parseDateColumn(column, raw string) (*time.Time, error) {
	v, err := model.ParseDate(raw)
	if err != nil {
		return nil, goerr.Wrap(model.ErrInvalidValue, column+" is not a date", goerr.V(model.FieldKey, column), goerr.V(model.ValueKey, raw))
	}
	return v, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrIncidentNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrMilestoneNotFound)
}

func formatID(id int64) string     { return strconv.FormatInt(id, 10) }
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
func formatBool(v bool) string     { return strconv.FormatBool(v) }

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
