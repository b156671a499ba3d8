package model

import (
	"strings"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// Incident is a support ticket handled by the operations team.
type Incident struct {
	ID int64 `json:"id"`
	IncidentFields
	CreatedAt time.Time `json:"created_at"`
}

// IncidentFields holds every editable incident column.
type IncidentFields struct {
	IncNumber      string               `json:"inc_number"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         types.IncidentStatus `json:"status"`
	Priority       types.Priority       `json:"priority"`
	Notes          string               `json:"notes"`
	CareManager    string               `json:"cah_manager"`
	AssignedMember string               `json:"assigned_bts_member"`
	AffectedUser   string               `json:"affected_user"`
	ITAssignee     string               `json:"ssd_it_assigned_to"`
	SourceCategory types.SourceCategory `json:"source_category"`
	SpecificSource string               `json:"specific_source"`
	IssueType      types.IssueType      `json:"issue_type"`
	TicketComments string               `json:"sn_comments"`
	TeamNotes      string               `json:"bts_notes"`
	MRN            string               `json:"mrn"`
	Workaround     types.Workaround     `json:"workaround"`
	Resolution     string               `json:"resolution"`

	DateTicketCreated *time.Time `json:"date_ticket_created"`
	DateReceived      *time.Time `json:"date_received_bts"`
	DateEscalated     *time.Time `json:"date_escalated_dt"`
	DateReportedEpic  *time.Time `json:"date_reported_epic"`

	ProjectID *int64 `json:"project_id"`
}

// Normalize trims the ticket number, maps the Unassigned placeholder to an
// empty assignee and defaults the status.
func (f IncidentFields) Normalize() IncidentFields {
	f.IncNumber = strings.TrimSpace(f.IncNumber)
	f.AssignedMember = strings.TrimSpace(f.AssignedMember)
	if types.IsUnassigned(f.AssignedMember) {
		f.AssignedMember = ""
	}
	f.Status = f.Status.Normalize()
	return f
}

// Validate checks the ticket number and enumerated values.
func (f IncidentFields) Validate() error {
	if f.IncNumber == "" {
		return missing("inc_number")
	}
	if !f.Status.IsValid() {
		return invalid("status", f.Status, nil)
	}
	if f.Priority != "" && !f.Priority.IsValid() {
		return invalid("priority", f.Priority, nil)
	}
	return nil
}

// IncidentBulkUpdate is the allow-list for bulk edits. Nil fields are left
// unchanged.
type IncidentBulkUpdate struct {
	Status         *types.IncidentStatus `json:"status,omitempty"`
	AssignedMember *string               `json:"assigned_bts_member,omitempty"`
	Priority       *types.Priority       `json:"priority,omitempty"`
}

// IsEmpty reports whether no field is set.
func (b IncidentBulkUpdate) IsEmpty() bool {
	return b.Status == nil && b.AssignedMember == nil && b.Priority == nil
}

// Normalize maps the Unassigned placeholder to an empty assignee.
func (b IncidentBulkUpdate) Normalize() IncidentBulkUpdate {
	if b.AssignedMember != nil {
		v := strings.TrimSpace(*b.AssignedMember)
		if types.IsUnassigned(v) {
			v = ""
		}
		b.AssignedMember = &v
	}
	return b
}

// Validate applies the same enum rules as IncidentFields.Validate.
func (b IncidentBulkUpdate) Validate() error {
	if b.Status != nil && !b.Status.IsValid() {
		return invalid("status", *b.Status, nil)
	}
	if b.Priority != nil && *b.Priority != "" && !b.Priority.IsValid() {
		return invalid("priority", *b.Priority, nil)
	}
	return nil
}

// Apply writes the set fields onto f.
func (b IncidentBulkUpdate) Apply(f *IncidentFields) {
	if b.Status != nil {
		f.Status = *b.Status
	}
	if b.AssignedMember != nil {
		f.AssignedMember = *b.AssignedMember
	}
	if b.Priority != nil {
		f.Priority = *b.Priority
	}
}

// Matches reports whether the incident contains q in any searchable text
// field, ignoring case.
func (i *Incident) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, s := range []string{
		i.IncNumber, i.Title, i.Description, i.Notes, i.TeamNotes,
		i.TicketComments, i.AssignedMember, i.CareManager, i.AffectedUser,
		i.ITAssignee, i.MRN, i.Resolution,
	} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
