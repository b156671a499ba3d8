package memory

import (
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/model"
)

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

func copyProject(p *model.Project) *model.Project {
	c := *p
	c.AssignedMembers = copyStrings(p.AssignedMembers)
	c.StartDate = copyTime(p.StartDate)
	c.TargetEndDate = copyTime(p.TargetEndDate)
	c.ActualEndDate = copyTime(p.ActualEndDate)
	return &c
}

func copyIncidentFields(f model.IncidentFields) model.IncidentFields {
	f.DateTicketCreated = copyTime(f.DateTicketCreated)
	f.DateReceived = copyTime(f.DateReceived)
	f.DateEscalated = copyTime(f.DateEscalated)
	f.DateReportedEpic = copyTime(f.DateReportedEpic)
	f.ProjectID = copyInt64(f.ProjectID)
	return f
}

func copyIncident(i *model.Incident) *model.Incident {
	c := *i
	c.IncidentFields = copyIncidentFields(i.IncidentFields)
	return &c
}

func copyMilestone(ms *model.Milestone) *model.Milestone {
	c := *ms
	c.StartDate = copyTime(ms.StartDate)
	c.EndDate = copyTime(ms.EndDate)
	return &c
}

func copyStatusReport(r *model.StatusReport) *model.StatusReport {
	c := *r
	c.NextReportDate = copyTime(r.NextReportDate)
	return &c
}

func copyTimeLog(l *model.TimeLog) *model.TimeLog {
	c := *l
	return &c
}

func copyProjectUpdate(u *model.ProjectUpdate) *model.ProjectUpdate {
	c := *u
	return &c
}
