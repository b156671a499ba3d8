package http

import (
	"net/http"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

type referenceResponse struct {
	Teams             []types.Team            `json:"teams"`
	ProjectTypes      []types.ProjectType     `json:"project_types"`
	ProjectStatuses   []types.ProjectStatus   `json:"project_statuses"`
	IncidentStatuses  []types.IncidentStatus  `json:"incident_statuses"`
	Priorities        []types.Priority        `json:"priorities"`
	Healths           []types.Health          `json:"healths"`
	MilestoneStatuses []types.MilestoneStatus `json:"milestone_statuses"`
	SourceCategories  []types.SourceCategory  `json:"source_categories"`
	IssueTypes        []types.IssueType       `json:"issue_types"`
	Workarounds       []types.Workaround      `json:"workarounds"`
	TimeCategories    []types.TimeCategory    `json:"time_categories"`
	AdminEnabled      bool                    `json:"admin_enabled"`
}

func (s *Server) getReference(w http.ResponseWriter, r *http.Request) {
	ref := s.uc.Reference()
	writeJSON(r.Context(), w, http.StatusOK, referenceResponse{
		Teams:             ref.Teams.Teams(),
		ProjectTypes:      ref.ProjectTypes,
		ProjectStatuses:   types.AllProjectStatuses(),
		IncidentStatuses:  types.AllIncidentStatuses(),
		Priorities:        types.AllPriorities(),
		Healths:           types.AllHealths(),
		MilestoneStatuses: types.AllMilestoneStatuses(),
		SourceCategories:  types.AllSourceCategories(),
		IssueTypes:        types.AllIssueTypes(),
		Workarounds:       types.AllWorkarounds(),
		TimeCategories:    types.AllTimeCategories(),
		AdminEnabled:      s.uc.Session.AdminEnabled(),
	})
}
