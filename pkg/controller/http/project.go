package http

import (
	"net/http"
	"strconv"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	var status *types.ProjectStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		v, err := types.ParseProjectStatus(raw)
		if err != nil {
			handleError(w, r, err)
			return
		}
		status = &v
	}

	projects, err := s.uc.Project.List(r.Context(), status)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, projects)
}

func (s *Server) nextProjectCode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := 0
	if raw := q.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, goerr.Wrap(errBadRequest, "invalid year", goerr.V("year", raw)))
			return
		}
		year = v
	}

	code, err := s.uc.Project.NextCode(r.Context(), types.TeamCode(q.Get("team")), types.ProjectTypeCode(q.Get("type")), year)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"project_code": code})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateProjectInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	p, err := s.uc.Project.Create(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := s.uc.Session.SetCreatingProject(r.Context(), sessionID(r), false); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, p)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	p, err := s.uc.Project.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var f model.ProjectFields
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	p, err := s.uc.Project.Update(r.Context(), id, f, s.actor(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.uc.Project.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) projectHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	history, err := s.uc.Project.History(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, history)
}

func (s *Server) postStatusUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req struct {
		Text string `json:"update_text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	u, err := s.uc.Project.PostStatusUpdate(r.Context(), id, s.actor(r), req.Text)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, u)
}

func (s *Server) listMilestones(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	ms, err := s.uc.Project.Milestones(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, ms)
}

func (s *Server) createMilestone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var f model.MilestoneFields
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.uc.Project.CreateMilestone(r.Context(), id, f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, m)
}

func (s *Server) updateMilestone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var f model.MilestoneFields
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.uc.Project.UpdateMilestone(r.Context(), id, f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, m)
}

func (s *Server) deleteMilestone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.uc.Project.DeleteMilestone(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listStatusReports(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	reports, err := s.uc.Project.StatusReports(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, reports)
}

func (s *Server) publishStatusReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var f model.StatusReportFields
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.uc.Project.PublishStatusReport(r.Context(), id, f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, report)
}

type latestReportResponse struct {
	Report        *model.StatusReport `json:"report"`
	OverallHealth types.Health        `json:"overall_health"`
}

// latestStatusReport reports Not Started for a project without reports.
func (s *Server) latestStatusReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	report, err := s.uc.Project.LatestStatusReport(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, latestReportResponse{
		Report:        report,
		OverallHealth: report.OverallHealth(),
	})
}
