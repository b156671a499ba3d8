package http

import (
	"net/http"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/usecase"
)

// listIncidents accepts repeated status and assignee parameters and a free
// text q.
func (s *Server) listIncidents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := usecase.IncidentFilter{
		Assignees: q["assignee"],
		Query:     q.Get("q"),
	}
	for _, raw := range q["status"] {
		v, err := types.ParseIncidentStatus(raw)
		if err != nil {
			handleError(w, r, err)
			return
		}
		filter.Statuses = append(filter.Statuses, v)
	}

	incidents, err := s.uc.Incident.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, incidents)
}

func (s *Server) createIncident(w http.ResponseWriter, r *http.Request) {
	var f model.IncidentFields
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	i, err := s.uc.Incident.Create(r.Context(), f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, i)
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	i, err := s.uc.Incident.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, i)
}

// updateIncident also ends the session's editing state.
func (s *Server) updateIncident(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var f model.IncidentFields
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	i, err := s.uc.Incident.Update(r.Context(), id, f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := s.uc.Session.SetEditingIncident(r.Context(), sessionID(r), nil); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, i)
}

func (s *Server) deleteIncident(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.uc.Incident.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkUpdateRequest struct {
	IDs    []int64                  `json:"ids"`
	Update model.IncidentBulkUpdate `json:"update"`
}

func (s *Server) bulkUpdateIncidents(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	n, err := s.uc.Incident.BulkUpdate(r.Context(), req.IDs, req.Update)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]int64{"updated": n})
}

func (s *Server) bulkDeleteIncidents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	n, err := s.uc.Incident.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]int64{"deleted": n})
}
