package http

import (
	"net/http"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listTimeLogs(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryInt64(r, "project_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	entries, err := s.uc.TimeLog.List(r.Context(), projectID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, entries)
}

// logTime defaults the user to the one selected in the session.
func (s *Server) logTime(w http.ResponseWriter, r *http.Request) {
	var in usecase.LogTimeInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	if in.UserID == 0 {
		if id := currentUserID(r); id != nil {
			in.UserID = *id
		}
	}

	tl, err := s.uc.TimeLog.Log(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, tl)
}

func (s *Server) timeLogSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if userID == nil {
		userID = currentUserID(r)
	}
	if userID == nil {
		handleError(w, r, goerr.Wrap(model.ErrMissingRequired, "no user selected", goerr.V(model.FieldKey, "user_id")))
		return
	}

	summary, err := s.uc.TimeLog.UserSummary(r.Context(), *userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, summary)
}
