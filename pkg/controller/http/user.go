package http

import (
	"net/http"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/usecase"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.uc.User.List(r.Context(), usecase.UserFilter{
		ActiveOnly: queryBool(r, "active"),
		Team:       r.URL.Query().Get("team"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	f := model.UserFields{IsActive: true}
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	u, err := s.uc.User.Create(r.Context(), f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var f model.UserFields
	if err := decodeJSON(r, &f); err != nil {
		handleError(w, r, err)
		return
	}

	u, err := s.uc.User.Update(r.Context(), id, f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.uc.User.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
