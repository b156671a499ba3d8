package http

import (
	"net/http"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

const sessionCookie = "athelas_session"

// sessionMiddleware attaches the visitor's session to the request context,
// starting a new one when the cookie is missing or stale.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id model.SessionID
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = model.SessionID(c.Value)
		}

		sess := s.uc.Session.Resolve(r.Context(), id)
		if sess.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID.String(),
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := model.ContextWithSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminMiddleware rejects sessions that have not passed the admin login.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := model.SessionFromContext(r.Context())
		if sess == nil {
			handleError(w, r, goerr.Wrap(usecase.ErrAccessDenied, "no session"))
			return
		}
		if err := s.uc.Session.RequireAdmin(r.Context(), sess.ID); err != nil {
			handleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionID(r *http.Request) model.SessionID {
	if sess := model.SessionFromContext(r.Context()); sess != nil {
		return sess.ID
	}
	return ""
}

// actor names the selected user of the session for history entries.
func (s *Server) actor(r *http.Request) string {
	ctx := r.Context()
	return model.ActorFromContext(ctx, func(id int64) string {
		return s.uc.User.NameOf(ctx, id)
	})
}

// currentUserID returns the user selected in the session, or nil.
func currentUserID(r *http.Request) *int64 {
	if sess := model.SessionFromContext(r.Context()); sess != nil {
		return sess.CurrentUserID
	}
	return nil
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.uc.Session.Get(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, sess)
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.uc.Session.Reset(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, sess)
}

func (s *Server) selectUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID *int64 `json:"user_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sess, err := s.uc.Session.SelectUser(r.Context(), sessionID(r), req.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, sess)
}

func (s *Server) setEditing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IncidentID      *int64 `json:"incident_id"`
		CreatingProject *bool  `json:"creating_project"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if req.IncidentID != nil {
		if _, err := s.uc.Incident.Get(r.Context(), *req.IncidentID); err != nil {
			handleError(w, r, err)
			return
		}
	}
	sess, err := s.uc.Session.SetEditingIncident(r.Context(), sessionID(r), req.IncidentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if req.CreatingProject != nil {
		if sess, err = s.uc.Session.SetCreatingProject(r.Context(), sessionID(r), *req.CreatingProject); err != nil {
			handleError(w, r, err)
			return
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, sess)
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sess, err := s.uc.Session.AdminLogin(r.Context(), sessionID(r), req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, sess)
}

func (s *Server) adminLogout(w http.ResponseWriter, r *http.Request) {
	sess, err := s.uc.Session.AdminLogout(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, sess)
}
