package model

import (
	"context"
	"time"
)

// SessionID identifies one browser session.
type SessionID string

func (id SessionID) String() string { return string(id) }

// Session holds per-visitor interaction state. It is never shared between
// sessions.
type Session struct {
	ID                SessionID `json:"id"`
	CurrentUserID     *int64    `json:"current_user_id"`
	EditingIncidentID *int64    `json:"editing_incident_id"`
	CreatingProject   bool      `json:"creating_project"`
	AdminAuthorized   bool      `json:"admin_authorized"`
	Flash             string    `json:"flash,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	LastSeenAt        time.Time `json:"last_seen_at"`
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.CurrentUserID != nil {
		v := *s.CurrentUserID
		c.CurrentUserID = &v
	}
	if s.EditingIncidentID != nil {
		v := *s.EditingIncidentID
		c.EditingIncidentID = &v
	}
	return &c
}

// Reset clears interaction state but keeps identity and timestamps.
func (s *Session) Reset() {
	s.CurrentUserID = nil
	s.EditingIncidentID = nil
	s.CreatingProject = false
	s.AdminAuthorized = false
	s.Flash = ""
}

// TakeFlash returns the one-shot message and clears it.
func (s *Session) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}

type ctxSessionKey struct{}

// ContextWithSession stores s in ctx.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxSessionKey{}, s)
}

// SessionFromContext returns the session stored in ctx, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxSessionKey{}).(*Session)
	return s
}

// ActorFromContext names the acting user for history entries. It falls back
// to SystemActor when no user is selected.
func ActorFromContext(ctx context.Context, lookup func(id int64) string) string {
	s := SessionFromContext(ctx)
	if s == nil || s.CurrentUserID == nil || lookup == nil {
		return SystemActor
	}
	if name := lookup(*s.CurrentUserID); name != "" {
		return name
	}
	return SystemActor
}
