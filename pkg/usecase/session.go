package usecase

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 12 * time.Hour

// SessionUseCase owns per-visitor state. Sessions live in process memory and
// are never shared; callers always receive copies.
type SessionUseCase struct {
	users    *UserUseCase
	password string
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[model.SessionID]*model.Session
}

func NewSessionUseCase(users *UserUseCase, adminPassword string, ttl time.Duration, now func() time.Time) *SessionUseCase {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SessionUseCase{
		users:    users,
		password: adminPassword,
		ttl:      ttl,
		now:      now,
		sessions: make(map[model.SessionID]*model.Session),
	}
}

// AdminEnabled reports whether an admin password is configured.
func (uc *SessionUseCase) AdminEnabled() bool {
	return uc.password != ""
}

// Resolve returns the live session id, or a fresh one when id is unknown
// or expired. Starting a session also drops every expired one.
func (uc *SessionUseCase) Resolve(ctx context.Context, id model.SessionID) *model.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()
	if s, ok := uc.sessions[id]; ok {
		if now.Sub(s.LastSeenAt) <= uc.ttl {
			s.LastSeenAt = now
			return s.Clone()
		}
		logging.From(ctx).Debug("session expired", "session_id", id)
	}
	if n := uc.purgeLocked(now); n > 0 {
		logging.From(ctx).Debug("purged idle sessions", "count", n)
	}

	s := &model.Session{
		ID:         model.SessionID(uuid.NewString()),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	uc.sessions[s.ID] = s
	return s.Clone()
}

// Get returns a copy of the session or ErrSessionNotFound.
func (uc *SessionUseCase) Get(_ context.Context, id model.SessionID) (*model.Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// SelectUser sets the acting user. A nil userID clears the selection.
func (uc *SessionUseCase) SelectUser(ctx context.Context, id model.SessionID, userID *int64) (*model.Session, error) {
	if userID != nil {
		u, err := uc.users.Get(ctx, *userID)
		if err != nil {
			return nil, err
		}
		if !u.IsActive {
			return nil, goerr.Wrap(model.ErrInvalidValue, "user is not active", goerr.V(UserIDKey, *userID))
		}
	}

	return uc.update(id, func(s *model.Session) error {
		if userID == nil {
			s.CurrentUserID = nil
			return nil
		}
		v := *userID
		s.CurrentUserID = &v
		return nil
	})
}

// SetEditingIncident marks which incident the visitor is editing. A nil
// incidentID ends editing.
func (uc *SessionUseCase) SetEditingIncident(_ context.Context, id model.SessionID, incidentID *int64) (*model.Session, error) {
	return uc.update(id, func(s *model.Session) error {
		if incidentID == nil {
			s.EditingIncidentID = nil
			return nil
		}
		v := *incidentID
		s.EditingIncidentID = &v
		return nil
	})
}

// SetCreatingProject toggles the new-project form.
func (uc *SessionUseCase) SetCreatingProject(_ context.Context, id model.SessionID, creating bool) (*model.Session, error) {
	return uc.update(id, func(s *model.Session) error {
		s.CreatingProject = creating
		return nil
	})
}

// Flash stores a one-shot message shown on the next read.
func (uc *SessionUseCase) Flash(_ context.Context, id model.SessionID, msg string) error {
	_, err := uc.update(id, func(s *model.Session) error {
		s.Flash = msg
		return nil
	})
	return err
}

// TakeFlash returns the pending message and clears it.
func (uc *SessionUseCase) TakeFlash(_ context.Context, id model.SessionID) (string, error) {
	var msg string
	_, err := uc.update(id, func(s *model.Session) error {
		msg = s.TakeFlash()
		return nil
	})
	return msg, err
}

// AdminLogin authorises the session when password matches the shared
// secret. Other sessions are not affected.
func (uc *SessionUseCase) AdminLogin(ctx context.Context, id model.SessionID, password string) (*model.Session, error) {
	if !uc.AdminEnabled() {
		return nil, goerr.Wrap(ErrAdminDisabled, "admin password is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(uc.password)) != 1 {
		logging.From(ctx).Warn("admin login rejected", "session_id", id)
		return nil, goerr.Wrap(ErrAccessDenied, "wrong admin password")
	}

	return uc.update(id, func(s *model.Session) error {
		s.AdminAuthorized = true
		return nil
	})
}

func (uc *SessionUseCase) AdminLogout(_ context.Context, id model.SessionID) (*model.Session, error) {
	return uc.update(id, func(s *model.Session) error {
		s.AdminAuthorized = false
		return nil
	})
}

// RequireAdmin fails unless the session passed AdminLogin.
func (uc *SessionUseCase) RequireAdmin(_ context.Context, id model.SessionID) error {
	if !uc.AdminEnabled() {
		return goerr.Wrap(ErrAdminDisabled, "admin password is not configured")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.lookup(id)
	if err != nil {
		return goerr.Wrap(ErrAccessDenied, "no session")
	}
	if !s.AdminAuthorized {
		return goerr.Wrap(ErrAccessDenied, "session is not authorised")
	}
	return nil
}

// Reset clears every piece of interaction state of the session.
func (uc *SessionUseCase) Reset(_ context.Context, id model.SessionID) (*model.Session, error) {
	return uc.update(id, func(s *model.Session) error {
		s.Reset()
		return nil
	})
}

// End forgets the session.
func (uc *SessionUseCase) End(_ context.Context, id model.SessionID) {
	uc.mu.Lock()
	delete(uc.sessions, id)
	uc.mu.Unlock()
}

// Purge drops expired sessions and returns how many were removed.
func (uc *SessionUseCase) Purge(_ context.Context) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.purgeLocked(uc.now())
}

func (uc *SessionUseCase) purgeLocked(now time.Time) int {
	n := 0
	for id, s := range uc.sessions {
		if now.Sub(s.LastSeenAt) > uc.ttl {
			delete(uc.sessions, id)
			n++
		}
	}
	return n
}

func (uc *SessionUseCase) update(id model.SessionID, fn func(s *model.Session) error) (*model.Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.LastSeenAt = uc.now()
	return s.Clone(), nil
}

// lookup must be called with mu held.
func (uc *SessionUseCase) lookup(id model.SessionID) (*model.Session, error) {
	s, ok := uc.sessions[id]
	if !ok || uc.now().Sub(s.LastSeenAt) > uc.ttl {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}
	return s, nil
}
