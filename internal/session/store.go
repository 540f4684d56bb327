package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is the gateway-side record of one signed-in admin UI user. The
// fields mirror the browser-storage keys the UI historically used: token,
// user, originalUser and originalSession.
type Session struct {
	ID            string       `json:"id"`
	Token         string       `json:"token"`
	User          models.User  `json:"user"`
	OriginalUser  *models.User `json:"originalUser,omitempty"`
	OriginalToken string       `json:"originalSession,omitempty"`
}

// New creates a session for a freshly authenticated user.
func New(token string, user models.User) *Session {
	return &Session{ID: uuid.NewString(), Token: token, User: user}
}

// Impersonating reports whether an impersonation is active.
func (s *Session) Impersonating() bool {
	return s != nil && s.OriginalUser != nil
}

// Impersonate swaps in the target user's token, stashing the original pair so
// it can be restored later. Nested impersonation keeps the first original.
func (s *Session) Impersonate(token string, user models.User) {
	if s.OriginalUser == nil {
		original := s.User
		s.OriginalUser = &original
		s.OriginalToken = s.Token
	}
	s.Token = token
	s.User = user
}

// StopImpersonating restores the stashed user and token. A no-op when no
// impersonation is active.
func (s *Session) StopImpersonating() {
	if s.OriginalUser == nil {
		return
	}
	s.User = *s.OriginalUser
	s.Token = s.OriginalToken
	s.OriginalUser = nil
	s.OriginalToken = ""
}

// Store persists gateway sessions. Populated on login/impersonate, cleared on
// logout/stop-impersonating per the defined lifecycle.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, sess *Session) error
	Clear(ctx context.Context, id string) error
}
