package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/session"
	"github.com/monikajha100/prime-admin-gateway/internal/upstream"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

type authUpstream interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	Register(ctx context.Context, email, password, fullName string) (*upstream.AuthResult, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Impersonate(ctx context.Context, token, userID string) (*upstream.AuthResult, error)
}

// AuthService owns the gateway session lifecycle: login populates the store,
// logout clears it, impersonation swaps tokens inside the stored session.
type AuthService struct {
	upstream authUpstream
	sessions session.Store
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(up authUpstream, sessions session.Store, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{upstream: up, sessions: sessions, logger: logger, now: time.Now}
}

// Login authenticates against the academy API and creates a gateway session.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.SessionResponse, error) {
	result, err := s.upstream.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	sess := session.New(result.Token, result.User)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	s.logger.Info("user logged in", zap.String("user_id", result.User.ID))
	return sessionResponse(sess), nil
}

// Register creates an account upstream and signs the new user in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.SessionResponse, error) {
	result, err := s.upstream.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	sess := session.New(result.Token, result.User)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return sessionResponse(sess), nil
}

// Logout clears the gateway session. Unknown ids are treated as success.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil && err != session.ErrNotFound {
		return appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return nil
}

// Resolve loads the session for an incoming request. A session whose upstream
// token has expired is evicted and reported as expired so the UI re-logs in.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if err == session.ErrNotFound {
			return nil, appErrors.ErrSessionExpired
		}
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	if session.TokenExpired(sess.Token, s.now()) {
		_ = s.sessions.Clear(ctx, sessionID)
		return nil, appErrors.ErrSessionExpired
	}
	return sess, nil
}

// Current returns the signed-in (possibly impersonated) user's view.
func (s *AuthService) Current(ctx context.Context, sess *session.Session) (*dto.SessionResponse, error) {
	user, err := s.upstream.Me(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	sess.User = *user
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return sessionResponse(sess), nil
}

// Impersonate switches the session to act as the target user. The original
// user and token stay stashed in the session for StopImpersonating.
func (s *AuthService) Impersonate(ctx context.Context, sess *session.Session, userID string) (*dto.SessionResponse, error) {
	if sess.User.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	result, err := s.upstream.Impersonate(ctx, sess.Token, userID)
	if err != nil {
		return nil, err
	}
	sess.Impersonate(result.Token, result.User)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	s.logger.Info("impersonation started",
		zap.String("admin_id", sess.OriginalUser.ID),
		zap.String("target_id", result.User.ID))
	return sessionResponse(sess), nil
}

// StopImpersonating restores the original admin identity.
func (s *AuthService) StopImpersonating(ctx context.Context, sess *session.Session) (*dto.SessionResponse, error) {
	sess.StopImpersonating()
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return sessionResponse(sess), nil
}

func sessionResponse(sess *session.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionID:     sess.ID,
		User:          sess.User,
		Impersonating: sess.Impersonating(),
	}
}
