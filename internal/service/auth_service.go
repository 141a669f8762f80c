package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/trackswift/internal/auth"
	"github.com/spec-kit/trackswift/internal/config"
	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/repository"
	"github.com/spec-kit/trackswift/internal/session"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	accounts   repository.AccountRepository
	sessions   session.Store
	tokenMgr   *auth.TokenManager
	bcryptCost int
	sessionTTL time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo  repository.AccountRepository
	SessionStore session.Store
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		sessions:   deps.SessionStore,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret),
		bcryptCost: cfg.Auth.BcryptCost,
		sessionTTL: cfg.Auth.SessionTTL(),
	}
}

// Register creates a new account. A duplicate username surfaces as a
// conflict to the caller; it is never retried or overwritten.
func (s *AuthService) Register(ctx context.Context, username, secret, role string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return nil, util.NewValidationError("username and secret required", nil)
	}

	if role == "" {
		role = string(domain.RoleUser)
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, util.NewValidationError("unknown role", map[string]any{"role": role})
	}

	hash, err := auth.HashSecret(secret, s.bcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	account := &domain.Account{
		Username:   username,
		SecretHash: hash,
		Role:       parsedRole,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies credentials and opens a session. A wrong secret returns the
// same invalid-credentials result no matter how many attempts preceded it;
// there is no lockout.
func (s *AuthService) Login(ctx context.Context, username, secret string) (*session.Session, string, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if util.HasCode(err, util.CodeNotFound) {
			return nil, "", util.NewUnauthorized("invalid credentials")
		}
		return nil, "", err
	}
	if err := auth.CompareSecret(account.SecretHash, secret); err != nil {
		return nil, "", util.NewUnauthorized("invalid credentials")
	}

	sess := session.New(account, s.sessionTTL)
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, "", util.MapError(err)
	}

	token, err := s.tokenMgr.GenerateToken(sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, "", util.NewInternalError(err)
	}
	return sess, token, nil
}

// Logout drops the session; any cached identity is invalid immediately.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
