// Package services contains application services for the forum CLI. This
// file defines the authentication service: login, registration, logout,
// session inspection and the password flows.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/dmitrijs2005/forumkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrEmptyField  = errors.New("required field is empty")
)

// AuthAPI is the part of the backend client the auth service needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (json.RawMessage, error)
	RequestRegisterCode(ctx context.Context, email string) (json.RawMessage, error)
	Register(ctx context.Context, r models.Registration) (json.RawMessage, error)
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (json.RawMessage, error)
	RequestPasswordResetCode(ctx context.Context) (json.RawMessage, error)
	ResetPassword(ctx context.Context, newPassword, code string) (json.RawMessage, error)
	Close() error
}

// Session describes the logged-in user as read from the access token.
type Session struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the access token is past its expiry. An expired
// session is still usable: the next request refreshes it.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate, persist the token pair and remember the username.
//   - Whoami: decode the stored access token; ErrNotLoggedIn without one.
//     When only the refresh token survived, the pair is refreshed first.
//   - Logout: end the session; local tokens are dropped in any case.
//   - Forget: Logout, then erase the local metadata (last username).
type AuthService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	RequestRegisterCode(ctx context.Context, email string) error
	Register(ctx context.Context, r models.Registration) error
	Logout(ctx context.Context) error
	Forget(ctx context.Context) (int, error)
	Whoami(ctx context.Context) (*Session, error)
	LastUsername(ctx context.Context) string
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context) error
	ResetPassword(ctx context.Context, newPassword, code string) error
	Close(ctx context.Context) error
}

type authService struct {
	api   AuthAPI
	store credentials.Store
	meta  metadata.Repository
}

// NewAuthService binds the service to the backend client and the credential
// store the client uses. meta may be nil, in which case the last username is
// not remembered.
func NewAuthService(api AuthAPI, store credentials.Store, meta metadata.Repository) AuthService {
	return &authService{api: api, store: store, meta: meta}
}

func (a *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyField
	}
	if _, err := a.api.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if a.meta != nil {
		if err := a.meta.Set(ctx, common.LastUsernameKey, username); err != nil {
			return nil, fmt.Errorf("saving username: %w", err)
		}
	}

	s, err := a.Whoami(ctx)
	if err != nil {
		return nil, err
	}
	if s.Username == "" {
		s.Username = username
	}
	return s, nil
}

func (a *authService) RequestRegisterCode(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmptyField
	}
	_, err := a.api.RequestRegisterCode(ctx, email)
	return err
}

func (a *authService) Register(ctx context.Context, r models.Registration) error {
	if r.Username == "" || r.Password == "" || r.Email == "" || r.Code == "" {
		return ErrEmptyField
	}
	if _, err := a.api.Register(ctx, r); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.api.Logout(ctx)
}

// Forget logs out and removes every local metadata entry. It returns how
// many entries were removed.
func (a *authService) Forget(ctx context.Context) (int, error) {
	logoutErr := a.Logout(ctx)
	if a.meta == nil {
		return 0, logoutErr
	}

	entries, err := a.meta.List(ctx)
	if err != nil {
		return 0, errors.Join(logoutErr, err)
	}
	if err := a.meta.Clear(ctx); err != nil {
		return 0, errors.Join(logoutErr, err)
	}
	return len(entries), logoutErr
}

// sessionClaims covers both the backend's token claims and the fake
// backend's.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Whoami decodes the stored access token without verifying it; the client
// has no key to verify with and only displays the result.
func (a *authService) Whoami(ctx context.Context) (*Session, error) {
	pair, err := credentials.LoadPair(ctx, a.store)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	if pair.AccessToken == "" && pair.RefreshToken != "" {
		if err := a.api.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
		}
		if pair, err = credentials.LoadPair(ctx, a.store); err != nil {
			return nil, fmt.Errorf("read tokens: %w", err)
		}
	}
	if pair.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}

	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(pair.AccessToken, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	s := &Session{UserID: claims.UserID, Username: claims.Username}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

func (a *authService) LastUsername(ctx context.Context) string {
	if a.meta == nil {
		return ""
	}
	name, _, err := a.meta.Get(ctx, common.LastUsernameKey)
	if err != nil {
		return ""
	}
	return name
}

func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrEmptyField
	}
	_, err := a.api.ChangePassword(ctx, oldPassword, newPassword)
	return err
}

func (a *authService) RequestPasswordReset(ctx context.Context) error {
	_, err := a.api.RequestPasswordResetCode(ctx)
	return err
}

func (a *authService) ResetPassword(ctx context.Context, newPassword, code string) error {
	if newPassword == "" || code == "" {
		return ErrEmptyField
	}
	_, err := a.api.ResetPassword(ctx, newPassword, code)
	return err
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.api.Close()
}
