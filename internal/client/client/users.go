package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
)

func (c *HTTPClient) GetProfile(ctx context.Context, userID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/profile/%d/", userID), nil, nil)
}

// UpdateProfile changes the caller's own profile (PATCH).
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID int64, u models.ProfileUpdate) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, idPath("/profile/%d/", userID), nil, u)
}

// AdminUpdateProfile changes any profile; the backend requires admin rights.
func (c *HTTPClient) AdminUpdateProfile(ctx context.Context, userID int64, u models.AdminProfileUpdate) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, idPath("/profile/%d/", userID), nil, u)
}

// BanUser deactivates (active=false) or reactivates a user.
func (c *HTTPClient) BanUser(ctx context.Context, userID int64, active bool) (json.RawMessage, error) {
	return c.AdminUpdateProfile(ctx, userID, models.AdminProfileUpdate{IsActive: &active})
}

// AdminSetPassword overwrites a user's password.
func (c *HTTPClient) AdminSetPassword(ctx context.Context, userID int64, password string) (json.RawMessage, error) {
	return c.AdminUpdateProfile(ctx, userID, models.AdminProfileUpdate{Password: &password})
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, userID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/profile/%d/", userID), nil, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, p models.Page) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/user/list/", p.Query(), nil)
}

func (c *HTTPClient) GetAvatar(ctx context.Context, userID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, idPath("/user/avatar/%d/", userID), nil, nil)
}

// SetAvatar uploads an avatar given as an encoded image string (data URL).
func (c *HTTPClient) SetAvatar(ctx context.Context, userID int64, avatar string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, idPath("/user/avatar/%d/", userID), nil, map[string]string{"avatar": avatar})
}

func (c *HTTPClient) DeleteAvatar(ctx context.Context, userID int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, idPath("/user/avatar/%d/", userID), nil, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/password/change/", nil,
		models.PasswordChange{OldPassword: oldPassword, NewPassword: newPassword})
}

// RequestPasswordResetCode asks for a reset code to be sent to the
// account's e-mail.
func (c *HTTPClient) RequestPasswordResetCode(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/password/reset/code/", nil, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, newPassword, code string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/password/reset/", nil,
		models.PasswordReset{NewPassword: newPassword, Code: code})
}
