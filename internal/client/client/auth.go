package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/forumkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
)

// Login authenticates and stores the returned token pair. A 401 from the
// login endpoint means bad credentials, so it never triggers a refresh.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (json.RawMessage, error) {
	ctx = markRetried(ctx)

	raw, err := c.do(ctx, http.MethodPost, "/login/", nil, models.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if !pair.Valid() {
		return nil, ErrMalformedToken
	}
	if err := credentials.SavePair(ctx, c.store, pair); err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}
	return raw, nil
}

// RequestRegisterCode asks the backend to e-mail a registration code.
func (c *HTTPClient) RequestRegisterCode(ctx context.Context, email string) (json.RawMessage, error) {
	return c.do(markRetried(ctx), http.MethodPost, "/register/code/", nil, map[string]string{"email": email})
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (json.RawMessage, error) {
	return c.do(markRetried(ctx), http.MethodPost, "/register/", nil, r)
}

// Refresh exchanges the stored refresh token for a new pair. It shares the
// in-flight refresh of the pipeline, and a failure drops the refresh token
// and yields a LoginRequiredError.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	if err := c.auth.refreshNow(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &LoginRequiredError{Route: c.auth.loginRoute, Err: err}
	}
	return nil
}

// Logout tells the backend to end the session and drops both tokens. The
// tokens are dropped even when the call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, callErr := c.do(ctx, http.MethodPost, "/logout/", nil, nil)
	if errors.Is(callErr, ErrLoginRequired) {
		callErr = nil
	}
	return errors.Join(callErr, credentials.ClearAll(ctx, c.store))
}
