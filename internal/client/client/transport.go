package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/dmitrijs2005/forumkeeper/internal/logging"
	"github.com/dmitrijs2005/forumkeeper/internal/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type retriedKey struct{}

// markRetried flags a request so a 401 on it is returned to the caller
// instead of starting a refresh.
func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

func isRetried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

// authTransport is the authenticated request pipeline. It attaches the
// stored access token to every request and, on the first 401 of a request,
// refreshes the token pair once and re-issues the request with the new
// token. Concurrent refreshes are collapsed into one call.
type authTransport struct {
	base           http.RoundTripper
	store          credentials.Store
	refreshURL     string
	loginRoute     string
	refreshTimeout time.Duration
	log            logging.Logger

	group singleflight.Group
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if req.Header.Get(common.RequestIDHeader) == "" {
		req = req.Clone(ctx)
		req.Header.Set(common.RequestIDHeader, uuid.NewString())
	}
	ctx = logging.WithRequestID(ctx, req.Header.Get(common.RequestIDHeader))

	resp, sentWith, err := t.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || isRetried(ctx) {
		return resp, nil
	}
	if !replayable(req) {
		t.log.Warn(ctx, "401 on a request without a replayable body, not retrying",
			"method", req.Method, "path", req.URL.Path)
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if err := t.refresh(ctx, sentWith); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &LoginRequiredError{Route: t.loginRoute, Err: err}
	}

	retry := req.Clone(markRetried(ctx))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		retry.Body = body
	}

	metrics.RequestRetries.Inc()
	t.log.Info(ctx, "retrying request with refreshed token", "method", req.Method, "path", req.URL.Path)

	resp, _, err = t.send(retry)
	return resp, err
}

// send dispatches one attempt with the currently stored access token and
// reports which token it used.
func (t *authTransport) send(req *http.Request) (*http.Response, string, error) {
	ctx := req.Context()

	token, err := t.store.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return nil, "", fmt.Errorf("read access token: %w", err)
	}

	out := req.Clone(ctx)
	if token != "" {
		out.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	} else {
		out.Header.Del(common.AuthorizationHeader)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	if err != nil {
		metrics.ObserveRequest(req.Method, 0, time.Since(start))
		return nil, token, err
	}
	metrics.ObserveRequest(req.Method, resp.StatusCode, time.Since(start))
	return resp, token, nil
}

// refresh obtains a new token pair unless another request already did so
// after staleToken was sent.
func (t *authTransport) refresh(ctx context.Context, staleToken string) error {
	current, err := t.store.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}
	if current != "" && current != staleToken {
		return nil
	}
	return t.refreshNow(ctx)
}

// refreshNow runs one refresh, shared by every caller that arrives while
// it is in flight. The refresh outlives the cancellation of the caller
// that started it, since other callers may be waiting on it.
func (t *authTransport) refreshNow(ctx context.Context) error {
	ch := t.group.DoChan("refresh", func() (any, error) {
		rctx := context.WithoutCancel(ctx)
		if t.refreshTimeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(rctx, t.refreshTimeout)
			defer cancel()
		}
		return nil, t.doRefresh(rctx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *authTransport) doRefresh(ctx context.Context) error {
	if err := t.store.Clear(ctx, common.AccessTokenKey); err != nil {
		return fmt.Errorf("clear access token: %w", err)
	}

	pair, err := t.requestPair(ctx)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.RefreshFailure).Inc()
		t.log.Warn(ctx, "token refresh failed", "error", err)
		if cerr := t.store.Clear(ctx, common.RefreshTokenKey); cerr != nil {
			err = errors.Join(err, fmt.Errorf("clear refresh token: %w", cerr))
		}
		return err
	}

	if err := credentials.SavePair(ctx, t.store, pair); err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.RefreshFailure).Inc()
		return fmt.Errorf("save refreshed tokens: %w", err)
	}

	metrics.TokenRefreshes.WithLabelValues(metrics.RefreshSuccess).Inc()
	t.log.Info(ctx, "access token refreshed")
	return nil
}

// requestPair calls the refresh endpoint on the base transport, so the
// refresh call itself is never intercepted.
func (t *authTransport) requestPair(ctx context.Context) (models.TokenPair, error) {
	refreshToken, err := t.store.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return models.TokenPair{}, ErrNoRefreshToken
	}

	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return models.TokenPair{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(body))
	if err != nil {
		return models.TokenPair{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeader, uuid.NewString())

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		metrics.ObserveRequest(req.Method, 0, time.Since(start))
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.ObserveRequest(req.Method, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.TokenPair{}, newAPIError(resp.StatusCode, data)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if !pair.Valid() {
		return models.TokenPair{}, ErrMalformedToken
	}
	return pair, nil
}

func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}
