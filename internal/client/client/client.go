package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/dmitrijs2005/forumkeeper/internal/logging"
)

const refreshPath = "/relogin/"

// Options configures NewHTTPClient. Only Store is required.
type Options struct {
	// BaseURL is the backend origin plus the /api prefix.
	BaseURL string
	Store   credentials.Store
	Logger  logging.Logger
	// Timeout bounds every request, including a refresh-and-retry cycle.
	Timeout time.Duration
	// Transport sends the actual requests; http.DefaultTransport when nil.
	Transport http.RoundTripper
	// LoginRoute is carried by LoginRequiredError.
	LoginRoute string
}

// HTTPClient talks to the forum backend over JSON/HTTP. Every request goes
// through the authenticated pipeline (see authTransport). It is safe for
// concurrent use.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	store   credentials.Store
	auth    *authTransport
	log     logging.Logger
}

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	if opts.Store == nil {
		return nil, errors.New("credential store is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = common.DefaultBaseURL
	}
	if opts.LoginRoute == "" {
		opts.LoginRoute = common.DefaultLoginRoute
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	c := &HTTPClient{baseURL: base, store: opts.Store, log: opts.Logger}
	c.auth = &authTransport{
		base:           opts.Transport,
		store:          opts.Store,
		refreshURL:     c.endpoint(refreshPath, nil),
		loginRoute:     opts.LoginRoute,
		refreshTimeout: opts.Timeout,
		log:            opts.Logger.With("component", "auth-pipeline"),
	}
	c.http = &http.Client{Transport: c.auth, Timeout: opts.Timeout}
	return c, nil
}

// Store returns the credential store the client reads tokens from.
func (c *HTTPClient) Store() credentials.Store {
	return c.store
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and returns the raw response body. body, when not
// nil, is sent as JSON.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// mapError turns a transport failure into a sentinel, keeping the cause.
// The login-required outcome and cancellation are returned as they are.
func (c *HTTPClient) mapError(err error) error {
	var loginErr *LoginRequiredError
	if errors.As(err, &loginErr) {
		return loginErr
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
