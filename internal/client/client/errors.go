package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrLoginRequired = errors.New("login required")

	ErrNoRefreshToken = errors.New("no refresh token stored")
	ErrMalformedToken = errors.New("malformed token response")
)

// maxErrorBody caps how much of a failed response body is kept in APIError.
const maxErrorBody = 4 << 10

// APIError is a non-2xx response from the backend. It unwraps to the
// sentinel matching its status, so callers can test errors.Is(err,
// ErrNotFound) without looking at codes.
type APIError struct {
	StatusCode int
	Body       []byte
}

func newAPIError(code int, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &APIError{StatusCode: code, Body: body}
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Body) > 0 {
		msg += ": " + string(e.Body)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return nil
	}
}

// LoginRequiredError is returned when an expired session could not be
// refreshed. The stored refresh token has already been dropped; the shell
// is expected to send the user to Route and start a new login.
type LoginRequiredError struct {
	Route string
	Err   error
}

func (e *LoginRequiredError) Error() string {
	return fmt.Sprintf("login required (%s): %v", e.Route, e.Err)
}

func (e *LoginRequiredError) Is(target error) bool {
	return target == ErrLoginRequired
}

func (e *LoginRequiredError) Unwrap() error {
	return e.Err
}
