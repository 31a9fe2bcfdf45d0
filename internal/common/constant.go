// Package common contains shared constants and sentinel errors used across
// forumkeeper components.
package common

// Keys under which the credential store keeps the token pair.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// HTTP header names and the bearer scheme attached to outbound requests.
const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	RequestIDHeader     = "X-Request-ID"
)

// DefaultBaseURL is the backend origin plus the /api prefix every endpoint
// path is appended to.
const DefaultBaseURL = "http://124.222.42.111:8000/api"

// DefaultLoginRoute is where the shell sends the user once a session can no
// longer be refreshed.
const DefaultLoginRoute = "/login"

// LastUsernameKey is the local metadata key remembering who logged in last.
const LastUsernameKey = "last_username"
