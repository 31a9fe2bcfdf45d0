// Package models defines the request payloads sent to the forum backend.
// Response payloads are passed through as raw JSON and are not modelled.
package models

// TokenPair is the body returned by login and token refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Valid reports whether both tokens are present.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
