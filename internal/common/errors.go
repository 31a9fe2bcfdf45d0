// Package common defines shared constants and sentinel errors used across
// client and fake-backend layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Token errors reported by the backend (and the fake backend).
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Credential store errors.
	ErrUnknownStore = errors.New("unknown credential store")
)
