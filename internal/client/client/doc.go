// Package client talks to the forum backend over JSON/HTTP.
//
// # Overview
//
// HTTPClient exposes one method per backend endpoint (auth, users, posts,
// plates, comments). Request payloads come from the models package;
// response bodies are returned as json.RawMessage.
//
// Every request goes through authTransport, an http.RoundTripper that:
//  1. attaches "Authorization: Bearer <token>" when an access token is
//     stored in the credentials.Store;
//  2. on a 401 refreshes the token pair once via POST /relogin/ and
//     re-issues the request with the new token;
//  3. when the refresh fails, drops the refresh token and returns a
//     *LoginRequiredError.
//
// A request is retried at most once. Parallel 401s share a single refresh.
//
// # Error Handling
//
// Non-2xx responses are *APIError values that unwrap to ErrUnauthorized,
// ErrNotFound or ErrUnavailable depending on the status. Transport failures
// wrap ErrUnavailable. A failed refresh matches ErrLoginRequired.
package client
