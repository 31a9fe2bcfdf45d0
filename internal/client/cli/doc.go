// Package cli provides the interactive forum command-line client.
//
// It wires configuration, the credential store, the API client and the
// services into a REPL. A stored session is resumed at start-up. When a
// command fails because the session can no longer be refreshed, the user
// is told so and taken to the login prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
