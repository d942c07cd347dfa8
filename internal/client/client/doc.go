// Package client contains client-side building blocks for UserDesk.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the user records API: Ping, Login, ListUsers, CreateUser, DeleteUser.
//  2. A concrete REST implementation (see HTTPClient) that injects the bearer
//     token via a RoundTripper, applies a per-request timeout and maps HTTP
//     status codes to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the console, wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrLocalDataNotAvailable. Malformed user records surface as
// models.ErrMalformedRecord.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
