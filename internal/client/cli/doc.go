// Package cli provides the interactive UserDesk admin console.
//
// It wires configuration, local storage, the REST client, the session holder
// and the services into a REPL that supports online/offline operation.
// Typical flow: restore the previous session, fetch the user collection,
// start a background connectivity watcher, and execute operator commands.
//
// Key features:
//   - Login / Logout (online with offline fallback)
//   - Directory: list, search, sort, add, delete, refresh
//   - Analytics dashboard with window counts and a month bar chart
//   - Export of a JSON report to a file or S3
//
// The REPL is started via App.Root(ctx), which blocks until the operator exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
