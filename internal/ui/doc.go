// Package ui provides the Bubble Tea terminal interface for ragdesk.
//
// # Layout
//
// The screen is a status header, a tab bar, the active pane and a command
// bar listing the keys that apply to that pane. Five top-level tabs exist:
//
//   - Home: backend status and a quick start
//   - Upload: a File sub-tab that stages a text or PDF file and ingests it,
//     and a Collections sub-tab that creates and deletes collections
//   - Chat: queries against a collection with a per-turn chunk trace and an
//     optional view of the server session
//   - Explore: a searchable, sortable, paginated table of a collection's
//     chunks with an edit/delete modal
//   - Console: the client's own log file, parsed and colored by level
//
// Tab state lives in nav.Group values; the view is derived from them.
//
// # Requests
//
// Backend calls run as tea.Cmd functions and report back as messages. Each
// message carries the reload generation it was started in and is dropped
// when a reload happened meanwhile. Blocking operations take a busy token
// and the overlay stays up until every token is released; while it is up
// only ctrl+c is handled.
//
// # Alerts
//
// Server-reported errors and success messages are shown as a modal alert.
// Ingest success and session clear reload the client once the alert is
// dismissed. Transport failures are only logged.
//
// # Files
//
//   - app.go: Model, update routing, reload and Run
//   - commands.go: messages and the commands that produce them
//   - header.go, help.go, modal.go, layout.go: chrome and overlays
//   - home.go, upload.go, chat.go, explore.go, editor.go, console.go: panes
//   - keys.go, theme.go, style_helpers.go, strings.go: shared helpers
package ui
