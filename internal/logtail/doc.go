// Package logtail reads the end of the client's own log file for the Console
// pane.
//
// Read keeps a ring buffer of the last maxLines lines, so memory use is
// bounded by the window and not by the file size. Lines come back in file
// order.
//
// Parse understands the JSON records written by internal/logging: level,
// timestamp, component and message are lifted into Entry, every other key
// becomes a Field sorted by name. Anything else (a panic trace, a line
// written by hand) is passed through as a raw Entry.
//
//	entries, err := logtail.Tail(cfg.LogFile, 400)
package logtail
