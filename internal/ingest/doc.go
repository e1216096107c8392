// Package ingest stages a local file as text and submits it to a collection.
//
// # Phases
//
//	Idle ──Choose──> FileChosen ──Stage──> TextStaged ──BeginSubmit──> Submitting
//	  ^                  │                     ^  │                        │
//	  └──ExtractFailed───┘                     │  └──Reset──> Idle         │
//	  ^                                        └───────SubmitFailed────────┤
//	  └───────────────────────SubmitSucceeded──────────────────────────────┘
//
// Pipeline only records state; Extractor and Submitter do the I/O and are
// called from UI commands.
//
// # Extraction
//
// The content type is sniffed from the file bytes. PDFs are read page by
// page, all pages at once, each page's text items joined with single spaces
// and the pages joined with newlines in page order. Any other file is staged
// byte for byte.
//
// # Watching
//
// Watch notifies when a staged file changes on disk so the UI can offer to
// stage it again.
package ingest
