package chat

import (
	"encoding/json"
	"strconv"
)

// Turn is one exchange in the transcript.
type Turn struct {
	Human string
	AI    string

	// Chunks are the retrieved records the reply was based on; nil when the
	// server did not return a chunk list.
	Chunks []json.RawMessage

	// ShowChunks is the per-turn trace toggle.
	ShowChunks bool
}

// ChunksUsed is the literal count of retrieved chunks, or "n/a".
func (t Turn) ChunksUsed() string {
	if t.Chunks == nil {
		return "n/a"
	}
	return strconv.Itoa(len(t.Chunks))
}

// ChunksUsedLabel is the per-turn caption, e.g. "Chunks Used: 2".
func (t Turn) ChunksUsedLabel() string {
	return "Chunks Used: " + t.ChunksUsed()
}

// ChunkTrace pretty-prints the chunk list with two-space indentation. A turn
// without chunks renders as an empty list.
func (t Turn) ChunkTrace() string {
	chunks := t.Chunks
	if chunks == nil {
		chunks = []json.RawMessage{}
	}
	out, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}

// ToggleLabel is the label of the trace toggle control.
func (t Turn) ToggleLabel() string {
	if t.ShowChunks {
		return "Hide Chunks"
	}
	return "Show Chunks"
}

// Transcript is the append-only list of turns plus a cursor used to pick
// which turn's trace toggle is addressed.
type Transcript struct {
	turns    []Turn
	selected int
}

// Append adds a turn at the end and selects it.
func (tr *Transcript) Append(t Turn) {
	tr.turns = append(tr.turns, t)
	tr.selected = len(tr.turns) - 1
}

// Turns returns a copy of every turn in order.
func (tr Transcript) Turns() []Turn {
	return append([]Turn(nil), tr.turns...)
}

// Len returns the number of turns.
func (tr Transcript) Len() int { return len(tr.turns) }

// Selected returns the selected turn index, or -1 when empty.
func (tr Transcript) Selected() int {
	if len(tr.turns) == 0 {
		return -1
	}
	return tr.selected
}

// SelectPrev moves the cursor to the previous turn.
func (tr *Transcript) SelectPrev() {
	if tr.selected > 0 {
		tr.selected--
	}
}

// SelectNext moves the cursor to the next turn.
func (tr *Transcript) SelectNext() {
	if tr.selected < len(tr.turns)-1 {
		tr.selected++
	}
}

// ToggleSelected flips the trace visibility of the selected turn.
func (tr *Transcript) ToggleSelected() {
	if len(tr.turns) == 0 {
		return
	}
	tr.turns[tr.selected].ShowChunks = !tr.turns[tr.selected].ShowChunks
}

// SessionView is the show/hide state of the raw server session dump.
type SessionView struct {
	visible bool
	content string
}

// Visible reports whether the session dump is shown.
func (s SessionView) Visible() bool { return s.visible }

// Content returns the pretty-printed session, empty when hidden.
func (s SessionView) Content() string { return s.content }

// Label is the toggle control's label.
func (s SessionView) Label() string {
	if s.visible {
		return "Hide Session"
	}
	return "Show Session"
}

// Show displays freshly fetched content.
func (s *SessionView) Show(content string) {
	s.visible = true
	s.content = content
}

// Hide clears the content and resets the label.
func (s *SessionView) Hide() {
	s.visible = false
	s.content = ""
}
