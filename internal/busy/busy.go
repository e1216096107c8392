// Package busy tracks in-flight operations behind the blocking overlay.
//
// Each operation takes its own token and releases exactly that token, so
// overlapping requests keep the overlay up until the last one finishes,
// whatever order their responses arrive in.
package busy

import (
	"sort"

	"github.com/google/uuid"
)

// Token identifies one in-flight operation.
type Token string

// Tracker is a set of outstanding tokens. The zero value is ready to use.
// It is owned by the UI update loop and not safe for concurrent use.
type Tracker struct {
	active map[Token]string
}

// Begin registers an operation labelled label and returns its token.
func (t *Tracker) Begin(label string) Token {
	if t.active == nil {
		t.active = make(map[Token]string)
	}
	tok := Token(uuid.NewString())
	t.active[tok] = label
	return tok
}

// End releases tok. Releasing an unknown or already released token is a no-op,
// which makes it safe to call from every completion path.
func (t *Tracker) End(tok Token) {
	delete(t.active, tok)
}

// Active reports whether any operation is still outstanding.
func (t *Tracker) Active() bool {
	return len(t.active) > 0
}

// Count returns the number of outstanding operations.
func (t *Tracker) Count() int {
	return len(t.active)
}

// Labels returns the labels of outstanding operations, sorted.
func (t *Tracker) Labels() []string {
	labels := make([]string, 0, len(t.active))
	for _, l := range t.active {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
