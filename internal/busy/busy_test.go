package busy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_OverlappingOperations(t *testing.T) {
	var tr Tracker
	assert.False(t, tr.Active())

	chat := tr.Begin("chat")
	explore := tr.Begin("explore")
	assert.NotEqual(t, chat, explore)
	assert.Equal(t, 2, tr.Count())

	// The first request finishing must not hide the overlay.
	tr.End(chat)
	assert.True(t, tr.Active())
	assert.Equal(t, []string{"explore"}, tr.Labels())

	tr.End(explore)
	assert.False(t, tr.Active())
}

func TestTracker_EndIsIdempotent(t *testing.T) {
	var tr Tracker
	tok := tr.Begin("ingest")
	other := tr.Begin("chat")

	tr.End(tok)
	tr.End(tok)
	tr.End(Token("unknown"))

	assert.Equal(t, 1, tr.Count())
	tr.End(other)
	assert.False(t, tr.Active())
}
