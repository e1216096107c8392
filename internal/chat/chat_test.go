package chat

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/ragdesk/internal/ragapi"
)

type fakeBackend struct {
	calls   int
	got     ragapi.ChatRequest
	resp    *ragapi.ChatResponse
	err     error
	clear   *ragapi.ClearResponse
	session json.RawMessage
}

func (f *fakeBackend) Chat(_ context.Context, req ragapi.ChatRequest) (*ragapi.ChatResponse, error) {
	f.calls++
	f.got = req
	return f.resp, f.err
}

func (f *fakeBackend) ClearAll(context.Context) (*ragapi.ClearResponse, error) {
	return f.clear, f.err
}

func (f *fakeBackend) ShowSession(context.Context) (json.RawMessage, error) {
	return f.session, f.err
}

func TestSend_RequiresCollection(t *testing.T) {
	backend := &fakeBackend{}
	turn, res := New(backend, nil).Send(context.Background(), "hi", "  ", 5)
	assert.Nil(t, turn)
	assert.False(t, res.OK)
	assert.Equal(t, NoCollectionAlert, res.Alert)
	assert.Zero(t, backend.calls)
}

func TestSend_AppendsTurnWithChunks(t *testing.T) {
	backend := &fakeBackend{resp: &ragapi.ChatResponse{
		Response: "Hello!",
		Chunks:   []json.RawMessage{json.RawMessage(`"first"`), json.RawMessage(`"second"`)},
	}}
	turn, res := New(backend, nil).Send(context.Background(), "hi", "docs", 3)
	require.True(t, res.OK)
	assert.Empty(t, res.Alert)
	assert.Equal(t, ragapi.ChatRequest{Message: "hi", Collection: "docs", ChunkCount: 3}, backend.got)

	require.NotNil(t, turn)
	assert.Equal(t, "hi", turn.Human)
	assert.Equal(t, "Hello!", turn.AI)
	assert.Equal(t, "Chunks Used: 2", turn.ChunksUsedLabel())
	assert.Equal(t, "[\n  \"first\",\n  \"second\"\n]", turn.ChunkTrace())
}

func TestSend_NoChunks(t *testing.T) {
	backend := &fakeBackend{resp: &ragapi.ChatResponse{Response: "ok"}}
	turn, res := New(backend, nil).Send(context.Background(), "hi", "docs", 5)
	require.True(t, res.OK)
	assert.Equal(t, "Chunks Used: n/a", turn.ChunksUsedLabel())
	assert.Equal(t, "[]", turn.ChunkTrace())
}

func TestSend_EmptyChunkListCountsZero(t *testing.T) {
	backend := &fakeBackend{resp: &ragapi.ChatResponse{Response: "ok", Chunks: []json.RawMessage{}}}
	turn, _ := New(backend, nil).Send(context.Background(), "hi", "docs", 5)
	require.NotNil(t, turn)
	assert.Equal(t, "0", turn.ChunksUsed())
	assert.Equal(t, "[]", turn.ChunkTrace())
}

func TestSend_ServerErrorAlerts(t *testing.T) {
	backend := &fakeBackend{err: &ragapi.ServerError{Path: "/chat", Message: "Collection not found"}}
	turn, res := New(backend, nil).Send(context.Background(), "hi", "gone", 5)
	assert.Nil(t, turn)
	assert.Equal(t, "Collection not found", res.Alert)
}

func TestSend_TransportErrorIsSilent(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	turn, res := New(backend, nil).Send(context.Background(), "hi", "docs", 5)
	assert.Nil(t, turn)
	assert.False(t, res.OK)
	assert.Empty(t, res.Alert)
}

func TestClearSession(t *testing.T) {
	backend := &fakeBackend{clear: &ragapi.ClearResponse{Status: "success", Message: "Session cleared"}}
	res := New(backend, nil).ClearSession(context.Background())
	assert.True(t, res.OK)
	assert.Equal(t, "Session cleared", res.Alert)

	backend.clear = &ragapi.ClearResponse{Status: "error", Message: "nope"}
	res = New(backend, nil).ClearSession(context.Background())
	assert.False(t, res.OK)
	assert.Empty(t, res.Alert)
}

func TestFetchSession_PrettyPrints(t *testing.T) {
	backend := &fakeBackend{session: json.RawMessage(`{"history":["a"]}`)}
	got, err := New(backend, nil).FetchSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"history\": [\n    \"a\"\n  ]\n}", got)
}

func TestTranscript_ToggleIsPerTurn(t *testing.T) {
	var tr Transcript
	assert.Equal(t, -1, tr.Selected())
	tr.ToggleSelected()

	tr.Append(Turn{Human: "one"})
	tr.Append(Turn{Human: "two"})
	assert.Equal(t, 1, tr.Selected())

	tr.ToggleSelected()
	turns := tr.Turns()
	assert.False(t, turns[0].ShowChunks)
	assert.True(t, turns[1].ShowChunks)
	assert.Equal(t, "Hide Chunks", turns[1].ToggleLabel())

	tr.SelectPrev()
	tr.SelectPrev()
	assert.Equal(t, 0, tr.Selected())
	tr.ToggleSelected()
	tr.ToggleSelected()
	assert.False(t, tr.Turns()[0].ShowChunks)
	assert.Equal(t, "Show Chunks", tr.Turns()[0].ToggleLabel())

	tr.SelectNext()
	tr.SelectNext()
	assert.Equal(t, 1, tr.Selected())
}

func TestSessionView(t *testing.T) {
	var s SessionView
	assert.Equal(t, "Show Session", s.Label())
	s.Show("{}")
	assert.True(t, s.Visible())
	assert.Equal(t, "Hide Session", s.Label())
	assert.Equal(t, "{}", s.Content())
	s.Hide()
	assert.False(t, s.Visible())
	assert.Empty(t, s.Content())
}
