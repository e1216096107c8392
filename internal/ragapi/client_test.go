package ragapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, defaultAPIURL, u.Host)

	u, err = parseBaseURL("https://rag.example:8443/app?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://rag.example:8443", u.String())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	require.NoError(t, err)
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestClient_EncodesRequestsAndDecodesReplies(t *testing.T) {
	bodies := map[string]map[string]any{}
	var exploreQuery string
	var userAgent string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		if r.Method == http.MethodPost && r.ContentLength != 0 {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			bodies[r.URL.Path] = body
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/list_collections":
			_, _ = w.Write([]byte(`{"collections":["b","a"]}`))
		case "/create_collection", "/delete_collection", "/ingest":
			_, _ = w.Write([]byte(`{"status":"success"}`))
		case "/chat":
			_, _ = w.Write([]byte(`{"response":"hi","chunks":["c1","c2"]}`))
		case "/explore":
			exploreQuery = r.URL.Query().Get("collection")
			_, _ = w.Write([]byte(`{"summary":"two docs","documents":[{"source":"doc1","text":"hello"}]}`))
		case "/update_chunk":
			_, _ = w.Write([]byte(`{"og_text":"hello","new_text":"bye"}`))
		case "/show_session":
			_, _ = w.Write([]byte(`{"conversation_history":["Human: hi"]}`))
		case "/clear_all":
			_, _ = w.Write([]byte(`{"status":"success","message":"All data cleared"}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := testContext(t)

	names, err := c.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names)

	require.NoError(t, c.CreateCollection(ctx, "docs"))
	assert.Equal(t, map[string]any{"name": "docs"}, bodies["/create_collection"])

	require.NoError(t, c.DeleteCollection(ctx, "docs"))
	assert.Equal(t, map[string]any{"name": "docs"}, bodies["/delete_collection"])

	reply, err := c.Chat(ctx, ChatRequest{Message: "q", Collection: "docs", ChunkCount: 3})
	require.NoError(t, err)
	assert.Equal(t, "hi", reply.Response)
	assert.True(t, reply.HasChunks())
	assert.Len(t, reply.Chunks, 2)
	assert.Equal(t, map[string]any{"message": "q", "collection": "docs", "chunk_count": float64(3)}, bodies["/chat"])

	explored, err := c.Explore(ctx, "my docs&more")
	require.NoError(t, err)
	assert.Equal(t, "my docs&more", exploreQuery)
	assert.Equal(t, "two docs", explored.Summary)
	assert.Equal(t, []Chunk{{Source: "doc1", Text: "hello"}}, explored.Documents)

	size := 400
	require.NoError(t, c.Ingest(ctx, IngestRequest{Text: "body", CollectionName: "docs", Source: "a.txt", ChunkSize: &size}))
	assert.Equal(t, map[string]any{
		"text":            "body",
		"collection_name": "docs",
		"source":          "a.txt",
		"chunk_size":      float64(400),
	}, bodies["/ingest"])

	newText := "bye"
	_, err = c.UpdateChunk(ctx, UpdateChunkRequest{Action: ChunkDelete, Collection: "docs", Source: "doc1", OriginalText: "hello", NewText: &newText})
	require.NoError(t, err)
	assert.NotContains(t, bodies["/update_chunk"], "new_text")
	assert.Equal(t, "delete", bodies["/update_chunk"]["action"])

	session, err := c.ShowSession(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"conversation_history":["Human: hi"]}`, string(session))

	cleared, err := c.ClearAll(ctx)
	require.NoError(t, err)
	assert.True(t, cleared.Succeeded())
	assert.Equal(t, "All data cleared", cleared.Message)

	assert.True(t, strings.HasPrefix(userAgent, "ragdesk/"), "User-Agent = %q", userAgent)
}

func TestClient_IngestOmitsBlankChunkSize(t *testing.T) {
	var sent bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, sent = body["chunk_size"]
		_, _ = w.Write([]byte(`{}`))
	})
	require.NoError(t, c.Ingest(testContext(t), IngestRequest{Text: "x", CollectionName: "c", Source: "s"}))
	assert.False(t, sent)
}

func TestClient_ChatWithoutChunks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"plain"}`))
	})
	reply, err := c.Chat(testContext(t), ChatRequest{Message: "q", Collection: "docs"})
	require.NoError(t, err)
	assert.False(t, reply.HasChunks())
}

func TestClient_ChatEmptyChunkListIsPresent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"plain","chunks":[]}`))
	})
	reply, err := c.Chat(testContext(t), ChatRequest{Message: "q", Collection: "docs"})
	require.NoError(t, err)
	assert.True(t, reply.HasChunks())
	assert.Empty(t, reply.Chunks)
}

func TestClient_ServerErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/create_collection":
			_, _ = w.Write([]byte(`{"error":"Collection already exists"}`))
		case "/ingest":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to insert documents"}`))
		}
	})
	ctx := testContext(t)

	err := c.CreateCollection(ctx, "dup")
	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr), "err = %v", err)
	assert.Equal(t, "Collection already exists", serverErr.Message)

	err = c.Ingest(ctx, IngestRequest{Text: "x"})
	require.True(t, errors.As(err, &serverErr), "err = %v", err)
	assert.Equal(t, "Failed to insert documents", serverErr.Message)
}

func TestClient_StatusRejectsNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"database_status":"down"}`))
	})
	_, err := c.Status(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status 503")
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/list_collections":
			_, _ = w.Write([]byte("{not-json"))
		case "/explore":
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	})
	ctx := testContext(t)

	_, err := c.ListCollections(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	_, err = c.Explore(ctx, "docs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status 500")
}

func TestClient_KeepsSessionCookie(t *testing.T) {
	var sawCookie bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			_, _ = w.Write([]byte(`{"response":"ok"}`))
		case "/show_session":
			if ck, err := r.Cookie("session"); err == nil && ck.Value == "abc" {
				sawCookie = true
			}
			_, _ = w.Write([]byte(`{}`))
		}
	})
	ctx := testContext(t)

	_, err := c.Chat(ctx, ChatRequest{Message: "hi"})
	require.NoError(t, err)
	_, err = c.ShowSession(ctx)
	require.NoError(t, err)
	assert.True(t, sawCookie)
}

func TestClient_UpdateChunkRejectsUnknownAction(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", 0)
	require.NoError(t, err)
	_, err = c.UpdateChunk(context.Background(), UpdateChunkRequest{Action: "rename"})
	assert.Error(t, err)
}
