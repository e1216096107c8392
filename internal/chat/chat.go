// Package chat sends chat queries against a collection and keeps the
// in-memory transcript of the session.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/outcome"
	"github.com/five82/ragdesk/internal/ragapi"
)

// Backend is the part of the API the chat pane needs.
type Backend interface {
	Chat(ctx context.Context, req ragapi.ChatRequest) (*ragapi.ChatResponse, error)
	ClearAll(ctx context.Context) (*ragapi.ClearResponse, error)
	ShowSession(ctx context.Context) (json.RawMessage, error)
}

// Client runs chat requests.
type Client struct {
	api Backend
	log *zap.Logger
}

// New returns a Client backed by api.
func New(api Backend, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{api: api, log: log}
}

// NoCollectionAlert is shown when a chat is attempted without a target.
const NoCollectionAlert = "Select a collection first"

// Send posts message and returns the resulting turn. The turn is nil unless
// the outcome is OK.
func (c *Client) Send(ctx context.Context, message, collection string, chunkCount int) (*Turn, outcome.Outcome) {
	if strings.TrimSpace(collection) == "" {
		return nil, outcome.Alert(NoCollectionAlert)
	}
	resp, err := c.api.Chat(ctx, ragapi.ChatRequest{
		Message:    message,
		Collection: collection,
		ChunkCount: chunkCount,
	})
	res := outcome.From(c.log, "chat", err, "")
	if !res.OK {
		return nil, res
	}
	turn := &Turn{Human: message, AI: resp.Response}
	if resp.HasChunks() {
		turn.Chunks = resp.Chunks
	}
	c.log.Info("chat reply",
		zap.String("collection", collection),
		zap.Int("chunk_count", chunkCount),
		zap.String("chunks_used", turn.ChunksUsed()),
	)
	return turn, res
}

// ClearSession wipes the server session. The outcome is OK, with the server's
// message as alert, only when the literal success status comes back.
func (c *Client) ClearSession(ctx context.Context) outcome.Outcome {
	resp, err := c.api.ClearAll(ctx)
	res := outcome.From(c.log, "clear_all", err, "")
	if !res.OK {
		return res
	}
	if !resp.Succeeded() {
		c.log.Warn("clear_all did not succeed", zap.String("status", resp.Status))
		return outcome.Outcome{}
	}
	return outcome.Outcome{Alert: resp.Message, OK: true}
}

// FetchSession returns the server session pretty-printed with two-space
// indentation.
func (c *Client) FetchSession(ctx context.Context) (string, error) {
	raw, err := c.api.ShowSession(ctx)
	if err != nil {
		outcome.Silent(c.log, "show_session", err)
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("format session: %w", err)
	}
	return buf.String(), nil
}
