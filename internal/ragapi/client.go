package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// API is the full surface of the RAG backend consumed by ragdesk.
// It is implemented by *Client; components depend on narrower subsets.
type API interface {
	ListCollections(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, name string) error
	DeleteCollection(ctx context.Context, name string) error
	Status(ctx context.Context) (*StatusResponse, error)
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	ClearAll(ctx context.Context) (*ClearResponse, error)
	ShowSession(ctx context.Context) (json.RawMessage, error)
	Explore(ctx context.Context, collection string) (*ExploreResponse, error)
	Ingest(ctx context.Context, req IngestRequest) error
	UpdateChunk(ctx context.Context, req UpdateChunkRequest) (*UpdateChunkResponse, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the RAG backend over HTTP. It keeps the server's session
// cookie so chat history, session inspection and clearing share one session.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL    = "127.0.0.1:5000"
	defaultUserAgent = "ragdesk/0.1"
)

// NewClient builds a Client for apiURL (host:port or a full URL). A zero
// timeout leaves requests bounded only by their context.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListCollections returns collection names in server order.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	var payload CollectionList
	if err := c.do(ctx, http.MethodGet, "/list_collections", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Collections, nil
}

// CreateCollection asks the backend to create a collection named name.
func (c *Client) CreateCollection(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/create_collection", CollectionRequest{Name: name}, nil)
}

// DeleteCollection asks the backend to drop the named collection.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/delete_collection", CollectionRequest{Name: name}, nil)
}

// Status probes backend health. Any non-200 reply is a failure.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var payload StatusResponse
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/status"}, nil, &payload, true); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Chat sends a message and returns the model reply with the chunks used.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var payload ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ClearAll wipes the server-side session.
func (c *Client) ClearAll(ctx context.Context) (*ClearResponse, error) {
	var payload ClearResponse
	if err := c.do(ctx, http.MethodPost, "/clear_all", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ShowSession returns the raw server session object.
func (c *Client) ShowSession(ctx context.Context) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/show_session", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Explore lists every chunk stored in collection plus a summary.
func (c *Client) Explore(ctx context.Context, collection string) (*ExploreResponse, error) {
	values := url.Values{}
	values.Set("collection", collection)
	rel := &url.URL{Path: "/explore", RawQuery: values.Encode()}
	var payload ExploreResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload, false); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Ingest submits staged text for chunking into a collection.
func (c *Client) Ingest(ctx context.Context, req IngestRequest) error {
	return c.do(ctx, http.MethodPost, "/ingest", req, nil)
}

// UpdateChunk saves or deletes a single chunk.
func (c *Client) UpdateChunk(ctx context.Context, req UpdateChunkRequest) (*UpdateChunkResponse, error) {
	if req.Action != ChunkSave && req.Action != ChunkDelete {
		return nil, fmt.Errorf("unknown chunk action %q", req.Action)
	}
	if req.Action == ChunkDelete {
		req.NewText = nil
	}
	var payload UpdateChunkResponse
	if err := c.do(ctx, http.MethodPost, "/update_chunk", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	return c.doURL(ctx, method, &url.URL{Path: path}, body, dest, false)
}

// doURL performs one JSON round trip. An `error` field in the body wins over
// the HTTP status, since the backend reports logical failures both with 200
// and 500 replies. strictOK rejects every status other than 200.
func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any, strictOK bool) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if strictOK && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}

	var envelope errorEnvelope
	if json.Unmarshal(data, &envelope) == nil {
		if msg := envelope.serverError(); msg != "" {
			return &ServerError{Path: rel.Path, Message: msg}
		}
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
