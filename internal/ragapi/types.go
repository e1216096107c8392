package ragapi

import (
	"encoding/json"
	"fmt"
)

// ServerError is a logical failure reported by the backend through the
// `error` field of a JSON response.
type ServerError struct {
	Path    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// errorEnvelope is embedded in every response that may carry an error field.
type errorEnvelope struct {
	Error string `json:"error,omitempty"`
}

func (e errorEnvelope) serverError() string { return e.Error }

// CollectionList mirrors GET /list_collections.
type CollectionList struct {
	Collections []string `json:"collections"`
}

// CollectionRequest is the body of /create_collection and /delete_collection.
type CollectionRequest struct {
	Name string `json:"name"`
}

// StatusResponse mirrors GET /status.
type StatusResponse struct {
	DatabaseStatus string `json:"database_status"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message    string `json:"message"`
	Collection string `json:"collection"`
	ChunkCount int    `json:"chunk_count"`
}

// ChatResponse mirrors a successful /chat reply. Chunks is nil when the
// server omitted the field or sent null; an empty list decodes to a non-nil
// empty slice.
type ChatResponse struct {
	Response string            `json:"response"`
	Chunks   []json.RawMessage `json:"chunks"`
}

// HasChunks reports whether the server returned a chunk list at all.
func (r ChatResponse) HasChunks() bool {
	return r.Chunks != nil
}

// ClearResponse mirrors POST /clear_all.
type ClearResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Succeeded reports whether the literal success status was returned.
func (r ClearResponse) Succeeded() bool {
	return r.Status == "success"
}

// Chunk is one stored chunk record as listed by /explore.
type Chunk struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// ExploreResponse mirrors GET /explore.
type ExploreResponse struct {
	Summary   string  `json:"summary"`
	Documents []Chunk `json:"documents"`
}

// IngestRequest is the body of POST /ingest. A nil ChunkSize lets the server
// apply its own default.
type IngestRequest struct {
	Text           string `json:"text"`
	CollectionName string `json:"collection_name"`
	Source         string `json:"source"`
	ChunkSize      *int   `json:"chunk_size,omitempty"`
}

// ChunkAction selects the /update_chunk operation.
type ChunkAction string

const (
	ChunkSave   ChunkAction = "save"
	ChunkDelete ChunkAction = "delete"
)

// UpdateChunkRequest is the body of POST /update_chunk. The chunk is
// addressed by (Source, OriginalText); NewText is only sent for saves.
type UpdateChunkRequest struct {
	Action       ChunkAction `json:"action"`
	Collection   string      `json:"collection"`
	Source       string      `json:"source"`
	OriginalText string      `json:"og_text"`
	NewText      *string     `json:"new_text,omitempty"`
}

// UpdateChunkResponse mirrors a successful /update_chunk reply.
type UpdateChunkResponse struct {
	OriginalText string `json:"og_text"`
	NewText      string `json:"new_text"`
}
