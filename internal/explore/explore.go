// Package explore lists the chunks stored in a collection and edits or
// deletes single chunks.
//
// A chunk has no id on the wire. It is addressed by its source and its text
// as they were when the editor opened, so Editor keeps the original text
// apart from the text being edited.
package explore

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/outcome"
	"github.com/five82/ragdesk/internal/ragapi"
)

// Success alerts.
const (
	SavedAlert   = "Chunk updated successfully"
	DeletedAlert = "Chunk deleted successfully"
)

// Backend is the part of the API the explore pane needs.
type Backend interface {
	Explore(ctx context.Context, collection string) (*ragapi.ExploreResponse, error)
	UpdateChunk(ctx context.Context, req ragapi.UpdateChunkRequest) (*ragapi.UpdateChunkResponse, error)
}

// Editor is the state of the chunk edit form.
type Editor struct {
	Source       string
	OriginalText string
	Text         string
}

// OpenEditor captures row for editing.
func OpenEditor(row ragapi.Chunk) Editor {
	return Editor{Source: row.Source, OriginalText: row.Text, Text: row.Text}
}

// Dirty reports whether the text was changed.
func (e Editor) Dirty() bool { return e.Text != e.OriginalText }

// SaveRequest builds the save body for collection.
func (e Editor) SaveRequest(collection string) ragapi.UpdateChunkRequest {
	text := e.Text
	return ragapi.UpdateChunkRequest{
		Action:       ragapi.ChunkSave,
		Collection:   collection,
		Source:       e.Source,
		OriginalText: e.OriginalText,
		NewText:      &text,
	}
}

// DeleteRequest builds the delete body for collection.
func (e Editor) DeleteRequest(collection string) ragapi.UpdateChunkRequest {
	return ragapi.UpdateChunkRequest{
		Action:       ragapi.ChunkDelete,
		Collection:   collection,
		Source:       e.Source,
		OriginalText: e.OriginalText,
	}
}

// Service runs explore requests.
type Service struct {
	api Backend
	log *zap.Logger
}

// New returns a Service backed by api.
func New(api Backend, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, log: log}
}

// Load fetches every chunk of collection. The response is nil unless the
// outcome is OK.
func (s *Service) Load(ctx context.Context, collection string) (*ragapi.ExploreResponse, outcome.Outcome) {
	resp, err := s.api.Explore(ctx, collection)
	res := outcome.From(s.log, "explore", err, "")
	if !res.OK {
		return nil, res
	}
	s.log.Info("explore loaded", zap.String("collection", collection), zap.Int("documents", len(resp.Documents)))
	return resp, res
}

// Save submits the edited text.
func (s *Service) Save(ctx context.Context, collection string, e Editor) outcome.Outcome {
	_, err := s.api.UpdateChunk(ctx, e.SaveRequest(collection))
	return outcome.From(s.log, "update_chunk", err, SavedAlert)
}

// Delete removes the chunk the editor was opened on.
func (s *Service) Delete(ctx context.Context, collection string, e Editor) outcome.Outcome {
	_, err := s.api.UpdateChunk(ctx, e.DeleteRequest(collection))
	return outcome.From(s.log, "delete_chunk", err, DeletedAlert)
}
