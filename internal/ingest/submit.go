package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/outcome"
	"github.com/five82/ragdesk/internal/ragapi"
)

// Backend is the part of the API ingestion needs.
type Backend interface {
	Ingest(ctx context.Context, req ragapi.IngestRequest) error
}

// Submitter sends staged text to the backend.
type Submitter struct {
	api Backend
	log *zap.Logger
}

// NewSubmitter returns a Submitter backed by api.
func NewSubmitter(api Backend, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{api: api, log: log}
}

// Ingest submits file into collection as one request. A nil chunkSize leaves
// the chunk size to the server.
func (s *Submitter) Ingest(ctx context.Context, file *StagedFile, collection string, chunkSize *int) outcome.Outcome {
	req := ragapi.IngestRequest{
		Text:           file.Text,
		CollectionName: collection,
		Source:         file.Name,
		ChunkSize:      chunkSize,
	}
	err := s.api.Ingest(ctx, req)
	if err == nil {
		s.log.Info("ingested",
			zap.String("source", file.Name),
			zap.String("collection", collection),
			zap.Int("chars", len(file.Text)),
		)
	}
	return outcome.From(s.log, "ingest", err, "Data ingested successfully")
}
