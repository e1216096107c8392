// Package registry lists, creates and deletes backend collections and keeps
// the collection selectors used by the upload, chat and explore panes.
package registry

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/outcome"
)

// Backend is the part of the API the registry needs.
type Backend interface {
	ListCollections(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, name string) error
	DeleteCollection(ctx context.Context, name string) error
}

// ErrRefreshFailed marks a refresh whose result must not touch the selectors.
var ErrRefreshFailed = errors.New("collection refresh failed")

// Registry issues collection requests. It holds no collection state; the
// caller owns the Selectors.
type Registry struct {
	api Backend
	log *zap.Logger
}

// New returns a Registry backed by api.
func New(api Backend, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{api: api, log: log}
}

// Refresh fetches collection names in server order. Failures are logged and
// reported as ErrRefreshFailed so callers leave their selectors alone.
func (r *Registry) Refresh(ctx context.Context) ([]string, error) {
	names, err := r.api.ListCollections(ctx)
	if err != nil {
		outcome.Silent(r.log, "list_collections", err)
		return nil, ErrRefreshFailed
	}
	if names == nil {
		names = []string{}
	}
	r.log.Debug("collections refreshed", zap.Int("count", len(names)))
	return names, nil
}

// Create asks the backend for a new collection. The name is not validated
// here; the server decides.
func (r *Registry) Create(ctx context.Context, name string) outcome.Outcome {
	err := r.api.CreateCollection(ctx, name)
	if err == nil {
		r.log.Info("collection created", zap.String("collection", name))
	}
	return outcome.From(r.log, "create_collection", err, "Collection created successfully!")
}

// Delete drops the named collection.
func (r *Registry) Delete(ctx context.Context, name string) outcome.Outcome {
	err := r.api.DeleteCollection(ctx, name)
	if err == nil {
		r.log.Info("collection deleted", zap.String("collection", name))
	}
	return outcome.From(r.log, "delete_collection", err, "Collection deleted successfully!")
}
