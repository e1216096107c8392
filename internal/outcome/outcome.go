// Package outcome turns the result of a backend call into what the user sees.
//
// Transport, status and decode failures are logged and produce no alert.
// Errors the server reports through its `error` field become the alert text.
package outcome

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/ragapi"
)

// Outcome is the user-facing result of an operation.
type Outcome struct {
	Alert string // empty: nothing to show
	OK    bool
}

// From classifies err for operation op. success is the alert shown when err
// is nil; it may be empty.
func From(log *zap.Logger, op string, err error, success string) Outcome {
	if err == nil {
		return Outcome{Alert: success, OK: true}
	}
	var serverErr *ragapi.ServerError
	if errors.As(err, &serverErr) {
		log.Info("server rejected request", zap.String("op", op), zap.String("error", serverErr.Message))
		return Outcome{Alert: serverErr.Message}
	}
	Silent(log, op, err)
	return Outcome{}
}

// Silent logs a failure that is not surfaced to the user. Cancellation is
// expected on shutdown and not logged.
func Silent(log *zap.Logger, op string, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	log.Warn("request failed", zap.String("op", op), zap.Error(err))
}

// Alert builds a client-side alert that did not involve the backend.
func Alert(msg string) Outcome {
	return Outcome{Alert: msg}
}
