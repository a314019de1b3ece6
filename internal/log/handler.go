// Package log provides slog handlers.
package log

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlationID"
	collectionKey    contextKey = "collection"
)

const (
	// AttrKeyCorrelationID is the attribute key carrying the id of the run or
	// action a record belongs to.
	AttrKeyCorrelationID = "id"
	// AttrKeyCollection is the attribute key naming the stored collection an
	// operation touches (events, joinedEventIds, ...).
	AttrKeyCollection = "collection"
)

// WithCorrelationID returns a context whose log records carry id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// GetCorrelationID returns the correlation id stored in ctx, if any.
func GetCorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey).(string)
	return id, ok
}

// WithCollection returns a context whose log records carry the collection name.
func WithCollection(ctx context.Context, collection string) context.Context {
	return context.WithValue(ctx, collectionKey, collection)
}

// GetCollection returns the collection name stored in ctx, if any.
func GetCollection(ctx context.Context) (string, bool) {
	collection, ok := ctx.Value(collectionKey).(string)
	return collection, ok
}

// ContextHandler adds values from the [context.Context] to the [slog.Record].
// [slog.Handler] is passed to [slog.Logger] which is then used throughout the
// app. Not every use of the logger happens inside a store operation, so it
// has to be ok with keys not being set in the [context.Context].
type ContextHandler struct {
	slog.Handler
}

func New(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := GetCorrelationID(ctx); ok {
		r.AddAttrs(slog.String(AttrKeyCorrelationID, id))
	}

	// logs outside of a store operation do not have a collection in the context
	if collection, ok := GetCollection(ctx); ok {
		r.AddAttrs(slog.String(AttrKeyCollection, collection))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(h.Handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return New(h.Handler.WithGroup(name))
}
