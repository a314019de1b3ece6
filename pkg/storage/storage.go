// Package storage provides the persistent key-value substrate the
// repositories run on: string keys, UTF-8 string values, no schema. Three
// backends exist with the same contract; which one is used is a config
// choice, not a behavioral one.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set. Absent keys
// are a normal, expected case for every collection; callers default rather
// than fail.
var ErrNotFound = errors.New("key not found")

// Store is the key-value substrate all persisted collections live in.
// Implementations must treat values as opaque strings.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
