package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Well-known per-user document paths.
const (
	PathProfile         = "profile"
	PathChatHistory     = "chat/history"
	PathLearningHistory = "learning/history"
	PathLLMLog          = "system/llmlog"
)

// ErrNotFound is returned by Get when no document exists at the given path.
var ErrNotFound = errors.New("document not found")

// SetOptions controls write semantics.
type SetOptions struct {
	// Merge overlays the provided fields onto the existing document instead
	// of replacing it. Nested objects are merged field by field; the last
	// write for a given field wins. Sibling fields are untouched.
	Merge bool
}

// Store is the document-store abstraction the mentor core persists through.
// Documents are JSON objects keyed by (userID, path). Implementations must
// make Set and Increment atomic per document: a failed write leaves the
// stored document unchanged.
type Store interface {
	// Get returns the document at path, or ErrNotFound.
	Get(ctx context.Context, userID, path string) (json.RawMessage, error)

	// Set writes doc at path. With opts.Merge the write overlays doc's
	// fields onto the existing document (creating it if absent).
	Set(ctx context.Context, userID, path string, doc any, opts SetOptions) error

	// Increment atomically adds each delta to the numeric field named by its
	// dotted path (e.g. "gamification.xp"), creating missing fields and
	// intermediate objects as zero values. All deltas are applied in a
	// single atomic step: either every field is incremented or none is.
	Increment(ctx context.Context, userID, path string, deltas map[string]int64) error
}
