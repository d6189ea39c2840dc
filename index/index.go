// Package index defines the contracts shared by the semantic and keyword
// candidate indexes. The hybrid search engine depends on these types only,
// never on a concrete index implementation.
package index

import (
	"context"
	"errors"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
)

// ErrEmptyIndex is returned by queries against an index that has never
// completed a build, or whose last build indexed zero documents.
var ErrEmptyIndex = errors.New("index: no documents indexed")

// Hit is a single ranked result from an index query. Higher scores mean
// more relevant; scores are comparable within one result list, not across
// indexes. Equal scores are ordered by Id ascending so rankings are
// reproducible.
type Hit struct {
	Id    core.ID
	Score float64
}

// Index is the query surface shared by the semantic and keyword indexes.
// Implementations serve queries from an immutable snapshot, so Search is
// safe to call concurrently with a rebuild.
type Index interface {
	// Search returns up to k hits for the query text, best first.
	// Returns ErrEmptyIndex when no snapshot has been built.
	Search(ctx context.Context, query string, k int) ([]Hit, error)
}

// BuildInfo summarizes a completed index build.
type BuildInfo struct {
	Documents int // documents indexed
	Skipped   int // documents skipped because their text was unusable
	BuiltAt   time.Time
}
