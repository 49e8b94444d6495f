package vectorstore

import (
	"context"
)

// Entry is one embedded framework-catalog document.
type Entry struct {
	FrameworkID string
	Content     string
	Embedding   []float32
}

// SearchResult is one similarity match against the catalog.
type SearchResult struct {
	FrameworkID string  `json:"framework_id"`
	Content     string  `json:"content"`
	Score       float64 `json:"score"`
}

// SearchOptions bounds a similarity search.
type SearchOptions struct {
	TopK     int
	MinScore float64
}

// VectorStore indexes the framework catalog for semantic lookup.
type VectorStore interface {
	Upsert(ctx context.Context, entries []Entry) error
	SimilaritySearch(ctx context.Context, query []float32, opts SearchOptions) ([]SearchResult, error)
}
