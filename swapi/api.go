package swapi

import (
	"context"
	"encoding/json"
)

// API defines the interface for SWAPI operations
type API interface {
	// FetchEndpoint fetches a path relative to the base URL
	FetchEndpoint(ctx context.Context, path string) (json.RawMessage, error)

	// FetchReference fetches an absolute entity URL
	FetchReference(ctx context.Context, ref string) (Entity, error)

	// Root fetches the category listing
	Root(ctx context.Context) (Root, error)

	// Page fetches the first page of a category
	Page(ctx context.Context, category string) (*Page, error)

	// Find returns the first search match or an ErrNotFound error
	Find(ctx context.Context, category, term string) (Entity, error)

	// Resolve fetches a list of entity references in order
	Resolve(ctx context.Context, refs []string) ([]Entity, error)
}

// Collector provides methods for walking whole collections
type Collector interface {
	// AllPages fetches every page of a category
	AllPages(ctx context.Context, category string) ([]Entity, error)

	// Search returns every match of a term in a category
	Search(ctx context.Context, category, term string) ([]Entity, error)
}

var (
	_ API       = (*Client)(nil)
	_ Collector = (*Client)(nil)
)
