package ports

import "context"

// Query is a set of exact-match field filters applied to a collection.
// A field named "id" is converted to the store's native identifier type by
// the adapter.
type Query map[string]any

// DocumentStore is the narrow persistence surface the dispatcher works
// against. Implementations must return domain.ErrNotFound when a lookup
// matches no document.
type DocumentStore interface {
	// Insert stores a document and returns the identifier the store assigned.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	FindOne(ctx context.Context, collection string, query Query) (map[string]any, error)
	FindMany(ctx context.Context, collection string, query Query) ([]map[string]any, error)
	// UpdateOne applies a partial update to the first matching document and
	// refreshes its updated_at timestamp.
	UpdateOne(ctx context.Context, collection string, query Query, changes map[string]any) error
	DeleteOne(ctx context.Context, collection string, query Query) error
	// DeleteMany removes every matching document and returns how many were
	// deleted. An empty query removes the whole collection.
	DeleteMany(ctx context.Context, collection string, query Query) (int64, error)
}
