// Package docstore abstracts the document database behind a small driver
// interface with a MongoDB implementation and an in-memory local one.
package docstore

import (
	"context"
)

// Store defines an interface for a document store, modeled after common
// MongoDB operations. A Store is bound to a single logical database;
// collections are addressed by name on each call.
//
// Implementations must be safe for concurrent use. The Store performs no
// retries and no caching; resilience is the underlying driver's concern.
type Store interface {
	// InsertOne inserts a single document into the collection
	InsertOne(ctx context.Context, collection string, document interface{}) error

	// ReplaceOne atomically replaces the first document matching the filter
	// and decodes the previous document into previous. Returns false when no
	// document matched, which is not an error.
	ReplaceOne(ctx context.Context, collection string, filter interface{}, replacement interface{}, previous interface{}) (bool, error)

	// DeleteOne deletes at most one document matching the filter and returns
	// the number of documents deleted (0 or 1). Zero deletions is not an error.
	DeleteOne(ctx context.Context, collection string, filter interface{}) (int64, error)

	// Find decodes all documents matching the filter into results
	Find(ctx context.Context, collection string, filter interface{}, results interface{}) error

	// Query returns a cursor over documents matching the filter. The query is
	// issued when the cursor is first advanced; callers must close the cursor.
	Query(ctx context.Context, collection string, filter interface{}) (Cursor, error)

	// CountDocuments counts documents matching the filter
	CountDocuments(ctx context.Context, collection string, filter interface{}) (int64, error)

	// EnsureDatabase establishes the database handle, creating the database
	// if the backing store requires it. Document stores typically create
	// databases implicitly on first write.
	EnsureDatabase(ctx context.Context) error

	// DropDatabase drops the entire database. Irreversible.
	DropDatabase(ctx context.Context) error

	// Ping verifies the store is reachable
	Ping(ctx context.Context) error

	// Close releases resources owned by the store. A store constructed over
	// an externally owned client must not close that client.
	Close(ctx context.Context) error
}

// Cursor iterates lazily over query results. The method set matches the
// mongo driver's cursor so the driver type satisfies it directly.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}
