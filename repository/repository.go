// Package repository provides a generic CRUD repository over a document
// store. A repository binds one model type to one collection, derives the
// collection name by pluralizing the model type name, and addresses
// documents through an equality filter on the logical "Key" field.
package repository

import (
	"context"
	"fmt"
	"iter"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"

	"mongorepo/docstore"
	"mongorepo/logging"
)

// Repository exposes queryable reads and keyed CRUD writes over one model's
// collection. It is a stateless pass-through over the store: the collection
// name and key descriptor are fixed at construction and the instance is safe
// for concurrent use. Models must map their key field(s) to the literal
// "Key"/"Key1"/"Key2"/"Key3" document fields via bson tags.
type Repository[T any] struct {
	store      docstore.Store
	keys       KeySpec[T]
	collection string
	model      string
	name       string
	log        logging.Logger
}

// New constructs a repository over the given store. The collection name is
// resolved once by pluralizing the model type name. A nil logger disables
// logging.
func New[T any](store docstore.Store, keys KeySpec[T], log logging.Logger) *Repository[T] {
	model := modelTypeName[T]()
	collection := CollectionName[T]()
	name := fmt.Sprintf("Repository[%s]", model)
	if log == nil {
		log = logging.NewNopLogger()
	}
	log = log.WithFields(logging.Fields{"repository": name, "collection": collection})
	log.Debugw("repository constructed", "model", model)
	return &Repository[T]{
		store:      store,
		keys:       keys,
		collection: collection,
		model:      model,
		name:       name,
		log:        log,
	}
}

// Collection returns the resolved collection name
func (r *Repository[T]) Collection() string {
	return r.collection
}

// Add inserts the model. A missing single-part key is populated with a newly
// generated one before insertion; composite keys are never auto-generated.
// Returns the model as persisted. Driver failures come back as *RepositoryError.
func (r *Repository[T]) Add(ctx context.Context, model T) (T, error) {
	if r.keys.missing != nil && r.keys.missing(model) {
		if err := r.keys.generate(&model); err != nil {
			return model, err
		}
	}
	if err := r.store.InsertOne(ctx, r.collection, model); err != nil {
		return model, r.wrap("add", model, err)
	}
	return model, nil
}

// Update atomically replaces the document matching the model's key and
// returns the previous document, or nil when no document matched.
func (r *Repository[T]) Update(ctx context.Context, model T) (*T, error) {
	filter, err := r.keyFilter(model)
	if err != nil {
		return nil, err
	}
	var previous T
	found, err := r.store.ReplaceOne(ctx, r.collection, filter, model, &previous)
	if err != nil {
		return nil, r.wrap("update", model, err)
	}
	if !found {
		return nil, nil
	}
	return &previous, nil
}

// Delete removes at most one document matching the model's key. Deleting an
// absent key is a silent no-op.
func (r *Repository[T]) Delete(ctx context.Context, model T) error {
	filter, err := r.keyFilter(model)
	if err != nil {
		return err
	}
	if _, err := r.store.DeleteOne(ctx, r.collection, filter); err != nil {
		return r.wrap("delete", model, err)
	}
	return nil
}

// All returns a lazy sequence over every document in the collection. The
// query is issued when the sequence is ranged over, and re-ranging re-issues
// it. Enumeration errors are yielded in the second position.
func (r *Repository[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		cursor, err := r.store.Query(ctx, r.collection, bson.M{})
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		defer cursor.Close(ctx)
		for cursor.Next(ctx) {
			var model T
			if err := cursor.Decode(&model); err != nil {
				if !yield(model, err) {
					return
				}
				continue
			}
			if !yield(model, nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Find decodes all documents matching the filter
func (r *Repository[T]) Find(ctx context.Context, filter interface{}) ([]T, error) {
	var results []T
	if err := r.store.Find(ctx, r.collection, filter, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Count counts documents matching the filter
func (r *Repository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	return r.store.CountDocuments(ctx, r.collection, filter)
}

// keyFilter builds the equality filter targeting the logical key field
func (r *Repository[T]) keyFilter(model T) (bson.M, error) {
	value, err := r.keys.render(model)
	if err != nil {
		return nil, err
	}
	return bson.M{keyField: value}, nil
}

// wrap enriches a driver failure with repository context and logs it
func (r *Repository[T]) wrap(operation string, model T, cause error) error {
	err := newRepositoryError(r.name, r.model, operation, model, cause)
	r.log.Errorw("operation failed", "operation", operation, "error", cause.Error())
	return err
}

// modelTypeName returns the simple name of the model type
func modelTypeName[T any]() string {
	var model T
	t := reflect.TypeOf(&model).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
