package docstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bytedance/sonic"
)

// matchesFilter returns true if all key-value pairs in filterMap match those in docMap.
func matchesFilter(docMap, filterMap map[string]interface{}) bool {
	for k, v := range filterMap {
		if docMap[k] != v {
			return false
		}
	}
	return true
}

// toMap round-trips a value through JSON into a generic map so filter values
// and document fields compare with the same scalar representation.
func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := make(map[string]interface{})
	if err := sonic.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// LocalStore is an in-memory Store implementation for local development
// and tests. Documents are held as JSON, so filter matching follows the
// models' json tags rather than their bson tags.
type LocalStore struct {
	mu   sync.RWMutex
	data map[string][]json.RawMessage // collection -> documents
}

func NewLocalStore() *LocalStore {
	return &LocalStore{data: make(map[string][]json.RawMessage)}
}

func (l *LocalStore) InsertOne(ctx context.Context, collection string, document interface{}) error {
	b, err := sonic.Marshal(document)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[collection] = append(l.data[collection], b)
	return nil
}

func (l *LocalStore) ReplaceOne(ctx context.Context, collection string, filter interface{}, replacement interface{}, previous interface{}) (bool, error) {
	filterMap, err := toMap(filter)
	if err != nil {
		return false, err
	}
	b, err := sonic.Marshal(replacement)
	if err != nil {
		return false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, doc := range l.data[collection] {
		docMap, err := toMap(doc)
		if err != nil {
			continue
		}
		if matchesFilter(docMap, filterMap) {
			if err := sonic.Unmarshal(doc, previous); err != nil {
				return false, err
			}
			l.data[collection][i] = b
			return true, nil
		}
	}
	return false, nil
}

func (l *LocalStore) DeleteOne(ctx context.Context, collection string, filter interface{}) (int64, error) {
	filterMap, err := toMap(filter)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	docs := l.data[collection]
	for i, doc := range docs {
		docMap, err := toMap(doc)
		if err != nil {
			continue
		}
		if matchesFilter(docMap, filterMap) {
			l.data[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (l *LocalStore) Find(ctx context.Context, collection string, filter interface{}, results interface{}) error {
	matches, err := l.matching(collection, filter)
	if err != nil {
		return err
	}
	b, err := sonic.Marshal(matches)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(b, results)
}

func (l *LocalStore) Query(ctx context.Context, collection string, filter interface{}) (Cursor, error) {
	matches, err := l.matching(collection, filter)
	if err != nil {
		return nil, err
	}
	return &sliceCursor{docs: matches}, nil
}

func (l *LocalStore) CountDocuments(ctx context.Context, collection string, filter interface{}) (int64, error) {
	matches, err := l.matching(collection, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}

func (l *LocalStore) EnsureDatabase(ctx context.Context) error {
	return nil
}

func (l *LocalStore) DropDatabase(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = make(map[string][]json.RawMessage)
	return nil
}

func (l *LocalStore) Ping(ctx context.Context) error {
	return nil
}

func (l *LocalStore) Close(ctx context.Context) error {
	return nil
}

// matching snapshots the documents matching the filter
func (l *LocalStore) matching(collection string, filter interface{}) ([]json.RawMessage, error) {
	filterMap, err := toMap(filter)
	if err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	matches := make([]json.RawMessage, 0)
	for _, doc := range l.data[collection] {
		docMap, err := toMap(doc)
		if err != nil {
			continue
		}
		if matchesFilter(docMap, filterMap) {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

// sliceCursor implements Cursor over a snapshot of documents
type sliceCursor struct {
	docs []json.RawMessage
	pos  int
}

func (c *sliceCursor) Next(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Decode(val interface{}) error {
	return sonic.Unmarshal(c.docs[c.pos-1], val)
}

func (c *sliceCursor) Err() error {
	return nil
}

func (c *sliceCursor) Close(ctx context.Context) error {
	return nil
}
