package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store backed by a MongoDB client
type MongoStore struct {
	client     *mongo.Client
	dbName     string
	ownsClient bool
}

// NewMongoStore connects to MongoDB at the given URI and binds to dbName.
// The store owns the client and Close disconnects it.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &MongoStore{client: client, dbName: dbName, ownsClient: true}, nil
}

// NewMongoStoreWithClient binds to dbName over an externally owned client.
// The caller manages the client lifecycle; Close is a no-op on it.
func NewMongoStoreWithClient(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, dbName: dbName}
}

func (m *MongoStore) collection(name string) *mongo.Collection {
	return m.client.Database(m.dbName).Collection(name)
}

// InsertOne inserts the document, bypassing server-side schema validation.
// Validation is the calling layer's responsibility.
func (m *MongoStore) InsertOne(ctx context.Context, collection string, document interface{}) error {
	opts := options.InsertOne().SetBypassDocumentValidation(true)
	_, err := m.collection(collection).InsertOne(ctx, document, opts)
	return err
}

// ReplaceOne performs an atomic find-and-replace returning the previous document
func (m *MongoStore) ReplaceOne(ctx context.Context, collection string, filter interface{}, replacement interface{}, previous interface{}) (bool, error) {
	opts := options.FindOneAndReplace().SetReturnDocument(options.Before)
	res := m.collection(collection).FindOneAndReplace(ctx, filter, replacement, opts)
	if err := res.Decode(previous); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MongoStore) DeleteOne(ctx context.Context, collection string, filter interface{}) (int64, error) {
	res, err := m.collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *MongoStore) Find(ctx context.Context, collection string, filter interface{}, results interface{}) error {
	cursor, err := m.collection(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

func (m *MongoStore) Query(ctx context.Context, collection string, filter interface{}) (Cursor, error) {
	return m.collection(collection).Find(ctx, filter)
}

func (m *MongoStore) CountDocuments(ctx context.Context, collection string, filter interface{}) (int64, error) {
	return m.collection(collection).CountDocuments(ctx, filter)
}

// EnsureDatabase establishes the database handle. MongoDB creates databases
// implicitly on first write, so reachability is all that can be verified here.
func (m *MongoStore) EnsureDatabase(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoStore) DropDatabase(ctx context.Context) error {
	return m.client.Database(m.dbName).Drop(ctx)
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoStore) Close(ctx context.Context) error {
	if !m.ownsClient {
		return nil
	}
	return m.client.Disconnect(ctx)
}
