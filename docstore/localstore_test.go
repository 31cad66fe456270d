package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type testDoc struct {
	Key  string `bson:"Key" json:"Key"`
	Name string `bson:"name" json:"name"`
	Val  int    `bson:"val" json:"val"`
}

func TestLocalStoreInsertAndFind(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()

	require.NoError(t, store.InsertOne(ctx, "docs", testDoc{Key: "a", Name: "foo", Val: 1}))
	require.NoError(t, store.InsertOne(ctx, "docs", testDoc{Key: "b", Name: "bar", Val: 2}))

	var all []testDoc
	require.NoError(t, store.Find(ctx, "docs", bson.M{}, &all))
	require.Len(t, all, 2)

	var foos []testDoc
	require.NoError(t, store.Find(ctx, "docs", bson.M{"name": "foo"}, &foos))
	require.Len(t, foos, 1)
	assert.Equal(t, "a", foos[0].Key)

	count, err := store.CountDocuments(ctx, "docs", bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLocalStoreReplaceOne(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()

	require.NoError(t, store.InsertOne(ctx, "docs", testDoc{Key: "a", Name: "foo", Val: 1}))

	var previous testDoc
	found, err := store.ReplaceOne(ctx, "docs", bson.M{"Key": "a"}, testDoc{Key: "a", Name: "new", Val: 9}, &previous)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "foo", previous.Name)

	var got []testDoc
	require.NoError(t, store.Find(ctx, "docs", bson.M{"Key": "a"}, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name)
	assert.Equal(t, 9, got[0].Val)
}

func TestLocalStoreReplaceOneNoMatch(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()

	var previous testDoc
	found, err := store.ReplaceOne(ctx, "docs", bson.M{"Key": "missing"}, testDoc{Key: "missing"}, &previous)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocalStoreDeleteOne(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()

	require.NoError(t, store.InsertOne(ctx, "docs", testDoc{Key: "a", Name: "foo", Val: 1}))

	n, err := store.DeleteOne(ctx, "docs", bson.M{"Key": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// deleting an absent document is a no-op
	n, err = store.DeleteOne(ctx, "docs", bson.M{"Key": "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestLocalStoreQueryCursor(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()

	docs := []testDoc{
		{Key: "a", Name: "A", Val: 1},
		{Key: "b", Name: "B", Val: 2},
		{Key: "c", Name: "C", Val: 3},
	}
	for _, d := range docs {
		require.NoError(t, store.InsertOne(ctx, "docs", d))
	}

	cursor, err := store.Query(ctx, "docs", bson.M{})
	require.NoError(t, err)
	defer cursor.Close(ctx)

	var got []testDoc
	for cursor.Next(ctx) {
		var d testDoc
		require.NoError(t, cursor.Decode(&d))
		got = append(got, d)
	}
	require.NoError(t, cursor.Err())
	assert.Equal(t, docs, got)
}

func TestLocalStoreQueryCancelledContext(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()
	require.NoError(t, store.InsertOne(ctx, "docs", testDoc{Key: "a"}))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	cursor, err := store.Query(ctx, "docs", bson.M{})
	require.NoError(t, err)
	defer cursor.Close(ctx)
	assert.False(t, cursor.Next(cancelled))
}

func TestLocalStoreDropDatabase(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()

	require.NoError(t, store.InsertOne(ctx, "docs", testDoc{Key: "a"}))
	require.NoError(t, store.DropDatabase(ctx))

	count, err := store.CountDocuments(ctx, "docs", bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLocalStoreLifecycle(t *testing.T) {
	store := NewLocalStore()
	ctx := context.Background()
	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.EnsureDatabase(ctx))
	assert.NoError(t, store.Close(ctx))
}
