package seeding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mongorepo/docstore"
	"mongorepo/logging"
	"mongorepo/repository"
)

// recordingStore wraps LocalStore and records the startup actions in order
type recordingStore struct {
	*docstore.LocalStore
	calls     []string
	dropErr   error
	ensureErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{LocalStore: docstore.NewLocalStore()}
}

func (r *recordingStore) DropDatabase(ctx context.Context) error {
	r.calls = append(r.calls, "drop")
	if r.dropErr != nil {
		return r.dropErr
	}
	return r.LocalStore.DropDatabase(ctx)
}

func (r *recordingStore) EnsureDatabase(ctx context.Context) error {
	r.calls = append(r.calls, "ensure")
	if r.ensureErr != nil {
		return r.ensureErr
	}
	return r.LocalStore.EnsureDatabase(ctx)
}

func baseOptions() repository.Options {
	return repository.Options{URI: "mongodb://localhost:27017", DatabaseID: "appdb"}
}

func TestRunAllFlagsSet(t *testing.T) {
	store := newRecordingStore()
	opts := baseOptions()
	opts.DropDatabase = true
	opts.EnsureCreated = true
	opts.SeedDatabase = true

	var invocations int
	var gotDropped, gotCreated bool
	seed := func(ctx context.Context, s docstore.Store, dropped, created bool) error {
		invocations++
		gotDropped, gotCreated = dropped, created
		store.calls = append(store.calls, "seed")
		return nil
	}

	log := logging.NewMockLogger()
	require.NoError(t, Run(context.Background(), store, opts, seed, log))

	assert.Equal(t, 1, invocations)
	assert.True(t, gotDropped)
	assert.True(t, gotCreated)
	// seed runs only after drop and create both completed
	assert.Equal(t, []string{"drop", "ensure", "seed"}, store.calls)
	assert.True(t, log.HasEntry(logging.InfoLevel, "database seeded"))
}

func TestRunNoFlagsIsNoop(t *testing.T) {
	store := newRecordingStore()
	seeded := false
	seed := func(ctx context.Context, s docstore.Store, dropped, created bool) error {
		seeded = true
		return nil
	}

	require.NoError(t, Run(context.Background(), store, baseOptions(), seed, nil))
	assert.Empty(t, store.calls)
	assert.False(t, seeded)
}

func TestRunSeedOnly(t *testing.T) {
	store := newRecordingStore()
	opts := baseOptions()
	opts.SeedDatabase = true

	var gotDropped, gotCreated bool
	seed := func(ctx context.Context, s docstore.Store, dropped, created bool) error {
		gotDropped, gotCreated = dropped, created
		return nil
	}

	require.NoError(t, Run(context.Background(), store, opts, seed, nil))
	assert.False(t, gotDropped)
	assert.False(t, gotCreated)
}

func TestRunDropFailureAbortsSequence(t *testing.T) {
	store := newRecordingStore()
	store.dropErr = errors.New("not authorized")
	opts := baseOptions()
	opts.DropDatabase = true
	opts.EnsureCreated = true
	opts.SeedDatabase = true

	seeded := false
	seed := func(ctx context.Context, s docstore.Store, dropped, created bool) error {
		seeded = true
		return nil
	}

	err := Run(context.Background(), store, opts, seed, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.dropErr)
	assert.Equal(t, []string{"drop"}, store.calls)
	assert.False(t, seeded)
}

func TestRunSeedFailurePropagates(t *testing.T) {
	store := newRecordingStore()
	opts := baseOptions()
	opts.SeedDatabase = true

	cause := errors.New("duplicate key")
	seed := func(ctx context.Context, s docstore.Store, dropped, created bool) error {
		return cause
	}

	err := Run(context.Background(), store, opts, seed, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestRunNilSeedFunc(t *testing.T) {
	store := newRecordingStore()
	opts := baseOptions()
	opts.SeedDatabase = true

	assert.NoError(t, Run(context.Background(), store, opts, nil, nil))
}

func TestRunSeedsThroughRepository(t *testing.T) {
	type Setting struct {
		Key   string `bson:"Key" json:"Key"`
		Value string `bson:"value" json:"value"`
	}

	store := newRecordingStore()
	opts := baseOptions()
	opts.EnsureCreated = true
	opts.SeedDatabase = true

	keys := repository.SingleKey(
		func(s Setting) string { return s.Key },
		func(s *Setting, k string) { s.Key = k },
	)

	seed := func(ctx context.Context, s docstore.Store, dropped, created bool) error {
		repo := repository.New(s, keys, nil)
		_, err := repo.Add(ctx, Setting{Key: "theme", Value: "dark"})
		return err
	}

	require.NoError(t, Run(context.Background(), store, opts, seed, nil))

	repo := repository.New[Setting](store, keys, nil)
	count, err := repo.Count(context.Background(), map[string]interface{}{"Key": "theme"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
