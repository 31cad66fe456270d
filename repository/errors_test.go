package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Option: "uri", Reason: "must not be empty"}
	assert.Equal(t, `invalid repository option "uri": must not be empty`, err.Error())
}

func TestUnsupportedKeyTypeErrorMessage(t *testing.T) {
	err := &UnsupportedKeyTypeError{Type: "float64"}
	assert.Contains(t, err.Error(), "float64")
}

func TestRepositoryErrorChainsCause(t *testing.T) {
	cause := errors.New("write concern timeout")
	err := newRepositoryError("Repository[Person]", "Person", "add", Person{Key: "k", Name: "eve"}, cause)

	assert.Contains(t, err.Error(), "Repository[Person]")
	assert.Contains(t, err.Error(), "add")
	assert.Contains(t, err.Error(), "Person")
	require.ErrorIs(t, err, cause)
	assert.Contains(t, string(err.Payload), `"eve"`)
}

func TestRepositoryErrorSnapshotFallback(t *testing.T) {
	// channels cannot be serialized; the snapshot falls back to fmt
	err := newRepositoryError("Repository[bad]", "bad", "add", make(chan int), errors.New("boom"))
	assert.NotEmpty(t, err.Payload)
}
