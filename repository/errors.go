package repository

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// ConfigurationError reports a missing or invalid repository option.
// Raised synchronously before any I/O; never retried.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid repository option %q: %s", e.Option, e.Reason)
}

// UnsupportedKeyTypeError reports a key type with no generation strategy
type UnsupportedKeyTypeError struct {
	Type string
}

func (e *UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("no key generation strategy for type %s", e.Type)
}

// RepositoryError wraps a failure raised during Add, Update or Delete.
// It carries the repository and model type names plus a JSON snapshot of
// the rejected model, and chains the original cause.
type RepositoryError struct {
	Repository string
	Model      string
	Operation  string
	Payload    []byte
	Err        error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %s failed for model %s: %v", e.Repository, e.Operation, e.Model, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// newRepositoryError builds a RepositoryError with a best-effort model snapshot
func newRepositoryError(repository, model, operation string, payload interface{}, cause error) *RepositoryError {
	snapshot, err := sonic.Marshal(payload)
	if err != nil {
		snapshot = []byte(fmt.Sprintf("%+v", payload))
	}
	return &RepositoryError{
		Repository: repository,
		Model:      model,
		Operation:  operation,
		Payload:    snapshot,
		Err:        cause,
	}
}
