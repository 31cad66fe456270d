package repository

import (
	"fmt"
	"strings"
)

const (
	// keyField is the document field holding the logical key. Composite-key
	// documents must carry it alongside the individual key parts, set to the
	// separator-joined string of those parts.
	keyField = "Key"

	// keySeparator joins composite key parts
	keySeparator = "|"
)

// KeySpec describes how a model's key is detected, rendered into an equality
// filter value and, for single keys, generated. One generic repository type
// covers all key arities through its KeySpec.
type KeySpec[T any] struct {
	render   func(T) (interface{}, error)
	missing  func(T) bool
	generate func(*T) error
}

// SingleKey describes a model with one key field. A missing key is
// auto-generated on Add.
func SingleKey[T any, K comparable](get func(T) K, set func(*T, K)) KeySpec[T] {
	return KeySpec[T]{
		render: func(model T) (interface{}, error) {
			return get(model), nil
		},
		missing: func(model T) bool {
			return IsKeyMissing(get(model))
		},
		generate: func(model *T) error {
			key, err := RandomKey[K]()
			if err != nil {
				return err
			}
			set(model, key)
			return nil
		},
	}
}

// TwoPartKey describes a model with a two-part composite key. The caller
// must supply both parts; keys are never auto-generated.
func TwoPartKey[T any, K1, K2 comparable](get1 func(T) K1, get2 func(T) K2) KeySpec[T] {
	return KeySpec[T]{
		render: func(model T) (interface{}, error) {
			return compositeKeyValue(get1(model), get2(model))
		},
	}
}

// ThreePartKey describes a model with a three-part composite key
func ThreePartKey[T any, K1, K2, K3 comparable](get1 func(T) K1, get2 func(T) K2, get3 func(T) K3) KeySpec[T] {
	return KeySpec[T]{
		render: func(model T) (interface{}, error) {
			return compositeKeyValue(get1(model), get2(model), get3(model))
		},
	}
}

// compositeKeyValue joins the key parts in declared order. A part whose
// string form contains the separator would make the encoding ambiguous,
// so it is rejected instead of silently colliding.
func compositeKeyValue(parts ...interface{}) (string, error) {
	rendered := make([]string, len(parts))
	for i, part := range parts {
		s := fmt.Sprintf("%v", part)
		if strings.Contains(s, keySeparator) {
			return "", fmt.Errorf("composite key part %q contains reserved separator %q", s, keySeparator)
		}
		rendered[i] = s
	}
	return strings.Join(rendered, keySeparator), nil
}
