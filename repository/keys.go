package repository

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// IsKeyMissing reports whether key holds its type's missing sentinel,
// i.e. the zero value. Empty strings, zero numbers and default-constructed
// structured keys all count as missing.
func IsKeyMissing[K comparable](key K) bool {
	var zero K
	return key == zero
}

// RandomKey generates a new globally unique key of type K. String keys get
// a UUID rendered as text; UUID and 16-byte keys get the UUID itself;
// 64-bit integer keys get the UUID's leading bytes as an integer. Any other
// type fails with UnsupportedKeyTypeError.
func RandomKey[K any]() (K, error) {
	var key K
	switch p := any(&key).(type) {
	case *string:
		*p = uuid.NewString()
	case *uuid.UUID:
		*p = uuid.New()
	case *[16]byte:
		*p = [16]byte(uuid.New())
	case *int64:
		id := uuid.New()
		// shift keeps the value positive
		*p = int64(binary.BigEndian.Uint64(id[:8]) >> 1)
	case *uint64:
		id := uuid.New()
		*p = binary.BigEndian.Uint64(id[:8])
	default:
		return key, &UnsupportedKeyTypeError{Type: fmt.Sprintf("%T", key)}
	}
	return key, nil
}
