package platform

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/sfio/pkg/adapters/fs"
	"github.com/aretw0/sfio/pkg/jsonstore"
)

// As converts a decoded value into T.
// The value is marshaled to JSON and unmarshaled into T, so json struct tags apply.
func As[T any](v any) (T, error) {
	var out T
	raw, err := jsonstore.Encode(v, true)
	if err != nil {
		return out, fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode into %T: %w", out, err)
	}
	return out, nil
}

// ReadAs reads path with acc and converts the result into T.
func ReadAs[T any](acc *fs.Accessor, path string) (T, error) {
	v, err := acc.Read(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](v)
}
