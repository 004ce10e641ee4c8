package sfio

import (
	"github.com/aretw0/sfio/internal/platform"
)

// ReadAs reads path and converts the result into T through its JSON form,
// so struct fields follow their json tags.
func ReadAs[T any](path string) (T, error) {
	return platform.ReadAs[T](defaultAccessor, path)
}

// As converts a value returned by Read into T.
func As[T any](v any) (T, error) {
	return platform.As[T](v)
}
