// Package jsonstore reads and mutates a single JSON file: plain read and write, shallow
// object merge, list append and create-if-missing.
//
// Every mutation reads the whole file before writing it back. A file that fails to parse,
// or holds the wrong kind of value, is left untouched. Nothing here locks: concurrent
// writers to the same path can lose updates.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/aretw0/sfio/internal/fsutil"
	"github.com/aretw0/sfio/pkg/core"
)

type options struct {
	utf8       bool
	defaultDoc any
}

// Option configures a store call.
type Option func(*options)

// WithUTF8 writes non-ASCII characters literally instead of as \uXXXX escapes,
// and makes Read reject files that are not valid UTF-8.
func WithUTF8(enabled bool) Option {
	return func(o *options) {
		o.utf8 = enabled
	}
}

// WithDefault sets the content Touch writes into a new file.
// Defaults to an empty object.
func WithDefault(v any) Option {
	return func(o *options) {
		o.defaultDoc = v
	}
}

func apply(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Read parses the JSON file at path.
func Read(path string, opts ...Option) (any, error) {
	o := apply(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if o.utf8 && !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w: not valid UTF-8", path, core.ErrParse)
	}

	v, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Write replaces the content of path with data encoded as JSON, creating the file if needed.
func Write(path string, data any, opts ...Option) error {
	o := apply(opts)

	raw, err := Encode(data, o.utf8)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fsutil.ReplaceFile(path, raw)
}

// Update merges the top-level keys of data into the object stored at path.
// Existing keys are overwritten in place, new keys are appended; nested values are replaced,
// not merged.
func Update(path string, data any, opts ...Option) error {
	current, err := Read(path, opts...)
	if err != nil {
		return err
	}

	existing, ok := current.(*core.Map)
	if !ok {
		return fmt.Errorf("%s: %w: existing data must be an object, found %s", path, core.ErrType, kindOf(current))
	}
	patch, ok := core.AsMap(data)
	if !ok {
		return fmt.Errorf("%s: %w: update data must be an object, got %T", path, core.ErrType, data)
	}

	for pair := patch.Oldest(); pair != nil; pair = pair.Next() {
		existing.Set(pair.Key, pair.Value)
	}
	return Write(path, existing, opts...)
}

// Append adds data as one new element at the end of the array stored at path.
// A slice argument becomes a nested array; it is not spread.
func Append(path string, data any, opts ...Option) error {
	current, err := Read(path, opts...)
	if err != nil {
		return err
	}

	list, ok := current.([]any)
	if !ok {
		return fmt.Errorf("%s: %w: existing data must be an array, found %s", path, core.ErrType, kindOf(current))
	}

	list = append(list, data)
	return Write(path, list, opts...)
}

// Touch creates path with the default content unless something already exists there.
func Touch(path string, opts ...Option) error {
	if fsutil.Exists(path) {
		return nil
	}

	o := apply(opts)
	doc := o.defaultDoc
	if doc == nil {
		doc = core.NewMap()
	}
	return Write(path, doc, opts...)
}

func kindOf(v any) string {
	switch v.(type) {
	case *core.Map:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
