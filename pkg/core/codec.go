package core

import "io"

// Parser decodes the content of a file into a Value.
type Parser interface {
	Parse(r io.Reader) (any, error)
}

// Encoder converts a Value to the bytes of a file.
type Encoder interface {
	Serialize(v any) ([]byte, error)
}

// Serializer defines how to read and write a specific file format.
// A Parser registered without the Encoder half is read-only.
type Serializer interface {
	Parser
	Encoder
}
