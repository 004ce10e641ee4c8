package core

import "errors"

// Precondition errors
var (
	ErrPathNotFound = errors.New("sfio: path does not exist")
)

// Codec errors
var (
	ErrMissingCodec = errors.New("sfio: codec not available")
	ErrParse        = errors.New("sfio: malformed content")
)

// Data shape errors
var (
	ErrType = errors.New("sfio: unexpected data type")
)
