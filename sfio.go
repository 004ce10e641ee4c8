package sfio

import (
	"log/slog"
	"time"

	"github.com/aretw0/sfio/internal/platform"
	"github.com/aretw0/sfio/pkg/adapters/fs"
	"github.com/aretw0/sfio/pkg/core"
	"github.com/aretw0/sfio/pkg/jsonstore"
	"github.com/aretw0/sfio/pkg/logging"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// --- Types ---

// Accessor reads and writes files by extension.
type Accessor = fs.Accessor

// Map is the ordered key-value mapping returned for TOML, JSON, YAML and env files.
type Map = core.Map

// Rows is the value returned for CSV files.
type Rows = core.Rows

// Serializer is the contract for a custom format registered with WithSerializer.
type Serializer = core.Serializer

// Errors, for use with errors.Is.
var (
	ErrPathNotFound = core.ErrPathNotFound
	ErrMissingCodec = core.ErrMissingCodec
	ErrType         = core.ErrType
	ErrParse        = core.ErrParse
)

// NewMap creates an empty Map.
func NewMap() *Map {
	return core.NewMap()
}

// MapOf builds a Map from alternating key/value arguments.
func MapOf(kv ...any) *Map {
	return core.MapOf(kv...)
}

// --- Configuration ---

// Option defines a functional option for configuring an Accessor.
type Option = platform.Option

// WithLogger sets the logger for the accessor.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStrict keeps decoded numbers as json.Number.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithRichEnv selects the godotenv parser for .env files (default true).
func WithRichEnv(enabled bool) Option {
	return platform.WithRichEnv(enabled)
}

// WithSerializer registers (or, with nil, disables) the serializer for an extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// WithWatchDebounce sets how long Watch waits for a burst of events to settle.
func WithWatchDebounce(d time.Duration) Option {
	return platform.WithWatchDebounce(d)
}

// --- Factory ---

// New creates an Accessor.
func New(opts ...Option) (*Accessor, error) {
	return platform.New(opts...)
}

var defaultAccessor = fs.NewAccessor(fs.Config{RichEnv: true})

// --- Structured files ---

// Read returns the content of an existing file, decoded according to its extension:
// .toml, .json, .yaml/.yml and .env give a *Map (or list/scalar for JSON and YAML),
// .csv gives Rows and anything else the text as a string.
func Read(path string) (any, error) {
	return defaultAccessor.Read(path)
}

// Write replaces the content of an existing file with data encoded for its extension.
func Write(path string, data any) error {
	return defaultAccessor.Write(path, data)
}

// --- JSON store ---

// JSONOption configures the J* helpers.
type JSONOption = jsonstore.Option

// WithUTF8 writes non-ASCII characters literally instead of \uXXXX escapes.
func WithUTF8(enabled bool) JSONOption {
	return jsonstore.WithUTF8(enabled)
}

// WithDefaultContent sets what JTouch writes into a new file (default: {}).
func WithDefaultContent(v any) JSONOption {
	return jsonstore.WithDefault(v)
}

// JRead parses a JSON file.
func JRead(path string, opts ...JSONOption) (any, error) {
	return jsonstore.Read(path, opts...)
}

// JWrite writes data to path as JSON indented with four spaces.
func JWrite(path string, data any, opts ...JSONOption) error {
	return jsonstore.Write(path, data, opts...)
}

// JUpdate merges the top-level keys of data into the JSON object stored at path.
func JUpdate(path string, data any, opts ...JSONOption) error {
	return jsonstore.Update(path, data, opts...)
}

// JAppend adds data as a single element to the JSON array stored at path.
func JAppend(path string, data any, opts ...JSONOption) error {
	return jsonstore.Append(path, data, opts...)
}

// JTouch creates path with the default content if it does not exist.
func JTouch(path string, opts ...JSONOption) error {
	return jsonstore.Touch(path, opts...)
}

// --- Logging ---

// BasicDebug installs a stdout text logger at level as the slog default, once per process.
func BasicDebug(level slog.Level) *slog.Logger {
	return logging.BasicDebug(level)
}
