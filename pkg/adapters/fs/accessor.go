// Package fs implements structured file access on the local filesystem.
// A file's extension selects the serializer used to read or write it.
package fs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/sfio/internal/fsutil"
	"github.com/aretw0/sfio/pkg/core"
)

// DefaultWatchDebounce is how long Watch waits for a burst of events to settle.
const DefaultWatchDebounce = 50 * time.Millisecond

// Config holds the configuration for the Accessor.
type Config struct {
	Logger *slog.Logger
	// Strict keeps decoded numbers as json.Number.
	Strict bool
	// RichEnv parses .env files with godotenv instead of the line-based reader.
	RichEnv bool
	// Serializers overrides or adds entries of the default set. A nil entry disables
	// the extension: reads and writes fail with core.ErrMissingCodec.
	Serializers map[string]core.Parser
	// WatchDebounce defaults to DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// Accessor reads and writes structured files.
type Accessor struct {
	mu          sync.RWMutex
	serializers map[string]core.Parser
	fallback    core.Serializer
	config      Config
	logger      *slog.Logger
	watchers    atomic.Int32
}

// NewAccessor creates an Accessor with the default serializers plus cfg's overrides.
func NewAccessor(cfg Config) *Accessor {
	serializers := DefaultSerializers(cfg.Strict, cfg.RichEnv)
	for ext, s := range cfg.Serializers {
		serializers[ext] = s
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = DefaultWatchDebounce
	}

	return &Accessor{
		serializers: serializers,
		fallback:    NewTextSerializer(),
		config:      cfg,
		logger:      logger,
	}
}

// Register binds a serializer to an extension (including the leading dot).
// Passing nil disables the extension.
func (a *Accessor) Register(ext string, p core.Parser) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.serializers[ext] = p
}

// Read returns the content of path decoded by the serializer bound to its extension.
// Unknown extensions are read as UTF-8 text.
func (a *Accessor) Read(path string) (any, error) {
	if err := checkExists(path); err != nil {
		return nil, err
	}
	ext, p, err := a.serializerFor(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a.logger.Debug("read", "path", path, "ext", ext)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Write replaces the content of path with data encoded for its extension.
// The file must already exist.
func (a *Accessor) Write(path string, data any) error {
	if err := checkExists(path); err != nil {
		return err
	}
	ext, p, err := a.serializerFor(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	enc, ok := p.(core.Encoder)
	if !ok {
		return fmt.Errorf("%s: %w: serializer for %q cannot write", path, core.ErrMissingCodec, ext)
	}

	raw, err := enc.Serialize(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	a.logger.Debug("write", "path", path, "ext", ext, "bytes", len(raw))
	return fsutil.ReplaceFile(path, raw)
}

// ReadGlob reads every file matching a doublestar pattern ("conf/**/*.yaml").
// The result maps each matched path to its value, in lexical path order.
func (a *Accessor) ReadGlob(pattern string) (*core.Map, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	out := core.NewMap()
	for _, match := range matches {
		v, err := a.Read(match)
		if err != nil {
			return nil, err
		}
		out.Set(match, v)
	}
	return out, nil
}

func (a *Accessor) serializerFor(path string) (string, core.Parser, error) {
	ext := filepath.Ext(path)

	a.mu.RLock()
	p, ok := a.serializers[ext]
	a.mu.RUnlock()

	if !ok {
		return ext, a.fallback, nil
	}
	if p == nil {
		return ext, nil, fmt.Errorf("%w: no serializer for %q", core.ErrMissingCodec, ext)
	}
	return ext, p, nil
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, core.ErrPathNotFound)
		}
		return err
	}
	return nil
}
