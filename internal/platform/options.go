package platform

import (
	"log/slog"
	"time"
)

// options holds the internal configuration for the accessor.
type options struct {
	logger        *slog.Logger
	strict        bool
	richEnv       bool
	serializers   map[string]any
	watchDebounce time.Duration
}

// Option defines a functional option for configuring sfio.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:      nil,
		richEnv:     true,
		serializers: make(map[string]any),
	}
}

// WithSerializer registers a custom serializer for a specific extension (".ini").
// The serializer 's' must implement core.Parser, and core.Encoder to be writable.
// Passing nil disables the extension. Validation happens at runtime in New.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithLogger sets the logger for the accessor.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrict enables strict mode for the default serializers.
// When enabled, numbers in JSON/YAML/TOML are returned as json.Number (string based)
// to preserve precision of large integers.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithRichEnv selects the godotenv parser for .env files (the default).
// Disabling it falls back to plain KEY=VALUE line splitting.
func WithRichEnv(enabled bool) Option {
	return func(o *options) {
		o.richEnv = enabled
	}
}

// WithWatchDebounce sets how long Watch waits for a burst of events to settle.
// Zero means default (50ms).
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.watchDebounce = d
	}
}
