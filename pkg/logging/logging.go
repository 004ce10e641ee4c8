// Package logging installs the process-wide slog logger in one call.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
)

var (
	once      sync.Once
	installed *slog.Logger
)

// BasicDebug makes a text logger on stdout at level the slog default.
// Only the first call configures anything; later calls return the logger already installed.
func BasicDebug(level slog.Level) *slog.Logger {
	return basicConfig(os.Stdout, level)
}

func basicConfig(w io.Writer, level slog.Level) *slog.Logger {
	once.Do(func() {
		installed = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(installed)
	})
	return installed
}

// ParseLevel accepts debug, info, warn or error (any case) or a numeric slog level.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return slog.Level(n), nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
