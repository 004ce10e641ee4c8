package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfio"
	"github.com/aretw0/sfio/internal/platform"
	"github.com/aretw0/sfio/pkg/jsonstore"
	"github.com/aretw0/sfio/pkg/logging"
)

var (
	verbose bool
	cfg     *platform.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sfio",
	Short: "Read and write structured files by extension",
	Long: `sfio reads and writes TOML, JSON, YAML, env, CSV and text files,
choosing the format from the file extension. Values are exchanged as JSON.

Environment: SFIO_LOG_LEVEL, SFIO_JSON_UTF8, SFIO_RICH_ENV, SFIO_STRICT.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = platform.LoadConfig()
		if err != nil {
			fatal("Invalid configuration", err)
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			fatal("Invalid SFIO_LOG_LEVEL", err)
		}
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// newAccessor builds an accessor from the environment configuration.
func newAccessor() *sfio.Accessor {
	opts := append(cfg.Options(), sfio.WithLogger(slog.Default()))
	acc, err := sfio.New(opts...)
	if err != nil {
		fatal("Failed to initialize accessor", err)
	}
	return acc
}

func jsonOpts() []jsonstore.Option {
	return []jsonstore.Option{jsonstore.WithUTF8(cfg.JSONUTF8)}
}

// printValue writes text values verbatim and everything else as indented JSON.
func printValue(v any, forceJSON bool) {
	if s, ok := v.(string); ok && !forceJSON {
		fmt.Print(s)
		return
	}
	out, err := jsonstore.Encode(v, true)
	if err != nil {
		fatal("Error encoding JSON", err)
	}
	fmt.Println(string(out))
}

// parseValue decodes a JSON argument, or returns it as a string when raw is set.
func parseValue(arg string, raw bool) any {
	if raw {
		return arg
	}
	v, err := jsonstore.Decode([]byte(arg))
	if err != nil {
		fatal("Invalid JSON value", err)
	}
	return v
}
