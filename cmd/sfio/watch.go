package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	source "github.com/aretw0/sfio/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Print a file's content every time it changes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src := source.NewSource(newAccessor(), args[0])
		if err := src.Start(ctx); err != nil {
			fatal("Failed to watch file", err)
		}
		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", args[0])

		for e := range src.Events() {
			change, ok := e.(source.ChangeEvent)
			if !ok {
				continue
			}
			if change.Err != nil {
				slog.Error("read failed", "path", change.Path, "error", change.Err)
				continue
			}
			printValue(change.Value, false)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
