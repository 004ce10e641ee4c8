package main

import (
	"log/slog"
	"os"
)

func main() {
	Execute()
}

// fatal logs err through the configured logger and exits with status 1.
func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
