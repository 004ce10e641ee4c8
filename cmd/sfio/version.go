package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfio"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sfio version and the Go runtime it was built with",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sfio %s (%s %s/%s)\n", sfio.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
