package main

import (
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Show the registered serializers and accessor settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printValue(newAccessor().State(), true)
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
