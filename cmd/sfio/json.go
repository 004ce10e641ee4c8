package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfio/pkg/jsonstore"
)

var (
	touchDefault string
)

var touchCmd = &cobra.Command{
	Use:   "touch [file.json]",
	Short: "Create a JSON file if it does not exist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := jsonOpts()
		if touchDefault != "" {
			opts = append(opts, jsonstore.WithDefault(parseValue(touchDefault, false)))
		}
		if err := jsonstore.Touch(args[0], opts...); err != nil {
			fatal("Failed to touch file", err)
		}
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [file.json] [object]",
	Short: "Merge the keys of a JSON object into a JSON file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := jsonstore.Update(args[0], parseValue(args[1], false), jsonOpts()...); err != nil {
			fatal("Failed to update file", err)
		}
		fmt.Printf("File '%s' updated.\n", args[0])
	},
}

var appendCmd = &cobra.Command{
	Use:   "append [file.json] [value]",
	Short: "Append a JSON value to the array stored in a JSON file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := jsonstore.Append(args[0], parseValue(args[1], false), jsonOpts()...); err != nil {
			fatal("Failed to append to file", err)
		}
		fmt.Printf("File '%s' updated.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(touchCmd, updateCmd, appendCmd)
	touchCmd.Flags().StringVar(&touchDefault, "default", "", "Initial content (JSON, default {})")
}
