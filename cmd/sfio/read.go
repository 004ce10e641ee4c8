package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read [path|pattern]",
	Short: "Read a structured file",
	Long: `Read a file and print its content as JSON (text files are printed as is).
A pattern with glob characters ("conf/**/*.yaml") reads every match and prints
an object keyed by path.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		acc := newAccessor()
		arg := args[0]

		if strings.ContainsAny(arg, "*?[{") {
			all, err := acc.ReadGlob(arg)
			if err != nil {
				fatal("Error reading files", err)
			}
			printValue(all, true)
			return
		}

		v, err := acc.Read(arg)
		if err != nil {
			fatal("Error reading file", err)
		}
		printValue(v, readJSON)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Print text files as a JSON string")
}
