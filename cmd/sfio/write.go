package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	writeData string
	writeRaw  bool
)

var writeCmd = &cobra.Command{
	Use:   "write [path]",
	Short: "Replace the content of an existing file",
	Long: `Encode a value for the file's extension and replace the file with it.
The value is read from --data, or from stdin when --data is empty, and parsed as
JSON unless --raw is given. The file must already exist.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := writeData
		if input == "" {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			input = string(b)
		}

		acc := newAccessor()
		if err := acc.Write(args[0], parseValue(input, writeRaw)); err != nil {
			fatal("Failed to write file", err)
		}
		fmt.Printf("File '%s' written.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVarP(&writeData, "data", "d", "", "Value to write (JSON)")
	writeCmd.Flags().BoolVar(&writeRaw, "raw", false, "Write the input verbatim as text")
}
