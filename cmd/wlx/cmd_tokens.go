package main

import (
	"os"

	"github.com/dhamidi/wlx/format"
	"github.com/dhamidi/wlx/wolfram/editor"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var start, end int

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Dump the token stream of a file (or stdin) as (kind subkind text) triples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, file, err := readInput(args)
			if err != nil {
				return err
			}
			if end < 0 || end > len(data) {
				end = len(data)
			}

			doc := editor.NewDocument(data, file)
			tokens := doc.TokensInRange(start, end)
			return format.NewTokenEncoder(os.Stdout).Encode(tokens)
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "byte offset to start at")
	cmd.Flags().IntVar(&end, "end", -1, "byte offset to stop at (default: end of input)")

	return cmd
}
