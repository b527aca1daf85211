package main

import (
	"fmt"

	"github.com/dhamidi/wlx/wolfram/editor"
	"github.com/spf13/cobra"
)

func newContextCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "context [file]",
		Short: "Classify the lexical context at a byte offset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, file, err := readInput(args)
			if err != nil {
				return err
			}

			doc := editor.NewDocument(data, file)
			fmt.Println(doc.ContextAt(offset))
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset to classify")

	return cmd
}
