package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/wlx/format"
	"github.com/dhamidi/wlx/wolfram/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Wolfram Language file (or stdin) and dump the syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, file, err := readInput(args)
			if err != nil {
				return err
			}

			node, err := parser.Parse(data, file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "sexpr":
				encoder = format.NewSExprEncoder(os.Stdout)
			case "json":
				encoder = format.NewASTJSONEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexpr", "output format (sexpr, json)")

	return cmd
}

func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, args[0], nil
}
