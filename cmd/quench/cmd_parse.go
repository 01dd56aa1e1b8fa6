package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quench-lang/quench/format"
)

func newParseCmd(opts *options) *cobra.Command {
	var outputFormat string
	var color string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a Quench file and dump its syntax tree",
		Long: `Parse a Quench file and dump its syntax tree.

Syntax errors do not stop parsing; they show up as ERROR nodes in the dump.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readDocument(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			enc, err := format.NewEncoder(outputFormat, out, format.ColorEnabled(color, out))
			if err != nil {
				return err
			}
			if err := enc.Encode(state.Root()); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text or json")
	cmd.Flags().StringVar(&color, "color", "auto", "colorize text output: auto, always or never")

	return cmd
}
