package main

import (
	"github.com/spf13/cobra"

	"github.com/quench-lang/quench/lsp"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Quench language server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.NewLSPServer(version, opts.compiler()).RunStdio()
		},
	}
}
