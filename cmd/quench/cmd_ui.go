package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quench-lang/quench/ui"
)

func newUICmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := ui.NewServer(opts.compiler())
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Starting playground at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	return cmd
}
