package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quench-lang/quench/parser"
)

func newGrammarCmd() *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the Quench grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parser.Grammar()
			if err != nil {
				return fmt.Errorf("grammar: %w", err)
			}
			if !names {
				fmt.Fprint(cmd.OutOrStdout(), parser.GrammarSource())
				return nil
			}

			productions := make([]string, 0, len(g))
			for name := range g {
				productions = append(productions, name)
			}
			sort.Strings(productions)
			for _, name := range productions {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&names, "productions", false, "list production names instead of the grammar")

	return cmd
}
