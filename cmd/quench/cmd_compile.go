package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quench-lang/quench/estree"
)

func newCompileCmd(opts *options) *cobra.Command {
	var outputFormat string
	var output string

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a Quench file to a JavaScript module",
		Long: `Compile a Quench file to a JavaScript module.

The generated module imports its persistent collections from the configured
runtime package (immutable by default). With --format estree the ESTree JSON
of the module is written instead of source code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "js" && outputFormat != "estree" {
				return fmt.Errorf("unknown format %q (want js or estree)", outputFormat)
			}

			state, err := readDocument(args[0])
			if err != nil {
				return err
			}
			prog, err := opts.compiler().Program(state.Root())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			var buf bytes.Buffer
			if outputFormat == "js" {
				err = estree.Print(&buf, prog)
			} else {
				err = estree.NewJSONEncoder(&buf).Encode(prog)
				buf.WriteByte('\n')
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			return writeOutput(output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "js", "output format: js or estree")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func writeOutput(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
