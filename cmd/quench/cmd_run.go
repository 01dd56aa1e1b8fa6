package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run <file> [args...]",
		Short: "Compile a Quench file and run it with node",
		Long: `Compile a Quench file and run it with node.

The module is piped to node on stdin, so the runtime package must be
resolvable from the working directory. Arguments after the file are visible
to the program as args. The exit status of node becomes the exit status of
quench.

The node binary comes from run.node in quench.yaml or $QUENCH_NODE.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readDocument(args[0])
			if err != nil {
				return err
			}
			js, err := opts.compiler().Compile(state.Root())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			nodeArgs := append([]string{"--input-type=module", "-"}, args[1:]...)
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "+ %s %s\n", opts.cfg.Run.Node, strings.Join(nodeArgs, " "))
			}
			log.Debugf("running %s with %d bytes of JavaScript", opts.cfg.Run.Node, len(js))

			nodeCmd := exec.CommandContext(cmd.Context(), opts.cfg.Run.Node, nodeArgs...)
			nodeCmd.Stdin = strings.NewReader(js)
			nodeCmd.Stdout = cmd.OutOrStdout()
			nodeCmd.Stderr = cmd.ErrOrStderr()
			nodeCmd.Env = os.Environ()

			if err := nodeCmd.Run(); err != nil {
				var exit *exec.ExitError
				if errors.As(err, &exit) {
					return &exitError{code: exit.ExitCode()}
				}
				return fmt.Errorf("run %s: %w", opts.cfg.Run.Node, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "trace", "x", false, "print the node command before running it")
	cmd.Flags().SetInterspersed(false)

	return cmd
}
