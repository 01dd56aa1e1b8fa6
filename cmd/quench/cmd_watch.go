package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quench-lang/quench/compiler"
	"github.com/quench-lang/quench/document"
	"github.com/quench-lang/quench/format"
)

// render writes the tree or the compiled module of one document.
func render(w io.Writer, state *document.State, mode string, comp *compiler.Compiler, styles *format.Styles) error {
	switch mode {
	case "tree":
		return format.NewTreeEncoder(w, styles).Encode(state.Root())
	case "js":
		js, err := comp.Compile(state.Root())
		if err != nil {
			_, werr := fmt.Fprintln(w, styles.Error.Render(err.Error()))
			return werr
		}
		_, err = io.WriteString(w, js)
		return err
	}
	return fmt.Errorf("unknown format %q (want tree or js)", mode)
}

func newWatchCmd(opts *options) *cobra.Command {
	var mode string
	var color string

	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Reparse files as they change",
		Long: `Reparse files as they change and print the result.

Each save is applied to the previous tree as a single edit, so unchanged
statements are reused. Stop with Ctrl-C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "tree" && mode != "js" {
				return fmt.Errorf("unknown format %q (want tree or js)", mode)
			}

			out := cmd.OutOrStdout()
			styles := format.NewStyles(format.ColorEnabled(color, out))
			comp := opts.compiler()
			store := document.NewStore()

			var mu sync.Mutex
			show := func(path string) {
				mu.Lock()
				defer mu.Unlock()
				state, err := store.State(path)
				if err != nil {
					fmt.Fprintln(out, styles.Error.Render(err.Error()))
					return
				}
				fmt.Fprintln(out, styles.Kind.Render(fmt.Sprintf("== %s (reused %d)", path, state.Reused())))
				if err := render(out, state, mode, comp, styles); err != nil {
					log.Errorf("render %s: %s", path, err.Error())
				}
			}

			w, err := document.NewWatcher(store, func(path string, err error) {
				if err != nil {
					log.Errorf("reload %s: %s", path, err.Error())
					return
				}
				show(path)
			})
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := w.Add(path); err != nil {
					w.Stop()
					return err
				}
			}
			for _, id := range store.IDs() {
				show(id)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w.Start()
			log.Infof("watching %d files", len(args))
			<-ctx.Done()
			w.Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "format", "f", "tree", "what to print on change: tree or js")
	cmd.Flags().StringVar(&color, "color", "auto", "colorize output: auto, always or never")

	return cmd
}
