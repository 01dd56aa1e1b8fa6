package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/quench-lang/quench/compiler"
	"github.com/quench-lang/quench/document"
	"github.com/quench-lang/quench/format"
	"github.com/quench-lang/quench/parser"
)

const replHelp = `Each line is appended to a scratch document and the statements it
touches are printed. Commands:
  :tree    print the syntax tree of the whole document
  :js      compile the document to JavaScript
  :source  print the document text
  :reset   start over with an empty document
  :quit    leave the REPL`

// repl holds the scratch document. Lines are added through the incremental
// reparse path, so earlier statements are reused rather than parsed again.
type repl struct {
	state  *document.State
	comp   *compiler.Compiler
	styles *format.Styles
	out    io.Writer
}

func newRepl(out io.Writer, comp *compiler.Compiler, color bool) *repl {
	return &repl{
		state:  document.Create(""),
		comp:   comp,
		styles: format.NewStyles(color),
		out:    out,
	}
}

// eval handles one input line and reports whether the session should end.
func (r *repl) eval(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return false
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.out, replHelp)
	case ":tree":
		r.printTree(r.state.Root())
	case ":js":
		js, err := r.comp.Compile(r.state.Root())
		if err != nil {
			fmt.Fprintln(r.out, r.styles.Error.Render(err.Error()))
			return false
		}
		fmt.Fprint(r.out, js)
	case ":source":
		fmt.Fprint(r.out, r.state.Text())
	case ":reset":
		r.state = document.Create("")
	default:
		if strings.HasPrefix(trimmed, ":") {
			fmt.Fprintf(r.out, "unknown command %s, try :help\n", trimmed)
			return false
		}
		r.append(line)
	}
	return false
}

func (r *repl) append(line string) {
	old := r.state.Text()
	next := old + line + "\n"
	if err := r.state.ApplyEdit(document.ComputeEdit(old, next), next); err != nil {
		fmt.Fprintln(r.out, r.styles.Error.Render(err.Error()))
		return
	}
	log.Debugf("reparsed scratch document, reused %d statements", r.state.Reused())

	for _, stmt := range r.state.Root().Children {
		if stmt.Range.EndByte > len(old) {
			r.printTree(stmt)
		}
	}
}

func (r *repl) printTree(n *parser.Node) {
	if err := format.NewTreeEncoder(r.out, r.styles).Encode(n); err != nil {
		fmt.Fprintln(r.out, err.Error())
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quench_history")
}

func newReplCmd(opts *options) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse Quench interactively",
		Long:  "Parse Quench interactively.\n\n" + replHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r := newRepl(out, opts.compiler(), format.ColorEnabled(color, out))

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			history := historyPath()
			if history != "" {
				if f, err := os.Open(history); err == nil {
					ln.ReadHistory(f)
					f.Close()
				}
			}

			fmt.Fprintf(out, "quench %s, :help for commands\n", version)
			for {
				line, err := ln.Prompt("quench> ")
				if err != nil {
					if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
						break
					}
					return fmt.Errorf("read line: %w", err)
				}
				if strings.TrimSpace(line) != "" {
					ln.AppendHistory(line)
				}
				if r.eval(line) {
					break
				}
			}

			if history != "" {
				if f, err := os.Create(history); err == nil {
					ln.WriteHistory(f)
					f.Close()
				} else {
					log.Warningf("write history: %s", err.Error())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "auto", "colorize output: auto, always or never")

	return cmd
}
