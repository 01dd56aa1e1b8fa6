package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/quench-lang/quench/compiler"
	"github.com/quench-lang/quench/config"
	"github.com/quench-lang/quench/document"
)

const version = "0.1.0"

var log = commonlog.GetLogger("quench.cli")

// options holds the global flags and the configuration they select.
type options struct {
	configPath string
	verbosity  int
	logFile    string

	cfg *config.Config
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = o.verbosity
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = o.logFile
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	if cfg.Path != "" {
		log.Debugf("using %s", cfg.Path)
	}

	o.cfg = cfg
	return nil
}

func (o *options) compiler() *compiler.Compiler {
	return compiler.New(o.cfg.CompilerOptions()...)
}

// exitError carries the exit status of a child process.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func readDocument(path string) (*document.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return document.Create(string(data)), nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "quench",
		Short:         "Parse, compile and run Quench programs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to quench.yaml (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newCompileCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newReplCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newUICmd(opts))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "quench:", err)
		os.Exit(1)
	}
}
