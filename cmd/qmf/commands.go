// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/MrOnlineCoder/qmf/repl"
	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags; each overrides its config key when set.
type rootFlags struct {
	configPath  string
	vars        int
	selector    []string
	tolerance   float64
	debug       bool
	histogram   string
	workers     int
	logLevel    string
	logFormat   string
	metricsAddr string
	historyFile string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "qmf",
		Short: "Check Boolean functions for monotonicity",
		Long: `qmf decides monotonicity of Boolean functions with a Kronecker-transform
spectral criterion and counts monotone functions by chunked enumeration.

Without a subcommand it reads shell commands from stdin:
  exit | # | @n [s1 ... sn] | $ | <function index>`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			interactive := false
			if file, ok := in.(*os.File); ok {
				interactive = repl.IsInteractive(file)
			}

			a, err := newApp(cmd, f, interactive)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
			defer stop()

			return a.shell.Run(ctx, in)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config file")
	pf.IntVarP(&f.vars, "vars", "n", 0, "number of variables")
	pf.StringSliceVarP(&f.selector, "selector", "s", nil, "building blocks, one per variable (1|0)")
	pf.Float64Var(&f.tolerance, "tolerance", 0, "spectral comparison tolerance")
	pf.BoolVarP(&f.debug, "debug", "d", false, "print transform details for single checks")
	pf.StringVar(&f.histogram, "hist", "", "histogram CSV path written after enumeration")
	pf.IntVar(&f.workers, "workers", 0, "CPU device workers (0 = all CPUs)")
	pf.StringVar(&f.logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	pf.StringVar(&f.logFormat, "log-format", "", "log format (text|json)")
	pf.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address")
	pf.StringVar(&f.historyFile, "history", "", "shell history file")

	root.AddCommand(newCheckCmd(f), newEnumerateCmd(f))

	return root
}

func newCheckCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check INDEX...",
		Short: "Check function indices under the configured n and selector",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, f, false)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, arg := range args {
				idx, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, repl.ErrSyntax)
				}
				if _, err = a.shell.Execute(commandContext(cmd), repl.Command{Kind: repl.KindCheck, Index: idx}); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newEnumerateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "enumerate",
		Aliases: []string{"enum"},
		Short:   "Count every monotone function of the configured n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, f, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
			defer stop()
			_, err = a.shell.Execute(ctx, repl.Command{Kind: repl.KindEnumerate})

			return err
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
