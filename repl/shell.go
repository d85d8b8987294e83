// SPDX-License-Identifier: MIT

package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/device"
	"github.com/MrOnlineCoder/qmf/enumerate"
	"github.com/MrOnlineCoder/qmf/monotone"
	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

const (
	Prompt = "qmf> "
	Banner = "qmf, checks boolean function for monotonicity.\n" +
		"For changing amount of variables, type @n\n" +
		"For full enumeration, type $\n" +
		"For exiting, type 'exit'"
)

// Config holds shell collaborators and settings.
type Config struct {
	Engine  *transform.Engine
	Oracle  *monotone.Oracle
	Backend device.Backend

	// EnumerateOptions are applied to every enumeration run; the shell adds
	// its own progress printer.
	EnumerateOptions []enumerate.Option

	// HistogramPath receives the histogram CSV after each enumeration; empty skips it.
	HistogramPath string
	HistoryFile   string

	// Interactive enables readline, the banner and the prompt.
	Interactive bool

	Out    io.Writer // nil → os.Stdout
	Logger logrus.FieldLogger
}

// Shell runs commands against one transform engine.
type Shell struct {
	cfg    Config
	out    io.Writer
	logger logrus.FieldLogger
	debug  bool
}

// New creates a shell. Engine, Oracle and Backend must be non-nil.
func New(cfg Config) *Shell {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	var logger logrus.FieldLogger = cfg.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	return &Shell{cfg: cfg, out: out, logger: logger.WithField("action", "repl")}
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Debug reports whether debug output is on.
func (s *Shell) Debug() bool { return s.debug }

// SetDebug switches debug output without printing.
func (s *Shell) SetDebug(on bool) { s.debug = on }

// lineSource yields input lines; io.EOF ends the loop.
type lineSource interface {
	Readline() (string, error)
	Close() error
}

type scanSource struct{ sc *bufio.Scanner }

func (s scanSource) Readline() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

func (scanSource) Close() error { return nil }

func (s *Shell) source(in io.Reader) (lineSource, error) {
	if !s.cfg.Interactive {
		return scanSource{sc: bufio.NewScanner(in)}, nil
	}

	return readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          s.out,
	})
}

// Run reads commands until exit, end of input or ctx cancellation. A failing
// command prints an error line and the loop continues.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	src, err := s.source(in)
	if err != nil {
		return err
	}
	defer src.Close()

	if s.cfg.Interactive {
		fmt.Fprintln(s.out, Banner)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := src.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		quit, err := s.Execute(ctx, cmd)
		if err != nil {
			s.logger.WithError(err).Debug("command failed")
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command and reports whether the loop should stop.
func (s *Shell) Execute(ctx context.Context, cmd Command) (bool, error) {
	switch cmd.Kind {
	case KindEmpty:
	case KindExit:
		return true, nil
	case KindDebug:
		s.debug = !s.debug
		fmt.Fprintf(s.out, "Debug mode: %s\n", onOff(s.debug))
	case KindRebuild:
		snap, err := s.cfg.Engine.Rebuild(cmd.Vars, cmd.Selector)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "n = %d\n", snap.N())
		if s.debug {
			fmt.Fprintf(s.out, "selector = %s\n", snap.Selector())
		}
	case KindEnumerate:
		return false, s.enumerate(ctx)
	case KindCheck:
		return false, s.check(cmd.Index)
	default:
		return false, fmt.Errorf("kind %d: %w", cmd.Kind, ErrSyntax)
	}

	return false, nil
}

func (s *Shell) check(index uint64) error {
	snap := s.cfg.Engine.Snapshot()
	if s.debug {
		r, err := s.cfg.Oracle.Diagnose(index, snap)
		if err != nil {
			return err
		}
		if _, err = r.WriteTo(s.out); err != nil {
			return err
		}
		fmt.Fprintln(s.out, yesNo(r.Monotonic))

		return nil
	}

	ok, err := s.cfg.Oracle.IsMonotonic(index, snap)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, yesNo(ok))

	return nil
}

func (s *Shell) enumerate(ctx context.Context) error {
	snap := s.cfg.Engine.Snapshot()
	total, exact, err := bitvec.FunctionCount(snap.N())
	if err != nil {
		return err
	}
	if !exact {
		total = math.MaxUint64 - 1
	}
	fmt.Fprintf(s.out, "Total functions count to iterate: %d\n", total)

	opts := append([]enumerate.Option{}, s.cfg.EnumerateOptions...)
	opts = append(opts, enumerate.WithProgress(func(p enumerate.Progress) {
		fmt.Fprintf(s.out, "Chunk (%d , %d, %g%%) => %d\n", p.Offset, p.End, p.Percent, p.Monotonic)
	}))
	st, err := enumerate.New(s.cfg.Backend, opts...).Run(ctx, snap.N(), snap.Selector())
	if err != nil {
		return err
	}

	if st.Partial {
		fmt.Fprintf(s.out, "Warning: %v\n", st.Overflow)
	}
	fmt.Fprintf(s.out, "Result: %d (%d / %d)\n", st.Monotonic, st.Processed, st.Total)
	fmt.Fprintf(s.out, "Dual count out of %d: %d\n", st.Monotonic, st.Dual)
	fmt.Fprintf(s.out, "Time spent: %d ms\n", st.Elapsed.Milliseconds())

	if s.cfg.HistogramPath != "" {
		if err = st.Histogram.SaveCSV(s.cfg.HistogramPath); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Histogram written to %s\n", s.cfg.HistogramPath)
	}

	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}
