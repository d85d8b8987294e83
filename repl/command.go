// SPDX-License-Identifier: MIT

// Package repl is the line-oriented command surface:
//
//	exit              leave the loop
//	#                 toggle debug output
//	@<n> [s1 … sn]    rebuild the transform for n variables, optional selector
//	$                 enumerate every function of the current n
//	<index>           check one function: prints Yes or No
//
// Blank lines are ignored.
package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MrOnlineCoder/qmf/transform"
)

// Kind enumerates command kinds.
type Kind int

const (
	KindEmpty Kind = iota
	KindExit
	KindDebug
	KindRebuild
	KindEnumerate
	KindCheck
)

// Command is one parsed input line.
type Command struct {
	Kind     Kind
	Vars     int                // KindRebuild
	Selector transform.Selector // KindRebuild; nil → default
	Index    uint64             // KindCheck
}

// ParseCommand parses one line. Surrounding whitespace is ignored.
// Errors: ErrSyntax, transform.ErrBadBlock.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return Command{Kind: KindEmpty}, nil
	case line == "exit":
		return Command{Kind: KindExit}, nil
	case line == "#":
		return Command{Kind: KindDebug}, nil
	case line == "$":
		return Command{Kind: KindEnumerate}, nil
	case strings.HasPrefix(line, "@"):
		return parseRebuild(line[1:])
	}

	idx, err := strconv.ParseUint(line, 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("%q: %w", line, ErrSyntax)
	}

	return Command{Kind: KindCheck, Index: idx}, nil
}

func parseRebuild(args string) (Command, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("@: missing variable count: %w", ErrSyntax)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, fmt.Errorf("@%s: %w", fields[0], ErrSyntax)
	}

	cmd := Command{Kind: KindRebuild, Vars: n}
	if len(fields) > 1 {
		if cmd.Selector, err = transform.ParseSelector(fields[1:]); err != nil {
			return Command{}, fmt.Errorf("@%d: %w", n, err)
		}
	}

	return cmd, nil
}
