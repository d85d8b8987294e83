// SPDX-License-Identifier: MIT

package repl

import "errors"

// ErrSyntax indicates a line that is not a valid command.
var ErrSyntax = errors.New("repl: malformed command")
