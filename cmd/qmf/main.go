// SPDX-License-Identifier: MIT

// Command qmf checks Boolean functions for monotonicity with a spectral
// criterion and counts monotone functions by exhaustive enumeration.
//
//	qmf                      interactive shell (commands on stdin)
//	qmf check 3 7 --vars 3   one-shot checks
//	qmf enumerate --vars 4   one-shot enumeration, histogram to --hist
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
