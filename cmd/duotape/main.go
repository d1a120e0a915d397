// SPDX-License-Identifier: MIT

// Command duotape generates random two-tape machines, runs them and
// inspects the spectrum of their transition operator.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
