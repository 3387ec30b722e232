// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// confgen generates configuration documentation and the default/check
// string tables from method schemas.
//
// Usage:
//
//	confgen generate                 # rewrite every configured output
//	confgen check --diff             # fail if an output is out of date
//	confgen dump --format=quickref   # print the resolved registry
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"golang.org/x/term"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportError(err)
		stop()
		os.Exit(1)
	}
}

// reportError logs a fatal error with its kind and attributes, so the
// failing file, method or option is named.
func reportError(err error) {
	logging.Error(err.Error(), errors.LogFields(err)...)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
