// Command mvcs is the CLI dispatcher described by spec.md §6: it
// parses verbs with cobra, resolves a Repository from the working
// directory, and maps core errors to process exit codes. It owns no
// persistence logic itself — every verb is a thin wrapper over the
// vcs package.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nivl-labs/mvcs/internal/env"
	"github.com/nivl-labs/mvcs/vcserr"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd(env.NewFromOs())
	if err := root.Execute(); err != nil {
		printErr(err)
		return exitCode(err)
	}
	return 0
}

// printErr prints err to stderr. When VCS_DEBUG is set, it prints the
// pkg/errors stack trace too, matching the teacher's "%+v on demand"
// debugging convention.
func printErr(err error) {
	if os.Getenv("VCS_DEBUG") != "" {
		// *vcserr.Error has no formatter of its own, so its cause is
		// printed with %+v to get at the stack it carries.
		var e *vcserr.Error
		if errors.As(err, &e) && e.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %+v\n", e.Kind, e.Err)
			return
		}
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "mvcs:", err)
}

// exitCode maps a vcserr.Kind to the exit code spec.md §6 recommends:
// 0 success, 1 user/precondition error, 2 internal/IO error.
func exitCode(err error) int {
	switch vcserr.KindOf(err) {
	case vcserr.IOError, vcserr.Corrupt, vcserr.BadType:
		return 2
	default:
		return 1
	}
}
