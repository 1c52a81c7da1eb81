// Package main provides the recipebox CLI: a console front end over the
// SQLite recipe store.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
	}
	return exitCode(err)
}

// exitCode maps an error to the process exit code. Storage failures are
// system errors; every other failure, including bad flags and arguments,
// is the user's.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case types.IsUserError(err):
		return exitUserError
	case errors.Is(err, types.ErrResource):
		return exitSysError
	}
	return exitUserError
}
