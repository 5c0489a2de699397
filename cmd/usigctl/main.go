// Command usigctl is a small operator/debugging CLI around the usig
// packages: generate key material, sign a message, verify an envelope,
// and print an attestation. It is a demo and test-bench tool, not a
// transport: counter state is never persisted across invocations, and
// every file it touches is local.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. It accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	var cmdFunc func([]string) int
	switch args[0] {
	case "keygen":
		cmdFunc = runKeygen
	case "attest":
		cmdFunc = runAttest
	case "sign":
		cmdFunc = runSign
	case "verify":
		cmdFunc = runVerify
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "usigctl: unknown command %q\n", args[0])
		usage()
		return 2
	}

	if err := runChecked(cmdFunc, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "usigctl: %v\n", err)
		return 1
	}
	return 0
}

// runChecked adapts the legacy int-returning subcommands below to an
// error, so callers that want err handling (e.g. tests) can inspect a
// proper error chain instead of parsing exit codes.
func runChecked(cmdFunc func([]string) int, args []string) error {
	if code := cmdFunc(args); code != 0 {
		return errors.Errorf("command failed with exit code %d", code)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: usigctl <command> [flags]

commands:
  keygen   generate key material for a backend
  attest   print the contents of an attestation file
  sign     sign a message, producing an envelope
  verify   verify an envelope against an enrolled attestation`)
}
