package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is an independent runnable that is taking input and
// output being stdin and stdout. Given args are the command line arguments,
// without the program name and the command name, that should be parsed
// using the flag package. A command function is expected to read and write
// only to provided input and output. In a special case of an invalid
// argument a message to os.Stderr and os.Exit(2) call are allowed.
//
// Commands that operate on a record read it from the input and write the
// result to the output, so that they can be combined into a pipeline:
//
//   $ docsign new-record -doc contract.pdf -creator $ALICE \
//         -signer $ALICE -signer $BOB -threshold 2 \
//       | docsign apply-signature -signer $BOB -attestor $BOB \
//       | docsign view
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"apply-signature": cmdApplySignature,
	"attest":          cmdAttest,
	"db-init":         cmdDBInit,
	"db-list":         cmdDBList,
	"db-sign":         cmdDBSign,
	"db-status":       cmdDBStatus,
	"evaluate":        cmdEvaluate,
	"keyaddr":         cmdKeyaddr,
	"keygen":          cmdKeygen,
	"new-record":      cmdNewRecord,
	"version":         cmdVersion,
	"view":            cmdView,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for contract signing records.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := runCommand(run, os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, errors.Redact(err))
		os.Exit(1)
	}
}

// runCommand executes given command. A panic is returned as an
// errors.ErrPanic instance.
func runCommand(
	run func(io.Reader, io.Writer, []string) error,
	input io.Reader,
	output io.Writer,
	args []string,
) (err error) {
	defer errors.Recover(&err)
	return run(input, output, args)
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, docsign.Version())
	return err
}
