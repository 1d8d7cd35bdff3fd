// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"qctriage/internal/chainid"
	"qctriage/internal/cli"
	"qctriage/internal/cliutil"
	"qctriage/internal/pipeline"
	"qctriage/internal/qc"
	"qctriage/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 2 // bad invocation or unusable input
	ExitIO          = 3 // I/O or runtime failure
	ExitInterrupted = 130
)

// ErrEmptyInput is returned when no QC rows or no sequence records were read.
var ErrEmptyInput = errors.New("empty input")

// ExitCode maps an error from a run to the process exit code.
func ExitCode(err error) int {
	var ue *cli.UsageError
	var pe *chainid.ParseError
	switch {
	case err == nil:
		return ExitOK
	case pipeline.IsCanceled(err):
		return ExitInterrupted
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.As(err, &ue),
		errors.Is(err, ErrEmptyInput),
		errors.Is(err, qc.ErrMissingColumn),
		errors.Is(err, qc.ErrNoFiles),
		errors.Is(err, cliutil.ErrNoMatch),
		errors.As(err, &pe):
		return ExitUsage
	}
	return ExitIO
}

// RunContext executes argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	root := cli.NewRoot(Triage)
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	if e := outw.Flush(); err == nil && e != nil {
		err = e
	}
	code := ExitCode(err)
	if err != nil && code != ExitOK {
		if code == ExitInterrupted {
			_, _ = fmt.Fprintln(stderr, "interrupted")
		} else {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		}
		if code == ExitUsage {
			var ue *cli.UsageError
			if errors.As(err, &ue) {
				_, _ = fmt.Fprintln(stderr, "run 'qctriage --help' for usage")
			}
		}
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
