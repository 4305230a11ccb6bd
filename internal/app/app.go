// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"panelidx/internal/cli"
	"panelidx/internal/cmdutil"
	"panelidx/internal/index"
	"panelidx/internal/output"
	"panelidx/internal/version"
)

// RunContext parses argv, builds or loads the index, and writes the
// per-region report. Exit codes: 0 ok, 1 runtime failure, 2 usage error,
// 3 write failure.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("panelidx")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushCode(outw, stderr)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "panelidx version %s\n", version.Version)
		return flushCode(outw, stderr)
	}

	warn := func(format string, a ...any) {
		cmdutil.Warnf(stderr, opts.Quiet, format, a...)
	}
	bopts := index.Options{Threads: opts.Threads, Warn: warn}

	var bundle *index.Bundle
	if opts.NoCache {
		bundle, err = index.Build(ctx, opts.RefDir, opts.RegionFile, bopts)
	} else {
		bundle, err = index.LoadOrBuild(ctx, opts.RefDir, opts.RegionFile, bopts)
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	rows := output.BuildReport(bundle)
	switch opts.Output {
	case "json":
		err = output.WriteJSON(outw, rows)
	default:
		err = output.WriteText(outw, rows, opts.Header)
	}
	if output.IsBrokenPipe(err) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return flushCode(outw, stderr)
}

// Run is the context-free wrapper used by tests.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flushCode(outw *bufio.Writer, stderr io.Writer) int {
	if err := outw.Flush(); output.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}
