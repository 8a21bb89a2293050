// Package cli builds the yaml-grep and yaml-show commands on cobra and maps
// their outcome to an exit.Result.
package cli

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jacoelho/yamlgrep/internal/exit"
)

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// newLogger returns a debug text logger on w, or a discarding one.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// execute runs cmd with args. ran reports whether RunE was reached, so a
// plain --help exits successfully without touching the outcome.
func execute(ctx context.Context, cmd *cobra.Command, args []string, streams Streams, ran *bool) *exit.Result {
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.ExecuteContext(ctx); err != nil {
		return exit.Errorf(streams.Err, "Error: %v\n", err)
	}
	if !*ran {
		return exit.Success(nil, "")
	}
	return nil
}

// untilDone stops the sequence once ctx is cancelled.
func untilDone[T any](ctx context.Context, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if ctx.Err() != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
