package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/yamlgrep/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result := cli.Show(ctx, os.Args[1:], cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	result.Print()
	return result.ExitCode
}
