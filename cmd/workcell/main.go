package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/workcell/internal/cli"
	"github.com/matzehuels/workcell/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	code := errors.ExitCode(err)
	if code != errors.ExitOK && code != errors.ExitCanceled {
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
	}
	os.Exit(code)
}
