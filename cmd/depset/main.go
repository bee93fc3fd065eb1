package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	depset "github.com/albertocavalcante/go-depset/cmd/depset/cmd"
)

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelFn()

	cmd, err := depset.RootCmd(&depset.App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		OsArgs: os.Args,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
