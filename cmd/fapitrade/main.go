package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	app := &cli.App{
		Name:    filepath.Base(os.Args[0]),
		Usage:   "query a Binance USD-M futures account and place an order (LIMIT orders need --price)",
		Version: "0.1.0",
		Flags:   []cli.Flag{ConfigFlag, DryRunFlag, LogLevelFlag},
		Action:  runAction,
	}
	app.Commands = []*cli.Command{
		runCommand,
		accountCommand,
		orderCommand,
		openOrdersCommand,
		cancelCommand,
		pingCommand,
	}
	return app
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		if !alreadyLogged(err) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
