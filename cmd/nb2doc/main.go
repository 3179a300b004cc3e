package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	flags, positional, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		os.Exit(ExitUsage)
	}

	logger := newLogger(env.Stderr, flags.logLevel())

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))

	ctx, stop := notifyContext(context.Background())
	code := execute(ctx, flags, positional, env, logger)
	stop()
	os.Exit(code)
}
