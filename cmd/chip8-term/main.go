// Command chip8-term runs a ROM without a window, drawing the screen in the
// terminal. It has no keyboard input, which suits ROMs that only animate.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/manurare/chip8"
	"github.com/manurare/chip8/internal/config"
	"github.com/manurare/chip8/internal/runner"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := config.ParseFlags("chip8-term", os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Println(usageErr)
			usageErr.ShowUsage(os.Stdout)
		}
		os.Exit(1)
	}
	if opts.Version {
		fmt.Println(config.Banner("chip8-term", version, commit, date))
		return
	}

	logger := config.NewLogger(opts.Debug, opts.Quiet)

	sys := chip8.New(opts.SystemOptions(logger)...)
	if err := sys.LoadFile(opts.ROM); err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term := &Terminal{sys: sys, debug: opts.Debug}
	run := runner.New(sys, term, runner.Config{
		CyclesPerFrame: opts.Cycles,
		MaxFrames:      opts.Frames,
	})
	if err := run.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Emulation stopped", log.Err(err))
	}
}
