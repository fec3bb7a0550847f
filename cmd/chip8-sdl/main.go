package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

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

func init() {
	// SDL event handling must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	opts, err := config.ParseFlags("chip8-sdl", os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Println(usageErr)
			usageErr.ShowUsage(os.Stdout)
		}
		os.Exit(1)
	}
	if opts.Version {
		fmt.Println(config.Banner("chip8-sdl", version, commit, date))
		return
	}

	logger := config.NewLogger(opts.Debug, opts.Quiet)
	logger.Info(config.Banner("chip8-sdl", version, commit, date))

	sys := chip8.New(opts.SystemOptions(logger)...)
	if err := sys.LoadFile(opts.ROM); err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}

	io, err := NewIO("CHIP-8", opts.Scale)
	if err != nil {
		logger.Fatal("Opening window failed", log.Err(err))
	}
	defer io.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := runner.New(sys, io, runner.Config{
		CyclesPerFrame: opts.Cycles,
		MaxFrames:      opts.Frames,
	})
	if err := run.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		if opts.Debug {
			sys.Dump()
		}
		logger.Warn("Emulation stopped", log.Err(err))
	}
}
