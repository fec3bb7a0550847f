// Package runner drives a machine at a fixed frame rate: a batch of
// instructions per frame, one timer tick per frame and a redraw whenever
// the screen changed.
package runner

import (
	"context"
	"time"

	"github.com/manurare/chip8"
	"github.com/pkg/errors"
)

// Frontend presents the machine and feeds it input.
type Frontend interface {
	// PollEvents applies pending input to sys and reports whether the
	// user asked to quit.
	PollEvents(sys *chip8.System) bool
	// Render presents the current framebuffer.
	Render(fb *chip8.Framebuffer) error
}

// Config controls the speed of a run.
type Config struct {
	CyclesPerFrame int // instructions per frame
	FrameRate      int // frames per second, also the timer tick rate
	MaxFrames      int // stop after this many frames, 0 runs until quit
}

// Runner runs a machine against a frontend.
type Runner struct {
	sys      *chip8.System
	frontend Frontend
	cfg      Config

	sleep  func(time.Duration)
	now    func() time.Time
	frames int
}

// New returns a runner. Zero config fields fall back to the default speed.
func New(sys *chip8.System, frontend Frontend, cfg Config) *Runner {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = chip8.TimerHz
	}
	if cfg.CyclesPerFrame <= 0 {
		cfg.CyclesPerFrame = chip8.SystemHz / chip8.TimerHz
	}
	return &Runner{
		sys:      sys,
		frontend: frontend,
		cfg:      cfg,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() int {
	return r.frames
}

// Run loops until the frontend asks to quit, the frame limit is reached,
// ctx is cancelled or the machine fails. A quit or the frame limit returns
// nil.
func (r *Runner) Run(ctx context.Context) error {
	slice := time.Second / time.Duration(r.cfg.FrameRate)

	for r.cfg.MaxFrames == 0 || r.frames < r.cfg.MaxFrames {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := r.now()

		if r.frontend.PollEvents(r.sys) {
			return nil
		}

		if err := r.Frame(); err != nil {
			return err
		}

		if elapsed := r.now().Sub(start); elapsed < slice {
			r.sleep(slice - elapsed)
		}
	}
	return nil
}

// Frame executes one frame worth of instructions, presents the screen if
// it changed and ticks the timers.
func (r *Runner) Frame() error {
	for i := 0; i < r.cfg.CyclesPerFrame; i++ {
		if err := r.sys.Step(); err != nil {
			return errors.Wrapf(err, "frame %d", r.frames)
		}
	}

	if r.sys.Redraw() {
		fb := r.sys.Framebuffer()
		if err := r.frontend.Render(&fb); err != nil {
			return errors.Wrap(err, "rendering")
		}
	}

	r.sys.TickTimers()
	r.frames++
	return nil
}
