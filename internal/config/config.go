// Package config handles command line options and logger setup shared by
// the frontends.
package config

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/manurare/chip8"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Options configures a frontend run.
type Options struct {
	ROM string

	Scale  int   // window pixels per CHIP-8 pixel
	Cycles int   // instructions executed per 60 Hz frame
	Seed   int64 // random seed, 0 picks one from the clock
	Frames int   // stop after this many frames, 0 runs until quit

	Debug   bool
	Quiet   bool
	Version bool
}

// Defaults returns the options used when no flag is given.
func Defaults() Options {
	return Options{
		Scale:  10,
		Cycles: chip8.SystemHz / chip8.TimerHz,
	}
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] <rom file>\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments following the program name.
func ParseFlags(name string, args []string) (Options, error) {
	opts := Defaults()
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(ioutil.Discard)

	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window pixels per CHIP-8 pixel")
	flags.IntVar(&opts.Cycles, "cycles", opts.Cycles, "instructions executed per frame")
	flags.Int64Var(&opts.Seed, "seed", 0, "random number seed, 0 uses the current time")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after this many frames, 0 runs until quit")
	flags.BoolVar(&opts.Debug, "debug", false, "log unknown opcodes and dump registers")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Version, "version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if opts.Version {
		return opts, nil
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return opts, &UsageError{flags: flags, msg: "no ROM file given"}
	case len(rest) > 1:
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unexpected argument %s after ROM file", rest[1])}
	}
	opts.ROM = rest[0]

	if opts.Scale < 1 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("invalid scale %d", opts.Scale)}
	}
	if opts.Cycles < 1 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("invalid cycles per frame %d", opts.Cycles)}
	}
	if opts.Frames < 0 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("invalid frame count %d", opts.Frames)}
	}
	return opts, nil
}

// NewLogger creates a logger writing to stderr. Debug output wins over
// quiet mode, which only lets errors through.
func NewLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = os.Stderr
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Banner returns the version line printed at startup.
func Banner(name, version, commit, date string) string {
	return fmt.Sprintf("%s version %s", name, buildinfo.Version(version, commit, date))
}

// SystemOptions returns the engine options matching opts. Unknown opcodes
// are logged at debug level.
func (opts Options) SystemOptions(logger *log.Logger) []chip8.Option {
	sysOpts := []chip8.Option{
		chip8.WithUnknownOpcodeHandler(func(err *chip8.UnknownOpcodeError) {
			logger.Debug("Skipping unknown opcode",
				log.String("opcode", fmt.Sprintf("%04X", err.Opcode)),
				log.String("address", fmt.Sprintf("0x%03X", err.PC)))
		}),
	}
	if opts.Seed != 0 {
		sysOpts = append(sysOpts, chip8.WithSeed(opts.Seed))
	}
	return sysOpts
}
