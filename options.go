package chip8

import "math/rand"

// Option configures a System at construction.
type Option func(*System)

// WithSeed seeds the random generator used by RND. Machines built with the
// same seed and fed the same input produce the same results.
func WithSeed(seed int64) Option {
	return func(sys *System) {
		sys.rnd = rand.New(rand.NewSource(seed))
	}
}

// WithRandSource replaces the random generator used by RND.
func WithRandSource(src rand.Source) Option {
	return func(sys *System) {
		sys.rnd = rand.New(src)
	}
}

// WithUnknownOpcodeHandler installs a callback receiving every unknown
// opcode the machine skips.
func WithUnknownOpcodeHandler(fn func(*UnknownOpcodeError)) Option {
	return func(sys *System) {
		sys.onUnknown = fn
	}
}
