// Package chip8 implements a CHIP-8 virtual machine: memory, registers,
// timers, stack, a 64x32 framebuffer and a 16-key pad, driven one
// instruction at a time through Step.
package chip8

import (
	"io/ioutil"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

const (
	SystemHz = 600 // instructions per second at the default speed
	TimerHz  = 60  // delay and sound timer tick rate

	NumKeys = 16
)

// System is the complete machine state. It is not safe for concurrent use;
// a single driving loop is expected to call Step, TickTimers and SetKey.
type System struct {
	cpu CPU
	mem Memory
	gfx Graphics

	keys [NumKeys]bool

	delayTimer uint8
	soundTimer uint8

	rnd       *rand.Rand
	onUnknown func(*UnknownOpcodeError)
	unknown   int
}

// New returns an initialized machine with the font loaded and the program
// counter at StartAddress.
func New(opts ...Option) *System {
	sys := &System{}
	for _, opt := range opts {
		opt(sys)
	}
	sys.Initialize()
	return sys
}

// Initialize resets memory, registers, stack, timers, keys and screen.
// Installed options are kept.
func (sys *System) Initialize() {
	sys.cpu.reset()
	sys.mem.clear()
	sys.gfx.clear()

	sys.keys = [NumKeys]bool{}
	sys.delayTimer = 0
	sys.soundTimer = 0
	sys.unknown = 0

	if sys.rnd == nil {
		sys.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// LoadProgram copies a raw program image to StartAddress. It does not reset
// any other state, so it is meant to be called once before the first Step.
func (sys *System) LoadProgram(image []byte) error {
	return sys.mem.loadROM(image)
}

// LoadFile reads a ROM file and loads it with LoadProgram.
func (sys *System) LoadFile(filename string) error {
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "reading ROM")
	}
	if err := sys.LoadProgram(bytes); err != nil {
		return errors.Wrapf(err, "loading %s", filename)
	}
	return nil
}

// Step executes exactly one instruction. The returned error is fatal to the
// run: ErrOutOfBounds, ErrStackOverflow or ErrStackUnderflow.
func (sys *System) Step() error {
	return sys.cpu.Cycle(sys)
}

// TickTimers decrements the delay and sound timers by one, stopping at
// zero. It is to be called at TimerHz independent of the instruction rate.
func (sys *System) TickTimers() {
	if sys.delayTimer > 0 {
		sys.delayTimer--
	}
	if sys.soundTimer > 0 {
		sys.soundTimer--
	}
}

// SoundActive reports whether the sound timer is still counting.
func (sys *System) SoundActive() bool {
	return sys.soundTimer > 0
}

// SetKey records the state of a keypad key. Indices outside 0-15 are ignored.
func (sys *System) SetKey(index int, pressed bool) {
	if index < 0 || index >= NumKeys {
		return
	}
	sys.keys[index] = pressed
}

// KeyPressed reports the recorded state of a keypad key.
func (sys *System) KeyPressed(index int) bool {
	if index < 0 || index >= NumKeys {
		return false
	}
	return sys.keys[index]
}

// Framebuffer returns a copy of the screen.
func (sys *System) Framebuffer() Framebuffer {
	return sys.gfx.buffer
}

// Redraw reports whether the screen changed since the last call and clears
// the flag.
func (sys *System) Redraw() bool {
	dirty := sys.gfx.isDirty()
	sys.gfx.setDirty(false)
	return dirty
}

// SetDirty forces the next Redraw call to report a change, for frontends
// whose window content was lost.
func (sys *System) SetDirty(dirty bool) {
	sys.gfx.setDirty(dirty)
}

// UnknownOpcodes returns how many unknown opcodes were skipped.
func (sys *System) UnknownOpcodes() int {
	return sys.unknown
}

// State is a copy of the processor and timer state.
type State struct {
	V     [16]uint8
	I     uint16
	PC    uint16
	SP    uint16
	Stack [StackDepth]uint16

	Opcode     uint16
	DelayTimer uint8
	SoundTimer uint8
	Cycles     int64
}

func (sys *System) State() State {
	return State{
		V:          sys.cpu.V,
		I:          sys.cpu.I,
		PC:         sys.cpu.PC,
		SP:         sys.cpu.SP,
		Stack:      sys.cpu.Stack,
		Opcode:     sys.cpu.opcode,
		DelayTimer: sys.delayTimer,
		SoundTimer: sys.soundTimer,
		Cycles:     sys.cpu.cycles,
	}
}

// Memory returns a copy of the address space.
func (sys *System) Memory() Memory {
	return sys.mem
}

func (sys *System) unknownOp(pc, opc uint16) {
	sys.unknown++
	if sys.onUnknown != nil {
		sys.onUnknown(&UnknownOpcodeError{PC: pc, Opcode: opc})
	}
}
