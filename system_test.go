package chip8

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

// newTestSystem returns a seeded machine with the opcodes loaded at
// StartAddress.
func newTestSystem(t testing.TB, opcodes ...uint16) *System {
	t.Helper()
	sys := New(WithSeed(1))
	if err := sys.LoadProgram(program(opcodes...)); err != nil {
		t.Fatal(err)
	}
	return sys
}

func program(opcodes ...uint16) []byte {
	rom := make([]byte, 0, 2*len(opcodes))
	for _, opc := range opcodes {
		rom = append(rom, uint8(opc>>8), uint8(opc))
	}
	return rom
}

func TestNew(t *testing.T) {
	sys := New()
	state := sys.State()

	assert.Equal(t, uint16(StartAddress), state.PC)
	assert.Equal(t, uint16(0), state.SP)
	assert.Equal(t, uint16(0), state.I)
	assert.Equal(t, [16]uint8{}, state.V)

	mem := sys.Memory()
	if diff := cmp.Diff(fontset[:], mem[FontAddress:FontAddress+len(fontset)]); diff != "" {
		t.Errorf("font glyphs (-want, +got)\n%s", diff)
	}
	if diff := cmp.Diff(make([]uint8, MaxProgramSize), mem[StartAddress:]); diff != "" {
		t.Errorf("program area not clear (-want, +got)\n%s", diff)
	}
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"fits exactly", MaxProgramSize, false},
		{"one byte too large", MaxProgramSize + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := New()
			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = uint8(i)
			}

			err := sys.LoadProgram(rom)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrImageTooLarge))
				return
			}
			assert.NoError(t, err)
			mem := sys.Memory()
			if diff := cmp.Diff(rom, mem[StartAddress:StartAddress+tt.size]); diff != "" {
				t.Errorf("loaded image (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestLoadProgramKeepsState(t *testing.T) {
	sys := newTestSystem(t, 0x6A02)
	assert.NoError(t, sys.Step())

	assert.NoError(t, sys.LoadProgram(program(0x6B03)))
	state := sys.State()
	assert.Equal(t, uint8(2), state.V[0xA])
	assert.Equal(t, uint16(0x202), state.PC)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "test.ch8")
	assert.NoError(t, os.WriteFile(name, program(0x6A02, 0x1200), 0o644))

	sys := New()
	assert.NoError(t, sys.LoadFile(name))
	mem := sys.Memory()
	assert.Equal(t, uint8(0x6A), mem[StartAddress])
	assert.Equal(t, uint8(0x00), mem[StartAddress+3])

	err := sys.LoadFile(filepath.Join(dir, "missing.ch8"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	big := filepath.Join(dir, "big.ch8")
	assert.NoError(t, os.WriteFile(big, make([]byte, MaxProgramSize+2), 0o644))
	err = sys.LoadFile(big)
	assert.True(t, errors.Is(err, ErrImageTooLarge))
}

func TestTickTimers(t *testing.T) {
	sys := newTestSystem(t, 0x601E, 0xF015, 0xF018)
	for i := 0; i < 3; i++ {
		assert.NoError(t, sys.Step())
	}
	assert.Equal(t, uint8(30), sys.State().DelayTimer)
	assert.True(t, sys.SoundActive())

	for i := 0; i < 60; i++ {
		sys.TickTimers()
	}
	state := sys.State()
	assert.Equal(t, uint8(0), state.DelayTimer)
	assert.Equal(t, uint8(0), state.SoundTimer)
	assert.False(t, sys.SoundActive())
}

func TestTimersIndependentOfSteps(t *testing.T) {
	// LD DT, V0 then a jump to self.
	sys := newTestSystem(t, 0x6005, 0xF015, 0x1204)
	for i := 0; i < 100; i++ {
		assert.NoError(t, sys.Step())
	}
	assert.Equal(t, uint8(5), sys.State().DelayTimer)

	sys.TickTimers()
	assert.Equal(t, uint8(4), sys.State().DelayTimer)
}

func TestSetKey(t *testing.T) {
	sys := New()
	sys.SetKey(0xA, true)
	assert.True(t, sys.KeyPressed(0xA))

	sys.SetKey(0xA, false)
	assert.False(t, sys.KeyPressed(0xA))

	sys.SetKey(-1, true)
	sys.SetKey(NumKeys, true)
	assert.False(t, sys.KeyPressed(-1))
	assert.False(t, sys.KeyPressed(NumKeys))
}

func TestRedraw(t *testing.T) {
	sys := newTestSystem(t, 0x6001, 0x00E0)

	// a fresh machine has a cleared screen waiting to be shown
	assert.True(t, sys.Redraw())
	assert.False(t, sys.Redraw())

	assert.NoError(t, sys.Step())
	assert.False(t, sys.Redraw())

	assert.NoError(t, sys.Step())
	sys.SetDirty(false)
	assert.False(t, sys.Redraw())

	sys.SetDirty(true)
	assert.True(t, sys.Redraw())
	assert.False(t, sys.Redraw())
}

func TestInitialize(t *testing.T) {
	sys := newTestSystem(t, 0x6A02, 0xF015, 0xA123)
	for i := 0; i < 3; i++ {
		assert.NoError(t, sys.Step())
	}
	sys.SetKey(3, true)

	sys.Initialize()
	state := sys.State()
	assert.Equal(t, uint16(StartAddress), state.PC)
	assert.Equal(t, uint16(0), state.I)
	assert.Equal(t, uint8(0), state.V[0xA])
	assert.Equal(t, int64(0), state.Cycles)
	assert.False(t, sys.KeyPressed(3))
	mem := sys.Memory()
	assert.Equal(t, uint8(0), mem[StartAddress])
}

func BenchmarkStep(b *testing.B) {
	// Draws the glyph of V0 at (V0, V0), increments V0 and loops.
	sys := newTestSystem(b,
		0xF029, // LD F, V0
		0xD005, // DRW V0, V0, 5
		0x7001, // ADD V0, 1
		0x1200, // JP $200
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := sys.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
