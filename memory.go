package chip8

import "github.com/pkg/errors"

const (
	MemorySize     = 0x1000
	FontAddress    = 0x050
	FontGlyphSize  = 5
	MaxProgramSize = MemorySize - StartAddress
)

// Memory is the 4KB address space of the machine.
type Memory [MemorySize]uint8

var fontset = [...]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// clear zeroes the address space and installs the font glyphs.
func (mem *Memory) clear() {
	*mem = Memory{}
	copy(mem[FontAddress:], fontset[:])
}

func (mem *Memory) loadROM(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return errors.Wrapf(ErrImageTooLarge, "%d bytes, at most %d fit", len(rom), MaxProgramSize)
	}
	copy(mem[StartAddress:], rom)
	return nil
}

func (mem *Memory) fetchOpcode(pc uint16) (uint16, error) {
	if int(pc)+1 >= MemorySize {
		return 0, errors.Wrapf(ErrOutOfBounds, "fetch at 0x%04X", pc)
	}
	return uint16(mem[pc])<<8 | uint16(mem[pc+1]), nil
}

// span returns the n bytes starting at addr, failing when the range leaves
// the address space.
func (mem *Memory) span(addr uint16, n int) ([]uint8, error) {
	if int(addr)+n > MemorySize {
		return nil, errors.Wrapf(ErrOutOfBounds, "access of %d bytes at 0x%04X", n, addr)
	}
	return mem[addr : int(addr)+n], nil
}
