package chip8

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrImageTooLarge  = errors.New("program image too large")
	ErrOutOfBounds    = errors.New("memory access out of bounds")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// UnknownOpcodeError describes an opcode that has no mapping. It is not
// fatal: the machine skips the opcode and keeps running.
type UnknownOpcodeError struct {
	PC     uint16
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at 0x%03X", e.Opcode, e.PC)
}
