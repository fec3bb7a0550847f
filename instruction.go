package chip8

import "fmt"

// Op identifies a decoded instruction.
type Op uint8

const (
	OpUnknown Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XKK
	OpSneByte    // 4XKK
	OpSeReg      // 5XY0
	OpLdByte     // 6XKK
	OpAddByte    // 7XKK
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXKK
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpStore      // FX55
	OpLoad       // FX65
)

var opNames = [...]string{
	OpUnknown: "???",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeByte:  "SE",
	OpSneByte: "SNE",
	OpSeReg:   "SE",
	OpLdByte:  "LD",
	OpAddByte: "ADD",
	OpLdReg:   "LD",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE",
	OpLdI:     "LD",
	OpJpV0:    "JP",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD",
	OpLdVxK:   "LD",
	OpLdDTVx:  "LD",
	OpLdSTVx:  "LD",
	OpAddI:    "ADD",
	OpLdF:     "LD",
	OpLdB:     "LD",
	OpStore:   "LD",
	OpLoad:    "LD",
}

// Name returns the mnemonic of the instruction class.
func (op Op) Name() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return opNames[OpUnknown]
}

// Instruction is a decoded opcode together with its operand fields.
type Instruction struct {
	Op     Op
	Opcode uint16

	X   uint8  // register selector, bits 8-11
	Y   uint8  // register selector, bits 4-7
	N   uint8  // low nibble
	KK  uint8  // low byte
	NNN uint16 // low 12 bits
}

// Decode splits an opcode into its fields and selects the instruction by
// its top nibble and, for the 0, 5, 8, 9, E and F families, its secondary
// selector. Opcodes without a mapping decode to OpUnknown.
func Decode(opcode uint16) Instruction {
	in := Instruction{
		Opcode: opcode,
		X:      uint8((opcode & 0x0F00) >> 8),
		Y:      uint8((opcode & 0x00F0) >> 4),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}
	in.Op = decodeOp(opcode, in.N, in.KK)
	return in
}

func decodeOp(opcode uint16, n, kk uint8) Op {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1000:
		return OpJp
	case 0x2000:
		return OpCall
	case 0x3000:
		return OpSeByte
	case 0x4000:
		return OpSneByte
	case 0x5000:
		if n == 0 {
			return OpSeReg
		}
	case 0x6000:
		return OpLdByte
	case 0x7000:
		return OpAddByte
	case 0x8000:
		switch n {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAddReg
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}
	case 0x9000:
		if n == 0 {
			return OpSneReg
		}
	case 0xA000:
		return OpLdI
	case 0xB000:
		return OpJpV0
	case 0xC000:
		return OpRnd
	case 0xD000:
		return OpDrw
	case 0xE000:
		switch kk {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF000:
		switch kk {
		case 0x07:
			return OpLdVxDT
		case 0x0A:
			return OpLdVxK
		case 0x15:
			return OpLdDTVx
		case 0x18:
			return OpLdSTVx
		case 0x1E:
			return OpAddI
		case 0x29:
			return OpLdF
		case 0x33:
			return OpLdB
		case 0x55:
			return OpStore
		case 0x65:
			return OpLoad
		}
	}
	return OpUnknown
}

// String formats the instruction in conventional assembler notation.
func (in Instruction) String() string {
	name := in.Op.Name()
	switch in.Op {
	case OpCls, OpRet:
		return name
	case OpJp, OpCall:
		return fmt.Sprintf("%s $%03X", name, in.NNN)
	case OpJpV0:
		return fmt.Sprintf("%s V0, $%03X", name, in.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("%s V%X, $%02X", name, in.X, in.KK)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("%s V%X, V%X", name, in.X, in.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("%s V%X", name, in.X)
	case OpLdI:
		return fmt.Sprintf("%s I, $%03X", name, in.NNN)
	case OpDrw:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, in.X, in.Y, in.N)
	case OpLdVxDT:
		return fmt.Sprintf("%s V%X, DT", name, in.X)
	case OpLdVxK:
		return fmt.Sprintf("%s V%X, K", name, in.X)
	case OpLdDTVx:
		return fmt.Sprintf("%s DT, V%X", name, in.X)
	case OpLdSTVx:
		return fmt.Sprintf("%s ST, V%X", name, in.X)
	case OpAddI:
		return fmt.Sprintf("%s I, V%X", name, in.X)
	case OpLdF:
		return fmt.Sprintf("%s F, V%X", name, in.X)
	case OpLdB:
		return fmt.Sprintf("%s B, V%X", name, in.X)
	case OpStore:
		return fmt.Sprintf("%s [I], V%X", name, in.X)
	case OpLoad:
		return fmt.Sprintf("%s V%X, [I]", name, in.X)
	}
	return fmt.Sprintf("%s $%04X", name, in.Opcode)
}
