package chip8

import (
	"github.com/pkg/errors"
)

const (
	StartAddress = 0x200
	RegCarry     = 0xF
	StackDepth   = 16
)

type CPU struct {
	V     [16]uint8 // general-purpose registers
	I     uint16    // Index register
	PC    uint16    // program counter
	SP    uint16    // stack pointer
	Stack [StackDepth]uint16

	opcode uint16
	cycles int64
}

func (cpu *CPU) reset() {
	*cpu = CPU{PC: StartAddress}
}

// Cycle executes one instruction and counts it.
func (cpu *CPU) Cycle(sys *System) error {
	if err := cpu.step(sys); err != nil {
		return err
	}
	cpu.cycles++
	return nil
}

// step fetches, decodes and executes the opcode at PC. newPC starts at the
// next instruction; control flow handlers return their own target.
func (cpu *CPU) step(sys *System) error {
	opc, err := sys.mem.fetchOpcode(cpu.PC)
	if err != nil {
		return err
	}
	cpu.opcode = opc

	in := Decode(opc)
	newPC := cpu.PC + 2
	x, y := in.X, in.Y

	switch in.Op {
	case OpCls:
		cpu.cls(&sys.gfx)
	case OpRet:
		newPC, err = cpu.ret()
	case OpJp:
		newPC = cpu.jpAddr(in.NNN)
	case OpCall:
		newPC, err = cpu.callAddr(in.NNN)
	case OpSeByte:
		newPC = cpu.seVxByte(x, in.KK)
	case OpSneByte:
		newPC = cpu.sneVxByte(x, in.KK)
	case OpSeReg:
		newPC = cpu.seVxVy(x, y)
	case OpLdByte:
		cpu.ldVxByte(x, in.KK)
	case OpAddByte:
		cpu.addVxByte(x, in.KK)
	case OpLdReg:
		cpu.ldVxVy(x, y)
	case OpOr:
		cpu.orVxVy(x, y)
	case OpAnd:
		cpu.andVxVy(x, y)
	case OpXor:
		cpu.xorVxVy(x, y)
	case OpAddReg:
		cpu.addVxVy(x, y)
	case OpSub:
		cpu.subVxVy(x, y)
	case OpShr:
		cpu.shrVx(x)
	case OpSubn:
		cpu.subnVxVy(x, y)
	case OpShl:
		cpu.shlVx(x)
	case OpSneReg:
		newPC = cpu.sneVxVy(x, y)
	case OpLdI:
		cpu.ldIAddr(in.NNN)
	case OpJpV0:
		newPC, err = cpu.jpV0Addr(in.NNN)
	case OpRnd:
		cpu.rndVxByte(sys, x, in.KK)
	case OpDrw:
		err = cpu.drwVxVyNibble(sys, x, y, in.N)
	case OpSkp:
		newPC = cpu.skpVx(sys, x)
	case OpSknp:
		newPC = cpu.sknpVx(sys, x)
	case OpLdVxDT:
		cpu.ldVxDT(sys, x)
	case OpLdVxK:
		newPC = cpu.ldVxK(sys, x)
	case OpLdDTVx:
		cpu.ldDTVx(sys, x)
	case OpLdSTVx:
		cpu.ldSTVx(sys, x)
	case OpAddI:
		cpu.addIVx(x)
	case OpLdF:
		cpu.ldFVx(x)
	case OpLdB:
		err = cpu.ldBVx(&sys.mem, x)
	case OpStore:
		err = cpu.ldIVx(&sys.mem, x)
	case OpLoad:
		err = cpu.ldVxI(&sys.mem, x)
	case OpUnknown:
		sys.unknownOp(cpu.PC, opc)
	}
	if err != nil {
		return errors.Wrapf(err, "%s at 0x%03X", in, cpu.PC)
	}

	cpu.PC = newPC
	return nil
}

func (cpu *CPU) jpAddr(addr uint16) uint16 {
	return addr
}

func (cpu *CPU) callAddr(addr uint16) (uint16, error) {
	if cpu.SP >= StackDepth {
		return 0, ErrStackOverflow
	}
	cpu.Stack[cpu.SP] = cpu.PC + 2
	cpu.SP++
	return addr, nil
}

func (cpu *CPU) ret() (uint16, error) {
	if cpu.SP == 0 {
		return 0, ErrStackUnderflow
	}
	cpu.SP--
	return cpu.Stack[cpu.SP], nil
}

func (cpu *CPU) cls(gfx *Graphics) {
	gfx.clear()
}

func (cpu *CPU) seVxByte(x, val uint8) uint16 {
	if cpu.V[x] == val {
		return cpu.PC + 4 // skip next
	}
	return cpu.PC + 2
}

func (cpu *CPU) sneVxByte(x, val uint8) uint16 {
	if cpu.V[x] != val {
		return cpu.PC + 4 // skip next
	}
	return cpu.PC + 2
}

func (cpu *CPU) seVxVy(x, y uint8) uint16 {
	if cpu.V[x] == cpu.V[y] {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) ldVxByte(x, val uint8) {
	cpu.V[x] = val
}

func (cpu *CPU) addVxByte(x, val uint8) {
	cpu.V[x] += val
}

func (cpu *CPU) ldVxVy(x, y uint8) {
	cpu.V[x] = cpu.V[y]
}

func (cpu *CPU) orVxVy(x, y uint8) {
	cpu.V[x] |= cpu.V[y]
}

func (cpu *CPU) andVxVy(x, y uint8) {
	cpu.V[x] &= cpu.V[y]
}

func (cpu *CPU) xorVxVy(x, y uint8) {
	cpu.V[x] ^= cpu.V[y]
}

// The flag is written after the result so that VF as destination ends up
// holding the flag.
func (cpu *CPU) addVxVy(x, y uint8) {
	sum := uint16(cpu.V[x]) + uint16(cpu.V[y])
	cpu.V[x] = uint8(sum)
	cpu.setCarry(sum > 0xFF)
}

func (cpu *CPU) subVxVy(x, y uint8) {
	noBorrow := cpu.V[x] > cpu.V[y]
	cpu.V[x] -= cpu.V[y]
	cpu.setCarry(noBorrow)
}

func (cpu *CPU) setCarry(carry bool) {
	if carry {
		cpu.V[RegCarry] = 1
	} else {
		cpu.V[RegCarry] = 0
	}
}

// Shifts operate on Vx itself; VY is ignored.
func (cpu *CPU) shrVx(x uint8) {
	lsb := cpu.V[x] & 0x01
	cpu.V[x] >>= 1
	cpu.setCarry(lsb == 1)
}

func (cpu *CPU) subnVxVy(x, y uint8) {
	noBorrow := cpu.V[y] > cpu.V[x]
	cpu.V[x] = cpu.V[y] - cpu.V[x]
	cpu.setCarry(noBorrow)
}

func (cpu *CPU) shlVx(x uint8) {
	msb := cpu.V[x] >> 7
	cpu.V[x] <<= 1
	cpu.setCarry(msb == 1)
}

func (cpu *CPU) sneVxVy(x, y uint8) uint16 {
	if cpu.V[x] != cpu.V[y] {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) ldIAddr(index uint16) {
	cpu.I = index
}

func (cpu *CPU) jpV0Addr(addr uint16) (uint16, error) {
	target := addr + uint16(cpu.V[0])
	if target >= MemorySize {
		return 0, errors.Wrapf(ErrOutOfBounds, "jump target 0x%04X", target)
	}
	return target, nil
}

func (cpu *CPU) rndVxByte(sys *System, x, val uint8) {
	cpu.V[x] = uint8(sys.rnd.Intn(256)) & val
}

func (cpu *CPU) drwVxVyNibble(sys *System, x, y, h uint8) error {
	// Each row of 8 pixels is read as bit-coded starting from memory location I;
	// I value doesn't change after the execution of this instruction.
	sprite, err := sys.mem.span(cpu.I, int(h))
	if err != nil {
		return err
	}
	hit := sys.gfx.draw(sprite, cpu.V[x], cpu.V[y])
	cpu.setCarry(hit)
	return nil
}

func (cpu *CPU) skpVx(sys *System, x uint8) uint16 {
	if sys.keys[cpu.V[x]&0xF] {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) sknpVx(sys *System, x uint8) uint16 {
	if !sys.keys[cpu.V[x]&0xF] {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) ldVxDT(sys *System, x uint8) {
	cpu.V[x] = sys.delayTimer
}

func (cpu *CPU) ldVxK(sys *System, x uint8) uint16 {
	for i, pressed := range sys.keys {
		if pressed {
			cpu.V[x] = uint8(i)
			return cpu.PC + 2
		}
	}
	return cpu.PC // try again in next cycle
}

func (cpu *CPU) ldDTVx(sys *System, x uint8) {
	sys.delayTimer = cpu.V[x]
}

func (cpu *CPU) ldSTVx(sys *System, x uint8) {
	sys.soundTimer = cpu.V[x]
}

func (cpu *CPU) addIVx(x uint8) {
	cpu.I += uint16(cpu.V[x])
}

func (cpu *CPU) ldFVx(x uint8) {
	cpu.I = FontAddress + uint16(cpu.V[x])*FontGlyphSize
}

func (cpu *CPU) ldBVx(mem *Memory, x uint8) error {
	dst, err := mem.span(cpu.I, 3)
	if err != nil {
		return err
	}
	dst[0] = cpu.V[x] / 100
	dst[1] = (cpu.V[x] / 10) % 10
	dst[2] = cpu.V[x] % 10
	return nil
}

func (cpu *CPU) ldIVx(mem *Memory, x uint8) error {
	dst, err := mem.span(cpu.I, int(x)+1)
	if err != nil {
		return err
	}
	copy(dst, cpu.V[:x+1])
	return nil
}

func (cpu *CPU) ldVxI(mem *Memory, x uint8) error {
	src, err := mem.span(cpu.I, int(x)+1)
	if err != nil {
		return err
	}
	copy(cpu.V[:x+1], src)
	return nil
}
