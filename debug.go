package chip8

import (
	"fmt"
	"io"

	tm "github.com/buger/goterm"
)

// Print writes the processor state and the instruction at PC to w.
func (sys *System) Print(w io.Writer) {
	sys.cpu.Print(w, &sys.mem)
	fmt.Fprintf(w, "DT = %d, ST = %d, unknown opcodes = %d\n", sys.delayTimer, sys.soundTimer, sys.unknown)
}

// Dump clears the terminal and shows the processor state at the top of it.
func (sys *System) Dump() {
	tm.Clear()
	tm.MoveCursor(1, 1)

	sys.Print(tm.Screen)

	tm.Flush()
}

func (cpu *CPU) Print(w io.Writer, mem *Memory) {
	fmt.Fprintf(w, "Cycles #%d\n", cpu.cycles)
	fmt.Fprintf(w, "PC = 0x%04x, SP = %d, I = 0x%04x\n", cpu.PC, cpu.SP, cpu.I)
	if opc, err := mem.fetchOpcode(cpu.PC); err == nil {
		fmt.Fprintf(w, "next: %04X %s\n", opc, Decode(opc))
	}
	for i := 0; i < len(cpu.V); i += 4 {
		fmt.Fprintf(w, "V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x\n",
			i, cpu.V[i], i+1, cpu.V[i+1], i+2, cpu.V[i+2], i+3, cpu.V[i+3])
	}
}
