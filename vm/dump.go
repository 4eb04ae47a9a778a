package vm

import (
	"fmt"
	"io"
	"strings"
)

const (
	colourReset = "\x1b[0m"
	colourDim   = "\x1b[2m"
	colourFlag  = "\x1b[1;32m"
)

// DumpRegisters writes the register file and flags to w. With colour set,
// zero registers are dimmed and set flags highlighted.
func (m *Machine) DumpRegisters(w io.Writer, colour bool) {
	r := m.CPU.Registers()
	reg := func(name string, v uint32) string {
		s := fmt.Sprintf("%s=%08X", name, v)
		if colour && v == 0 {
			return colourDim + s + colourReset
		}
		return s
	}

	for i := 0; i < 8; i++ {
		fmt.Fprintf(w, "%s  %s\n", reg(fmt.Sprintf("D%d", i), r.D[i]), reg(fmt.Sprintf("A%d", i), r.A[i]))
	}
	fmt.Fprintf(w, "PC=%08X  SR=%04X  USP=%08X  SSP=%08X\n", r.PC, r.SR, r.USP, r.SSP)

	var flags strings.Builder
	for i, name := range []string{"X", "N", "Z", "V", "C"} {
		set := r.SR&(1<<(4-i)) != 0
		switch {
		case set && colour:
			flags.WriteString(colourFlag + name + colourReset)
		case set:
			flags.WriteString(name)
		default:
			flags.WriteString("-")
		}
	}
	mode := "user"
	if r.SR&0x2000 != 0 {
		mode = "supervisor"
	}
	fmt.Fprintf(w, "CCR=%s  IPL=%d  %s\n", flags.String(), (r.SR>>8)&7, mode)
}
