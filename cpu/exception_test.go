package cpu

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const nop = 0x4E71

// frame returns the SR and PC of the exception frame on top of the stack.
func frame(c *CPU, b *testBus) (uint16, uint32) {
	return b.RAM.ReadU16(c.A[7]), b.RAM.ReadU32(c.A[7] + 2)
}

func TestTRAPAndRTE(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4E43) // TRAP #3
	b.RAM.WriteU16(handler(VecTrap+3), 0x4E73)
	c.SetCCR(SRN | SRC)

	run(t, c, 1)
	is.Equal(c.PC, handler(VecTrap+3))
	is.Equal(c.A[7], uint32(testStack-6))
	sr, pc := frame(c, b)
	is.Equal(sr, uint16(0x2709))
	is.Equal(pc, uint32(testOrigin+2))

	run(t, c, 1)
	is.Equal(c.PC, uint32(testOrigin+2))
	is.Equal(c.SR(), uint16(0x2709))
	is.Equal(c.A[7], uint32(testStack))
}

func TestTRAPFromUserMode(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4E40) // TRAP #0
	b.RAM.WriteU16(handler(VecTrap), 0x4E73)
	enterUserMode(c, 0x6000)

	run(t, c, 1)
	is.True(c.Supervisor())
	is.Equal(c.A[7], uint32(testStack-6))
	is.Equal(c.USP(), uint32(0x6000))

	run(t, c, 1)
	is.True(!c.Supervisor())
	is.Equal(c.A[7], uint32(0x6000))
	is.Equal(c.SSP(), uint32(testStack))
	is.Equal(c.PC, uint32(testOrigin+2))
}

func TestRTEPrivileged(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4E73) // RTE
	enterUserMode(c, 0x6000)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecPrivilege))
	_, pc := frame(c, b)
	is.Equal(pc, uint32(testOrigin))
}

func TestFaultsStackFaultingPC(t *testing.T) {
	for _, tc := range []struct {
		name   string
		opcode uint16
		vector int
	}{
		{"illegal", 0x4AFC, VecIllegal},
		{"unmapped", 0x4E74, VecIllegal},
		{"line a", 0xA000, VecLineA},
		{"line f", 0xF123, VecLineF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			c, b := newTestCPU(t, tc.opcode)
			run(t, c, 1)
			is.Equal(c.PC, handler(tc.vector))
			sr, pc := frame(c, b)
			is.Equal(sr, uint16(0x2700))
			is.Equal(pc, uint32(testOrigin))
		})
	}
}

func TestTRAPV(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4E76, 0x4E76) // TRAPV
	run(t, c, 1)
	is.Equal(c.PC, uint32(testOrigin+2))

	c.SetCCR(SRV)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecTRAPV))
	_, pc := frame(c, b)
	is.Equal(pc, uint32(testOrigin+4))
}

func TestUninitializedVectorFallback(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4AFC)
	b.RAM.SetVector(VecIllegal, 0)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecUninitialized))
}

func TestDoubleFaultHalts(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4AFC)
	b.RAM.SetVector(VecIllegal, 0)
	b.RAM.SetVector(VecUninitialized, 0)

	err := c.Step()
	is.True(errors.Is(err, ErrHalted))
	is.True(c.Halted())

	err = c.Step()
	is.True(errors.Is(err, ErrHalted))

	c.Reset()
	is.True(!c.Halted())
	is.Equal(c.PC, uint32(testOrigin))
}

func TestExceptionLogging(t *testing.T) {
	is := is.New(t)
	_, b := newTestCPU(t, 0x4AFC)
	var buf bytes.Buffer
	c, err := New(b, Options{Logger: log.New(&buf, "", 0)})
	is.NoErr(err)
	c.Reset()
	run(t, c, 1)
	is.True(strings.Contains(buf.String(), "[m68k] exception 4 at PC=001000"))
}

func TestTrapHook(t *testing.T) {
	is := is.New(t)
	_, b := newTestCPU(t,
		0x4E4F, // TRAP #15
		0x4E41, // TRAP #1
	)
	var seen []int
	c, err := New(b, Options{TrapHook: func(n int) bool {
		seen = append(seen, n)
		return n == 15
	}})
	is.NoErr(err)
	c.Reset()

	run(t, c, 1)
	is.Equal(c.PC, uint32(testOrigin+2))
	is.Equal(c.A[7], uint32(testStack))

	run(t, c, 1)
	is.Equal(c.PC, handler(VecTrap+1))
	is.Equal(seen, []int{15, 1})
}

func TestInterruptMasking(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, nop, nop)
	b.RAM.WriteU16(handler(VecAutovector+3), nop)

	c.RequestInterrupt(3)
	run(t, c, 1)
	is.Equal(c.PC, uint32(testOrigin+2))

	c.SetSR(0x2000)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecAutovector+3)+2)
	is.Equal(c.SR(), uint16(0x2300))
	sr, pc := frame(c, b)
	is.Equal(sr, uint16(0x2000))
	is.Equal(pc, uint32(testOrigin+2))
}

func TestInterruptLevelSevenNotMaskable(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, nop)
	b.RAM.WriteU16(handler(VecAutovector+7), nop)
	c.RequestInterrupt(7)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecAutovector+7)+2)
	_, pc := frame(c, b)
	is.Equal(pc, uint32(testOrigin))
}

func TestSpuriousInterruptFallback(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, nop)
	b.RAM.SetVector(VecAutovector+5, 0)
	b.RAM.WriteU16(handler(VecSpurious), nop)
	c.SetSR(0x2000)
	c.RequestInterrupt(5)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecSpurious)+2)
}

func TestRequestInterruptIgnoresBadLevels(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t, nop)
	c.SetSR(0x2000)
	c.RequestInterrupt(0)
	c.RequestInterrupt(8)
	run(t, c, 1)
	is.Equal(c.PC, uint32(testOrigin+2))
}

func TestSTOPWaitsForInterrupt(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4E72, 0x2000) // STOP #$2000
	b.RAM.WriteU16(handler(VecAutovector+1), nop)

	run(t, c, 1)
	is.True(c.Stopped())
	is.Equal(c.SR(), uint16(0x2000))

	run(t, c, 3)
	is.Equal(c.PC, uint32(testOrigin+4))

	c.RequestInterrupt(1)
	run(t, c, 1)
	is.True(!c.Stopped())
	is.Equal(c.PC, handler(VecAutovector+1)+2)
	_, pc := frame(c, b)
	is.Equal(pc, uint32(testOrigin+4))
}

func TestSTOPPrivileged(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t, 0x4E72, 0x2000)
	enterUserMode(c, 0x6000)
	run(t, c, 1)
	is.True(!c.Stopped())
	is.Equal(c.PC, handler(VecPrivilege))
}

func TestTrace(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, nop)
	c.SetSR(0xA700)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecTrace))
	is.Equal(c.SR(), uint16(0x2700))
	sr, pc := frame(c, b)
	is.Equal(sr, uint16(0xA700))
	is.Equal(pc, uint32(testOrigin+2))
}

func TestTraceSkippedOnFault(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t, 0x4AFC)
	c.SetSR(0xA700)
	run(t, c, 1)
	is.Equal(c.PC, handler(VecIllegal))
	is.Equal(c.A[7], uint32(testStack-6))
}

func TestRESETInstruction(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0x4E70, 0x4E70) // RESET
	c.D[0] = 0x1234
	run(t, c, 1)
	is.Equal(b.resets, 1)
	is.Equal(c.D[0], uint32(0x1234))
	is.Equal(c.PC, uint32(testOrigin+2))

	enterUserMode(c, 0x6000)
	run(t, c, 1)
	is.Equal(b.resets, 1)
	is.Equal(c.PC, handler(VecPrivilege))
}

func TestReset(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t)
	c.D[3] = 1
	c.A[2] = 2
	c.PC = 0x2222
	enterUserMode(c, 0x6000)

	c.Reset()
	is.Equal(c.D[3], uint32(0))
	is.Equal(c.A[2], uint32(0))
	is.Equal(c.PC, uint32(testOrigin))
	is.Equal(c.A[7], uint32(testStack))
	is.Equal(c.SR(), uint16(0x2700))
	is.True(c.Supervisor())
	is.Equal(c.InterruptMask(), 7)
}

func TestRegistersSnapshot(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t)
	c.SetUSP(0x6000)
	c.D[1] = 7
	r := c.Registers()
	is.Equal(r.D[1], uint32(7))
	is.Equal(r.USP, uint32(0x6000))
	is.Equal(r.SSP, uint32(testStack))
	is.Equal(r.PC, uint32(testOrigin))
	is.Equal(r.SR, uint16(0x2700))
}
