package vm

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/Urethramancer/m68kcore/cpu"
)

const (
	origin = 0x1000
	ssp    = 0x8000
)

func newMachine(t *testing.T, opts Options, words ...uint16) *Machine {
	t.Helper()
	is := is.New(t)
	if opts.Memory == 0 {
		opts.Memory = 0x10000
	}
	m, err := New(opts)
	is.NoErr(err)
	is.NoErr(m.LoadWords(origin, words...))
	m.Boot(origin, ssp, false, 0)
	return m
}

func TestRunToExit(t *testing.T) {
	is := is.New(t)
	m := newMachine(t, Options{},
		0x7005,         // MOVEQ #5,D0
		0x5281,         // loop: ADDQ.L #1,D1
		0x51C8, 0xFFFC, // DBF D0,loop
		0x2001, // MOVE.L D1,D0
		0x4E4F, // TRAP #15
	)
	n, err := m.Run(100)
	is.NoErr(err)
	is.Equal(n, 15)

	exited, code := m.Exited()
	is.True(exited)
	is.Equal(code, uint32(6))
}

func TestRunStepLimit(t *testing.T) {
	is := is.New(t)
	m := newMachine(t, Options{}, 0x60FE) // BRA.S *
	n, err := m.Run(10)
	is.True(errors.Is(err, ErrStepLimit))
	is.Equal(n, 10)
	exited, _ := m.Exited()
	is.True(!exited)
}

func TestRunStopped(t *testing.T) {
	is := is.New(t)
	m := newMachine(t, Options{}, 0x4E72, 0x2700) // STOP #$2700
	n, err := m.Run(0)
	is.True(errors.Is(err, ErrStopped))
	is.Equal(n, 1)
}

func TestRunReportsExecError(t *testing.T) {
	is := is.New(t)
	m := newMachine(t, Options{}, 0x4E71, 0x60FF, 0x0000, 0x0002)
	n, err := m.Run(0)
	is.Equal(n, 1)
	is.True(errors.Is(err, cpu.ErrUnimplemented))

	var ee *cpu.ExecError
	is.True(errors.As(err, &ee))
	is.Equal(ee.PC, uint32(origin+2))
}

func TestTrace(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	m := newMachine(t, Options{Trace: &buf},
		0x4E71, // NOP
		0x4E4F, // TRAP #15
	)
	_, err := m.Run(0)
	is.NoErr(err)
	is.Equal(buf.String(), "001000  4E71  nop\n001002  4E4F  trap\n")
}

func TestResetCounted(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	m := newMachine(t, Options{Logger: log.New(&buf, "", 0)},
		0x4E70, // RESET
		0x4E70,
		0x4E4F, // TRAP #15
	)
	_, err := m.Run(0)
	is.NoErr(err)
	is.Equal(m.Resets(), 2)
	is.True(strings.Contains(buf.String(), "[vm] RESET asserted"))
}

func TestBootUserMode(t *testing.T) {
	is := is.New(t)
	m, err := New(Options{Memory: 0x10000})
	is.NoErr(err)
	is.NoErr(m.LoadWords(origin,
		0x4E70, // RESET, privileged
	))
	m.Boot(origin, ssp, true, 0x7000)
	is.True(!m.CPU.Supervisor())
	is.Equal(m.CPU.A[7], uint32(0x7000))
	is.Equal(m.CPU.SSP(), uint32(ssp))

	// No privilege handler is installed, so the fault falls through to an
	// unset uninitialised-interrupt vector and the CPU halts.
	_, err = m.Run(0)
	is.True(errors.Is(err, cpu.ErrHalted))
	is.Equal(m.Resets(), 0)
}

func TestNewRejectsBadMemory(t *testing.T) {
	is := is.New(t)
	_, err := New(Options{Memory: 0})
	is.True(err != nil)
}

func TestLoadCodeOverrun(t *testing.T) {
	is := is.New(t)
	m, err := New(Options{Memory: 0x100})
	is.NoErr(err)
	is.True(m.LoadCode(0xFE, []byte{1, 2, 3}) != nil)
}

func TestDumpRegisters(t *testing.T) {
	is := is.New(t)
	m := newMachine(t, Options{},
		0x7006, // MOVEQ #6,D0
		0x4E4F, // TRAP #15
	)
	_, err := m.Run(0)
	is.NoErr(err)

	var buf bytes.Buffer
	m.DumpRegisters(&buf, false)
	out := buf.String()
	is.True(strings.Contains(out, "D0=00000006  A0=00000000\n"))
	is.True(strings.Contains(out, "PC=00001004  SR=2700  USP=00000000  SSP=00008000\n"))
	is.True(strings.Contains(out, "CCR=-----  IPL=7  supervisor\n"))
	is.True(!strings.Contains(out, "\x1b["))

	buf.Reset()
	m.CPU.SetCCR(cpu.SRZ)
	m.DumpRegisters(&buf, true)
	out = buf.String()
	is.True(strings.Contains(out, colourDim+"A0=00000000"+colourReset))
	is.True(strings.Contains(out, "CCR=--"+colourFlag+"Z"+colourReset+"--"))
}
