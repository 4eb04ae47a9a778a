// Package vm hosts a 68000 core on flat RAM so raw programs can be loaded,
// run and inspected.
package vm

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Urethramancer/m68kcore/cpu"
	"github.com/Urethramancer/m68kcore/memory"
)

// ExitTrap is the TRAP number a program uses to hand control back to the host.
// D0 holds the exit status.
const ExitTrap = 15

var (
	// ErrStepLimit is returned by Run when the step budget runs out.
	ErrStepLimit = errors.New("step limit reached")
	// ErrStopped is returned by Run when the CPU executes STOP with no
	// interrupt source to wake it.
	ErrStopped = errors.New("cpu stopped")
)

// Options configures a Machine.
type Options struct {
	// Memory is the RAM size in bytes.
	Memory int
	// Logger receives exception and reset messages. Nil discards.
	Logger *log.Logger
	// Trace receives one line per executed instruction. Nil disables tracing.
	Trace io.Writer
}

// Machine is a CPU wired to RAM.
type Machine struct {
	CPU *cpu.CPU
	RAM *memory.RAM

	log      *log.Logger
	trace    io.Writer
	exited   bool
	exitCode uint32
	resets   int
}

// bus adds the RESET line to RAM.
type bus struct {
	*memory.RAM
	m *Machine
}

func (b bus) Reset() {
	b.m.resets++
	b.m.log.Printf("[vm] RESET asserted")
}

// New creates a machine with the given options.
func New(opts Options) (*Machine, error) {
	ram, err := memory.New(opts.Memory)
	if err != nil {
		return nil, fmt.Errorf("vm failed to allocate memory: %w", err)
	}

	l := opts.Logger
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}

	m := &Machine{
		RAM:   ram,
		log:   l,
		trace: opts.Trace,
	}
	m.CPU, err = cpu.New(bus{RAM: ram, m: m}, cpu.Options{
		Logger:   l,
		TrapHook: m.trap,
	})
	if err != nil {
		return nil, fmt.Errorf("vm failed to create cpu: %w", err)
	}
	return m, nil
}

func (m *Machine) trap(n int) bool {
	if n != ExitTrap {
		return false
	}
	m.exited = true
	m.exitCode = m.CPU.D[0]
	return true
}

// LoadCode copies a raw program image into memory at addr.
func (m *Machine) LoadCode(addr uint32, code []byte) error {
	if err := m.RAM.Load(addr, code); err != nil {
		return fmt.Errorf("vm failed to load code: %w", err)
	}
	return nil
}

// LoadWords stores big-endian words into memory at addr.
func (m *Machine) LoadWords(addr uint32, words ...uint16) error {
	return m.LoadCode(addr, memory.WordsToBytes(words))
}

// Boot points the reset vectors at origin and ssp and resets the CPU.
// With user set, execution starts in user mode with the user stack at usp.
func (m *Machine) Boot(origin, ssp uint32, user bool, usp uint32) {
	m.RAM.SetVector(cpu.VecResetSSP, ssp)
	m.RAM.SetVector(cpu.VecResetPC, origin)
	m.CPU.Reset()
	m.exited = false
	m.exitCode = 0
	if user {
		m.CPU.SetUSP(usp)
		m.CPU.SetSR(0)
	}
}

// Exited reports whether the program has returned through the exit trap,
// and the status it left in D0.
func (m *Machine) Exited() (bool, uint32) {
	return m.exited, m.exitCode
}

// Resets returns how many times the program executed RESET.
func (m *Machine) Resets() int {
	return m.resets
}

// Run steps the CPU until the program exits, an error occurs or maxSteps
// instructions have run. A maxSteps of 0 means no limit. It returns the
// number of instructions executed.
func (m *Machine) Run(maxSteps int) (int, error) {
	n := 0
	for maxSteps <= 0 || n < maxSteps {
		if m.CPU.Stopped() {
			return n, ErrStopped
		}
		if m.trace != nil {
			m.traceStep()
		}
		if err := m.CPU.Step(); err != nil {
			return n, err
		}
		n++
		if m.exited {
			return n, nil
		}
	}
	return n, ErrStepLimit
}

func (m *Machine) traceStep() {
	pc := m.CPU.PC
	op := m.RAM.ReadU16(pc)
	name := "?"
	if inst := m.CPU.Table().Lookup(op); inst != nil {
		name = inst.Mnemonic
	}
	fmt.Fprintf(m.trace, "%06X  %04X  %s\n", pc, op, name)
}
