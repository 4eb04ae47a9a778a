// Package cpu implements the decode-and-execute core of a Motorola 68000.
//
// The core owns the programmer-visible processor state and a 64K-entry
// opcode dispatch table. A host supplies the memory and device space as a
// Bus and drives execution one instruction at a time with Step.
package cpu

import (
	"io"
	"log"
)

// Bus is the memory and device space the processor executes against.
// Word and long accesses are composed by the core from byte accesses in
// ascending address order (big-endian), so every read and write the
// instruction semantics call for reaches the bus exactly once.
type Bus interface {
	// Read returns the byte at addr.
	Read(addr uint32) uint8
	// Write stores v at addr.
	Write(addr uint32, v uint8)
	// Vector returns the handler address for exception vector n.
	Vector(n uint8) uint32
}

// Resetter is implemented by buses with devices that react to the RESET instruction.
type Resetter interface {
	Reset()
}

// TrapHook is offered TRAP #n before the exception is taken.
// Returning true tells the core the host has handled the trap.
type TrapHook func(n int) bool

// Options configures a CPU.
type Options struct {
	// Logger receives a line for every error-class exception. Nil discards.
	Logger *log.Logger
	// Table overrides the shared dispatch table.
	Table *Table
	// TrapHook intercepts TRAP instructions.
	TrapHook TrapHook
}

// CPU registers and execution state.
type CPU struct {
	// D is for data registers.
	D [8]uint32
	// A is for address registers. A7 is the current stack pointer.
	A [8]uint32
	// PC is the program counter.
	PC uint32

	// sr is the status register. Writes go through SetSR.
	sr uint16
	// usp is the user stack pointer while in supervisor mode.
	usp uint32
	// ssp is the supervisor stack pointer while in user mode.
	ssp uint32

	bus      Bus
	table    *Table
	log      *log.Logger
	trapHook TrapHook

	// opPC is the address of the instruction being executed.
	opPC   uint32
	opcode uint16

	stopped bool
	halted  bool
	// faulted is set when the current instruction took an exception.
	faulted bool
	// pending holds the highest requested interrupt level, 0 for none.
	pending int
}

// Registers is a snapshot of the programmer-visible state.
type Registers struct {
	D   [8]uint32
	A   [8]uint32
	PC  uint32
	SR  uint16
	USP uint32
	SSP uint32
}

// New creates a CPU bound to bus. The processor starts in supervisor mode
// with all registers clear; call Reset to load the reset vectors.
func New(bus Bus, opts Options) (*CPU, error) {
	t := opts.Table
	if t == nil {
		var err error
		t, err = DefaultTable()
		if err != nil {
			return nil, err
		}
	}

	l := opts.Logger
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}

	c := &CPU{
		bus:      bus,
		table:    t,
		log:      l,
		trapHook: opts.TrapHook,
		sr:       SRS | SRI0 | SRI1 | SRI2,
	}
	return c, nil
}

// Reset performs a hardware reset: supervisor mode, interrupts masked,
// SSP loaded from vector 0 and PC from vector 1.
func (c *CPU) Reset() {
	c.D = [8]uint32{}
	c.A = [8]uint32{}
	c.usp = 0
	c.sr = SRS | SRI0 | SRI1 | SRI2
	c.A[7] = c.bus.Vector(VecResetSSP)
	c.ssp = c.A[7]
	c.PC = c.bus.Vector(VecResetPC)
	c.stopped = false
	c.halted = false
	c.pending = 0
}

// Table returns the dispatch table the CPU executes from.
func (c *CPU) Table() *Table {
	return c.table
}

// Stopped reports whether the CPU is parked by STOP waiting for an interrupt.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// Halted reports whether the CPU has halted on a double fault.
func (c *CPU) Halted() bool {
	return c.halted
}

// Supervisor reports whether the CPU is in supervisor mode.
func (c *CPU) Supervisor() bool {
	return c.sr&SRS != 0
}

// USP returns the user stack pointer, reading A7 when it is the active one.
func (c *CPU) USP() uint32 {
	if c.Supervisor() {
		return c.usp
	}
	return c.A[7]
}

// SetUSP sets the user stack pointer.
func (c *CPU) SetUSP(v uint32) {
	if c.Supervisor() {
		c.usp = v
		return
	}
	c.A[7] = v
}

// SSP returns the supervisor stack pointer, reading A7 when it is the active one.
func (c *CPU) SSP() uint32 {
	if c.Supervisor() {
		return c.A[7]
	}
	return c.ssp
}

// SetSSP sets the supervisor stack pointer.
func (c *CPU) SetSSP(v uint32) {
	if c.Supervisor() {
		c.A[7] = v
		return
	}
	c.ssp = v
}

// Registers returns a snapshot of the current register state.
func (c *CPU) Registers() Registers {
	return Registers{
		D:   c.D,
		A:   c.A,
		PC:  c.PC,
		SR:  c.sr,
		USP: c.USP(),
		SSP: c.SSP(),
	}
}

// register returns D0-D7 for n < 8 and A0-A7 for 8 <= n < 16.
func (c *CPU) register(n int) uint32 {
	if n < 8 {
		return c.D[n]
	}
	return c.A[n-8]
}

func (c *CPU) setRegister(n int, v uint32) {
	if n < 8 {
		c.D[n] = v
		return
	}
	c.A[n-8] = v
}

// setD merges the low bits of v for size into data register n.
func (c *CPU) setD(n uint16, v uint32, size Size) {
	mask := size.Mask()
	c.D[n] = (c.D[n] &^ mask) | (v & mask)
}
