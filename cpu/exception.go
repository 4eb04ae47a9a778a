package cpu

// Exception vector numbers.
const (
	VecResetSSP       = 0
	VecResetPC        = 1
	VecBusError       = 2
	VecAddressError   = 3
	VecIllegal        = 4
	VecZeroDivide     = 5
	VecCHK            = 6
	VecTRAPV          = 7
	VecPrivilege      = 8
	VecTrace          = 9
	VecLineA          = 10
	VecLineF          = 11
	VecUninitialized  = 15
	VecSpurious       = 24
	VecAutovector     = 24 // level n uses VecAutovector+n
	VecTrap           = 32 // TRAP #n uses VecTrap+n
	maxInterruptLevel = 7
)

// exception takes exception vector n: enter supervisor mode with tracing
// off, push PC and the old SR, and continue at the vector's handler. An
// unset vector falls back to the uninitialised-interrupt vector; if that
// is unset too the CPU halts.
func (c *CPU) exception(n int) error {
	return c.exceptionAt(n, c.PC)
}

// fault takes an exception whose stacked PC is the faulting instruction,
// so the handler can inspect or skip it.
func (c *CPU) fault(n int) error {
	return c.exceptionAt(n, c.opPC)
}

func (c *CPU) exceptionAt(n int, pc uint32) error {
	if n < VecTrap {
		c.log.Printf("[m68k] exception %d at PC=%06X SR=%04X opcode=%04X", n, c.opPC, c.sr, c.opcode)
	}

	old := c.sr
	c.SetSR((c.sr | SRS) &^ SRT)
	c.pushLong(pc)
	c.pushWord(old)

	handler := c.bus.Vector(uint8(n))
	if handler == 0 {
		handler = c.bus.Vector(VecUninitialized)
	}
	if handler == 0 {
		c.log.Printf("[m68k] double fault on vector %d, halting", n)
		c.halted = true
		return ErrHalted
	}
	c.PC = handler
	c.faulted = true
	return nil
}

func (c *CPU) privilegeViolation() error {
	return c.fault(VecPrivilege)
}

// RequestInterrupt raises an interrupt at the given priority level (1-7).
// It is taken before the next instruction if the level is above the
// current mask, or at once for the non-maskable level 7.
func (c *CPU) RequestInterrupt(level int) {
	if level < 1 || level > maxInterruptLevel {
		return
	}
	if level > c.pending {
		c.pending = level
	}
}

// serviceInterrupt takes a pending interrupt if the mask allows it and
// reports whether one was taken.
func (c *CPU) serviceInterrupt() (bool, error) {
	level := c.pending
	if level == 0 || (level <= c.InterruptMask() && level != maxInterruptLevel) {
		return false, nil
	}
	c.pending = 0
	c.stopped = false

	old := c.sr
	c.SetSR((c.sr|SRS)&^SRT&^(SRI0|SRI1|SRI2) | uint16(level)<<8)
	c.pushLong(c.PC)
	c.pushWord(old)

	handler := c.bus.Vector(uint8(VecAutovector + level))
	if handler == 0 {
		handler = c.bus.Vector(VecSpurious)
	}
	if handler == 0 {
		handler = c.bus.Vector(VecUninitialized)
	}
	if handler == 0 {
		c.halted = true
		return true, ErrHalted
	}
	c.PC = handler
	return true, nil
}
