package cpu

// Step services a pending interrupt if one is due, then fetches, decodes
// and executes a single instruction. A stopped CPU returns without
// executing anything until an interrupt wakes it.
func (c *CPU) Step() error {
	if c.halted {
		return ErrHalted
	}

	if c.pending != 0 {
		if _, err := c.serviceInterrupt(); err != nil {
			return &ExecError{PC: c.PC, Err: err}
		}
	}
	if c.stopped {
		return nil
	}

	tracing := c.sr&SRT != 0
	c.faulted = false

	// Fetch
	c.opPC = c.PC
	opcode := c.fetchWord()
	c.opcode = opcode

	// Decode and execute
	inst := c.table.Lookup(opcode)
	var err error
	if inst == nil {
		err = c.unmapped(opcode)
	} else {
		err = inst.Exec(c, opcode)
	}
	if err != nil {
		e := &ExecError{PC: c.opPC, Opcode: opcode, Err: err}
		if inst != nil {
			e.Mnemonic = inst.Mnemonic
		}
		return e
	}

	if tracing && !c.faulted {
		if err := c.exception(VecTrace); err != nil {
			return &ExecError{PC: c.opPC, Opcode: opcode, Err: err}
		}
	}
	return nil
}

// unmapped handles an opcode with no table entry: line A and line F
// emulator traps, and the illegal instruction exception for the rest.
func (c *CPU) unmapped(opcode uint16) error {
	switch opcode >> 12 {
	case 0xA:
		return c.fault(VecLineA)
	case 0xF:
		return c.fault(VecLineF)
	}
	return c.fault(VecIllegal)
}
