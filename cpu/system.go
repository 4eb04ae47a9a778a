package cpu

// opTRAP takes vector 32+n, unless the trap hook claims it.
func (c *CPU) opTRAP(opcode uint16) error {
	n := int(opcode & 0xF)
	if c.trapHook != nil && c.trapHook(n) {
		return nil
	}
	return c.exception(VecTrap + n)
}

// opTRAPV traps if V is set.
func (c *CPU) opTRAPV(opcode uint16) error {
	if c.flag(SRV) {
		return c.exception(VecTRAPV)
	}
	return nil
}

// opILLEGAL takes the illegal instruction exception.
func (c *CPU) opILLEGAL(opcode uint16) error {
	return c.fault(VecIllegal)
}

// opNOP does nothing.
func (c *CPU) opNOP(opcode uint16) error {
	return nil
}

// opSTOP loads SR and parks the CPU until an interrupt (privileged).
func (c *CPU) opSTOP(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	c.SetSR(c.fetchWord())
	c.stopped = true
	return nil
}

// opRESET asserts the reset line for external devices (privileged).
// Processor state is unaffected.
func (c *CPU) opRESET(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	if r, ok := c.bus.(Resetter); ok {
		r.Reset()
	}
	return nil
}

// opLINK pushes An, points An at it and reserves displacement bytes of
// stack. LINK A7 stores the already decremented stack pointer.
func (c *CPU) opLINK(opcode uint16) error {
	an := opcode & 7
	disp := signExtend(uint32(c.fetchWord()), SizeWord)
	c.pushLong(c.A[an])
	if an == 7 {
		c.write(c.A[7], SizeLong, c.A[7])
	}
	c.A[an] = c.A[7]
	c.A[7] += disp
	return nil
}

// opUNLK restores the stack pointer from An and pops An.
func (c *CPU) opUNLK(opcode uint16) error {
	an := opcode & 7
	c.A[7] = c.A[an]
	if an == 7 {
		c.A[7] = c.read(c.A[7], SizeLong)
		return nil
	}
	c.A[an] = c.popLong()
	return nil
}

func registerSystem(b *builder) {
	trap := &Instruction{"trap", (*CPU).opTRAP}
	for v := uint16(0); v < 16; v++ {
		b.add(OPTRAP|v, trap)
	}

	link := &Instruction{"link", (*CPU).opLINK}
	unlk := &Instruction{"unlk", (*CPU).opUNLK}
	for an := uint16(0); an < 8; an++ {
		b.add(OPLINK|an, link)
		b.add(OPUNLK|an, unlk)
	}

	b.add(OPRESET, &Instruction{"reset", (*CPU).opRESET})
	b.add(OPNOP, &Instruction{"nop", (*CPU).opNOP})
	b.add(OPSTOP, &Instruction{"stop", (*CPU).opSTOP})
	b.add(OPTRAPV, &Instruction{"trapv", (*CPU).opTRAPV})
	b.add(OPILLEGAL, &Instruction{"illegal", (*CPU).opILLEGAL})
}
