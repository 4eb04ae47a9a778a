package cpu

// Status register bits.
const (
	// SRC is the carry flag.
	SRC = 1 << 0
	// SRV is the overflow flag.
	SRV = 1 << 1
	// SRZ is the zero flag.
	SRZ = 1 << 2
	// SRN is the negative flag.
	SRN = 1 << 3
	// SRX is the extend flag.
	SRX = 1 << 4
	// SRI0 is bit 0 of the interrupt mask.
	SRI0 = 1 << 8
	// SRI1 is bit 1 of the interrupt mask.
	SRI1 = 1 << 9
	// SRI2 is bit 2 of the interrupt mask.
	SRI2 = 1 << 10
	// SRS is the supervisor bit.
	SRS = 1 << 13
	// SRT is the trace bit.
	SRT = 1 << 15

	// srMask holds the bits that exist on the 68000.
	srMask = SRT | SRS | SRI2 | SRI1 | SRI0 | ccrMask
	// ccrMask holds the condition code bits.
	ccrMask = SRX | SRN | SRZ | SRV | SRC
)

// SR returns the status register.
func (c *CPU) SR() uint16 {
	return c.sr
}

// SetSR writes the status register. When the supervisor bit changes the
// outgoing A7 is saved to its shadow and the other stack pointer loaded.
func (c *CPU) SetSR(v uint16) {
	v &= srMask
	wasSuper := c.sr&SRS != 0
	isSuper := v&SRS != 0
	if wasSuper != isSuper {
		if wasSuper {
			c.ssp = c.A[7]
			c.A[7] = c.usp
		} else {
			c.usp = c.A[7]
			c.A[7] = c.ssp
		}
	}
	c.sr = v
}

// CCR returns the condition code register.
func (c *CPU) CCR() uint8 {
	return uint8(c.sr & ccrMask)
}

// SetCCR replaces the condition codes, leaving the system byte alone.
func (c *CPU) SetCCR(v uint8) {
	c.sr = c.sr&^ccrMask | uint16(v)&ccrMask
}

// InterruptMask returns the current interrupt priority mask.
func (c *CPU) InterruptMask() int {
	return int(c.sr>>8) & 7
}

func (c *CPU) setFlag(flag uint16, on bool) {
	if on {
		c.sr |= flag
	} else {
		c.sr &^= flag
	}
}

func (c *CPU) flag(flag uint16) bool {
	return c.sr&flag != 0
}

// extend returns the X flag as 0 or 1.
func (c *CPU) extend() uint32 {
	if c.sr&SRX != 0 {
		return 1
	}
	return 0
}

// opANDItoCCR: ANDI #<data>,CCR
func (c *CPU) opANDItoCCR(opcode uint16) error {
	imm := c.fetchWord()
	c.SetCCR(c.CCR() & uint8(imm))
	return nil
}

// opORItoCCR: ORI #<data>,CCR
func (c *CPU) opORItoCCR(opcode uint16) error {
	imm := c.fetchWord()
	c.SetCCR(c.CCR() | uint8(imm))
	return nil
}

// opEORItoCCR: EORI #<data>,CCR
func (c *CPU) opEORItoCCR(opcode uint16) error {
	imm := c.fetchWord()
	c.SetCCR(c.CCR() ^ uint8(imm))
	return nil
}

// opANDItoSR: ANDI #<data>,SR (privileged)
func (c *CPU) opANDItoSR(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	imm := c.fetchWord()
	c.SetSR(c.sr & imm)
	return nil
}

// opORItoSR: ORI #<data>,SR (privileged)
func (c *CPU) opORItoSR(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	imm := c.fetchWord()
	c.SetSR(c.sr | imm)
	return nil
}

// opEORItoSR: EORI #<data>,SR (privileged)
func (c *CPU) opEORItoSR(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	imm := c.fetchWord()
	c.SetSR(c.sr ^ imm)
	return nil
}

// opMOVEFromSR: MOVE SR,<ea>
func (c *CPU) opMOVEFromSR(opcode uint16) error {
	dst, err := c.resolve((opcode>>3)&7, opcode&7, SizeWord)
	if err != nil {
		return err
	}
	return dst.write(c, uint32(c.sr))
}

// opMOVEToCCR: MOVE <ea>,CCR
func (c *CPU) opMOVEToCCR(opcode uint16) error {
	src, err := c.resolve((opcode>>3)&7, opcode&7, SizeWord)
	if err != nil {
		return err
	}
	v, err := src.read(c)
	if err != nil {
		return err
	}
	c.SetCCR(uint8(v))
	return nil
}

// opMOVEToSR: MOVE <ea>,SR (privileged)
func (c *CPU) opMOVEToSR(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	src, err := c.resolve((opcode>>3)&7, opcode&7, SizeWord)
	if err != nil {
		return err
	}
	v, err := src.read(c)
	if err != nil {
		return err
	}
	c.SetSR(uint16(v))
	return nil
}

// opMOVEUSP: MOVE An,USP and MOVE USP,An (privileged)
func (c *CPU) opMOVEUSP(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	an := opcode & 7
	if opcode&0x8 != 0 {
		c.A[an] = c.usp
	} else {
		c.usp = c.A[an]
	}
	return nil
}

func registerStatus(b *builder) {
	b.add(OPANDItoCCR, &Instruction{"andi", (*CPU).opANDItoCCR})
	b.add(OPORItoCCR, &Instruction{"ori", (*CPU).opORItoCCR})
	b.add(OPEORItoCCR, &Instruction{"eori", (*CPU).opEORItoCCR})
	b.add(OPANDItoSR, &Instruction{"andi", (*CPU).opANDItoSR})
	b.add(OPORItoSR, &Instruction{"ori", (*CPU).opORItoSR})
	b.add(OPEORItoSR, &Instruction{"eori", (*CPU).opEORItoSR})

	fromSR := &Instruction{"move", (*CPU).opMOVEFromSR}
	eachEA(eaDataAlterable, func(ea uint16) { b.add(OPMOVEFromSR|ea, fromSR) })
	toCCR := &Instruction{"move", (*CPU).opMOVEToCCR}
	eachEA(eaData, func(ea uint16) { b.add(OPMOVEToCCR|ea, toCCR) })
	toSR := &Instruction{"move", (*CPU).opMOVEToSR}
	eachEA(eaData, func(ea uint16) { b.add(OPMOVEToSR|ea, toSR) })

	usp := &Instruction{"move", (*CPU).opMOVEUSP}
	for an := uint16(0); an < 8; an++ {
		b.add(OPMOVEToUSP|an, usp)
		b.add(OPMOVEFromUSP|an, usp)
	}
}
