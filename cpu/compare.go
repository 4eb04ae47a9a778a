package cpu

import "fmt"

// opCMP compares Dn with <ea>.
func (c *CPU) opCMP(opcode uint16) error {
	size := sizeFromBits(opcode >> 6)
	src, err := c.readEA(opcode, size)
	if err != nil {
		return fmt.Errorf("CMP failed to get source operand: %w", err)
	}
	c.compare(src, c.D[(opcode>>9)&7], size)
	return nil
}

// opCMPA compares An with a sign-extended source, always as a long.
func (c *CPU) opCMPA(opcode uint16) error {
	src, err := c.addressSource(opcode)
	if err != nil {
		return fmt.Errorf("CMPA failed to get source operand: %w", err)
	}
	c.compare(src, c.A[(opcode>>9)&7], SizeLong)
	return nil
}

// opCMPI compares <ea> with an immediate.
func (c *CPU) opCMPI(opcode uint16) error {
	size := sizeFromBits(opcode >> 6)
	imm := c.fetchImmediate(size)
	dst, err := c.readEA(opcode, size)
	if err != nil {
		return fmt.Errorf("CMPI failed to get destination operand: %w", err)
	}
	c.compare(imm, dst, size)
	return nil
}

// opCMPM compares (Ay)+ with (Ax)+.
func (c *CPU) opCMPM(opcode uint16) error {
	size := sizeFromBits(opcode >> 6)
	src, err := c.resolve(ModeAddrPostInc, opcode&7, size)
	if err != nil {
		return fmt.Errorf("CMPM failed to resolve source: %w", err)
	}
	s, err := src.read(c)
	if err != nil {
		return fmt.Errorf("CMPM failed to get source operand: %w", err)
	}
	dst, err := c.resolve(ModeAddrPostInc, (opcode>>9)&7, size)
	if err != nil {
		return fmt.Errorf("CMPM failed to resolve destination: %w", err)
	}
	d, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("CMPM failed to get destination operand: %w", err)
	}
	c.compare(s, d, size)
	return nil
}

// opTST tests an operand against zero.
func (c *CPU) opTST(opcode uint16) error {
	size := sizeFromBits(opcode >> 6)
	v, err := c.readEA(opcode, size)
	if err != nil {
		return fmt.Errorf("TST failed to get operand: %w", err)
	}
	c.setLogicFlags(v, size)
	return nil
}

// opCHK traps through the CHK vector if the low word of Dn is negative or
// greater than the bound. N reports which side was violated.
func (c *CPU) opCHK(opcode uint16) error {
	src, err := c.readEA(opcode, SizeWord)
	if err != nil {
		return fmt.Errorf("CHK failed to get bound operand: %w", err)
	}
	bound := int16(src)
	v := int16(c.D[(opcode>>9)&7])

	c.sr &^= SRZ | SRV | SRC
	c.setFlag(SRZ, v == 0)
	switch {
	case v < 0:
		c.sr |= SRN
		return c.exception(VecCHK)
	case v > bound:
		c.sr &^= SRN
		return c.exception(VecCHK)
	}
	return nil
}

func registerCompare(b *builder) {
	for sz := uint16(0); sz < 3; sz++ {
		size := sizeFromBits(sz)
		cmp := &Instruction{sized("cmp", size), (*CPU).opCMP}
		cmpm := &Instruction{sized("cmpm", size), (*CPU).opCMPM}
		src := eaAll
		if size == SizeByte {
			src = eaData
		}
		for r := uint16(0); r < 8; r++ {
			eachEA(src, func(ea uint16) { b.add(OPCMP|r<<9|sz<<6|ea, cmp) })
			for ay := uint16(0); ay < 8; ay++ {
				b.add(OPCMPM|r<<9|sz<<6|ay, cmpm)
			}
		}

		cmpi := &Instruction{sized("cmpi", size), (*CPU).opCMPI}
		tst := &Instruction{sized("tst", size), (*CPU).opTST}
		eachEA(eaDataAlterable, func(ea uint16) {
			b.add(OPCMPI|sz<<6|ea, cmpi)
			b.add(OPTST|sz<<6|ea, tst)
		})
	}

	for _, long := range []uint16{0, 1} {
		size := SizeWord
		if long == 1 {
			size = SizeLong
		}
		cmpa := &Instruction{sized("cmpa", size), (*CPU).opCMPA}
		for an := uint16(0); an < 8; an++ {
			eachEA(eaAll, func(ea uint16) { b.add(OPCMPA|an<<9|long<<8|ea, cmpa) })
		}
	}

	chk := &Instruction{"chk", (*CPU).opCHK}
	for dn := uint16(0); dn < 8; dn++ {
		eachEA(eaData, func(ea uint16) { b.add(OPCHK|dn<<9|ea, chk) })
	}
}
