package cpu

import "fmt"

func (c *CPU) and(src, dst uint32, size Size) uint32 {
	r := (src & dst) & size.Mask()
	c.setLogicFlags(r, size)
	return r
}

func (c *CPU) or(src, dst uint32, size Size) uint32 {
	r := (src | dst) & size.Mask()
	c.setLogicFlags(r, size)
	return r
}

func (c *CPU) eor(src, dst uint32, size Size) uint32 {
	r := (src ^ dst) & size.Mask()
	c.setLogicFlags(r, size)
	return r
}

// opAND handles AND <ea>,Dn and AND Dn,<ea>.
func (c *CPU) opAND(opcode uint16) error {
	return c.arith(opcode, "AND", (*CPU).and)
}

// opOR handles OR <ea>,Dn and OR Dn,<ea>.
func (c *CPU) opOR(opcode uint16) error {
	return c.arith(opcode, "OR", (*CPU).or)
}

// opEOR handles EOR Dn,<ea>. It shares the direction bit layout of
// AND and OR with bit 8 always set.
func (c *CPU) opEOR(opcode uint16) error {
	return c.arith(opcode, "EOR", (*CPU).eor)
}

// opANDI handles ANDI #<data>,<ea>.
func (c *CPU) opANDI(opcode uint16) error {
	return c.immediate(opcode, "ANDI", (*CPU).and)
}

// opORI handles ORI #<data>,<ea>.
func (c *CPU) opORI(opcode uint16) error {
	return c.immediate(opcode, "ORI", (*CPU).or)
}

// opEORI handles EORI #<data>,<ea>.
func (c *CPU) opEORI(opcode uint16) error {
	return c.immediate(opcode, "EORI", (*CPU).eor)
}

// opNOT complements the destination.
func (c *CPU) opNOT(opcode uint16) error {
	size := sizeFromBits(opcode >> 6)
	dst, err := c.resolveEA(opcode, size)
	if err != nil {
		return fmt.Errorf("NOT failed to resolve destination: %w", err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("NOT failed to get destination operand: %w", err)
	}
	r := ^v & size.Mask()
	if err = dst.write(c, r); err != nil {
		return fmt.Errorf("NOT failed to put result: %w", err)
	}
	c.setLogicFlags(r, size)
	return nil
}

// opTAS tests a byte and sets its high bit.
func (c *CPU) opTAS(opcode uint16) error {
	dst, err := c.resolveEA(opcode, SizeByte)
	if err != nil {
		return fmt.Errorf("TAS failed to resolve destination: %w", err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("TAS failed to get destination operand: %w", err)
	}
	c.setLogicFlags(v, SizeByte)
	if err = dst.write(c, v|0x80); err != nil {
		return fmt.Errorf("TAS failed to put result: %w", err)
	}
	return nil
}

func registerLogical(b *builder) {
	for sz := uint16(0); sz < 3; sz++ {
		size := sizeFromBits(sz)
		and := &Instruction{sized("and", size), (*CPU).opAND}
		or := &Instruction{sized("or", size), (*CPU).opOR}
		eor := &Instruction{sized("eor", size), (*CPU).opEOR}
		for r := uint16(0); r < 8; r++ {
			eachEA(eaData, func(ea uint16) {
				b.add(OPAND|r<<9|sz<<6|ea, and)
				b.add(OPOR|r<<9|sz<<6|ea, or)
			})
			eachEA(eaMemAlterable, func(ea uint16) {
				b.add(OPAND|0x100|r<<9|sz<<6|ea, and)
				b.add(OPOR|0x100|r<<9|sz<<6|ea, or)
			})
			eachEA(eaDataAlterable, func(ea uint16) { b.add(OPEOR|r<<9|sz<<6|ea, eor) })
		}

		andi := &Instruction{sized("andi", size), (*CPU).opANDI}
		ori := &Instruction{sized("ori", size), (*CPU).opORI}
		eori := &Instruction{sized("eori", size), (*CPU).opEORI}
		not := &Instruction{sized("not", size), (*CPU).opNOT}
		eachEA(eaDataAlterable, func(ea uint16) {
			b.add(OPANDI|sz<<6|ea, andi)
			b.add(OPORI|sz<<6|ea, ori)
			b.add(OPEORI|sz<<6|ea, eori)
			b.add(OPNOT|sz<<6|ea, not)
		})
	}

	tas := &Instruction{"tas", (*CPU).opTAS}
	eachEA(eaDataAlterable, func(ea uint16) { b.add(OPTAS|ea, tas) })
}
