package cpu

import "fmt"

// aluOp computes dst op src for size and sets the condition codes.
type aluOp func(c *CPU, src, dst uint32, size Size) uint32

// opADD handles ADD <ea>,Dn and ADD Dn,<ea>.
func (c *CPU) opADD(opcode uint16) error {
	return c.arith(opcode, "ADD", (*CPU).add)
}

// opSUB handles SUB <ea>,Dn and SUB Dn,<ea>.
func (c *CPU) opSUB(opcode uint16) error {
	return c.arith(opcode, "SUB", (*CPU).sub)
}

// arith runs a two-operand data register instruction.
// Bit 8 selects the direction: clear for Dn = Dn op <ea>, set for <ea> = <ea> op Dn.
func (c *CPU) arith(opcode uint16, name string, op aluOp) error {
	size := sizeFromBits(opcode >> 6)
	dn := (opcode >> 9) & 7

	ea, err := c.resolveEA(opcode, size)
	if err != nil {
		return fmt.Errorf("%s failed to resolve operand: %w", name, err)
	}
	v, err := ea.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get operand: %w", name, err)
	}

	if opcode&0x100 == 0 {
		c.setD(dn, op(c, v, c.D[dn], size), size)
		return nil
	}

	if err = ea.write(c, op(c, c.D[dn], v, size)); err != nil {
		return fmt.Errorf("%s failed to put result: %w", name, err)
	}
	return nil
}

// opADDA adds to an address register. Word sources are sign-extended and
// condition codes are unaffected.
func (c *CPU) opADDA(opcode uint16) error {
	v, err := c.addressSource(opcode)
	if err != nil {
		return fmt.Errorf("ADDA failed to get source operand: %w", err)
	}
	c.A[(opcode>>9)&7] += v
	return nil
}

// opSUBA subtracts from an address register.
func (c *CPU) opSUBA(opcode uint16) error {
	v, err := c.addressSource(opcode)
	if err != nil {
		return fmt.Errorf("SUBA failed to get source operand: %w", err)
	}
	c.A[(opcode>>9)&7] -= v
	return nil
}

// addressSource reads the source of ADDA, SUBA and CMPA, where bit 8
// selects long and word sources are sign-extended.
func (c *CPU) addressSource(opcode uint16) (uint32, error) {
	size := SizeWord
	if opcode&0x100 != 0 {
		size = SizeLong
	}
	v, err := c.readEA(opcode, size)
	if err != nil {
		return 0, err
	}
	return signExtend(v, size), nil
}

// opADDI handles ADDI #<data>,<ea>.
func (c *CPU) opADDI(opcode uint16) error {
	return c.immediate(opcode, "ADDI", (*CPU).add)
}

// opSUBI handles SUBI #<data>,<ea>.
func (c *CPU) opSUBI(opcode uint16) error {
	return c.immediate(opcode, "SUBI", (*CPU).sub)
}

// immediate runs an instruction whose source is an immediate that
// precedes the destination's extension words.
func (c *CPU) immediate(opcode uint16, name string, op aluOp) error {
	size := sizeFromBits(opcode >> 6)
	imm := c.fetchImmediate(size)

	dst, err := c.resolveEA(opcode, size)
	if err != nil {
		return fmt.Errorf("%s failed to resolve destination: %w", name, err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", name, err)
	}
	if err = dst.write(c, op(c, imm, v, size)); err != nil {
		return fmt.Errorf("%s failed to put result: %w", name, err)
	}
	return nil
}

// opADDQ handles the ADDQ (Add Quick) instruction.
// Format: 0101 <data> 0 <size> <ea>
func (c *CPU) opADDQ(opcode uint16) error {
	return c.quick(opcode, "ADDQ", (*CPU).add)
}

// opSUBQ handles the SUBQ (Subtract Quick) instruction.
// Format: 0101 <data> 1 <size> <ea>
func (c *CPU) opSUBQ(opcode uint16) error {
	return c.quick(opcode, "SUBQ", (*CPU).sub)
}

// quick runs ADDQ or SUBQ. A data field of 0 means 8. On an address
// register the whole register changes and the flags are left alone.
func (c *CPU) quick(opcode uint16, name string, op aluOp) error {
	data := uint32((opcode >> 9) & 7)
	if data == 0 {
		data = 8
	}

	if (opcode>>3)&7 == ModeAddr {
		an := opcode & 7
		if opcode&0x100 == 0 {
			c.A[an] += data
		} else {
			c.A[an] -= data
		}
		return nil
	}

	size := sizeFromBits(opcode >> 6)
	dst, err := c.resolveEA(opcode, size)
	if err != nil {
		return fmt.Errorf("%s failed to resolve destination: %w", name, err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", name, err)
	}
	if err = dst.write(c, op(c, data, v, size)); err != nil {
		return fmt.Errorf("%s failed to put result: %w", name, err)
	}
	return nil
}

// opADDX handles ADDX Dy,Dx and ADDX -(Ay),-(Ax).
func (c *CPU) opADDX(opcode uint16) error {
	return c.extended(opcode, "ADDX", (*CPU).addx)
}

// opSUBX handles SUBX Dy,Dx and SUBX -(Ay),-(Ax).
func (c *CPU) opSUBX(opcode uint16) error {
	return c.extended(opcode, "SUBX", (*CPU).subx)
}

// extended runs a register-to-register or predecrement memory-to-memory
// instruction; bit 3 selects the memory form.
func (c *CPU) extended(opcode uint16, name string, op aluOp) error {
	size := sizeFromBits(opcode >> 6)
	rx, ry := (opcode>>9)&7, opcode&7

	if opcode&0x8 == 0 {
		c.setD(rx, op(c, c.D[ry], c.D[rx], size), size)
		return nil
	}

	src, err := c.resolve(ModeAddrPreDec, ry, size)
	if err != nil {
		return fmt.Errorf("%s failed to resolve source: %w", name, err)
	}
	s, err := src.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get source operand: %w", name, err)
	}
	dst, err := c.resolve(ModeAddrPreDec, rx, size)
	if err != nil {
		return fmt.Errorf("%s failed to resolve destination: %w", name, err)
	}
	d, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", name, err)
	}
	return dst.write(c, op(c, s, d, size))
}

// opNEG negates the destination, 0 - <ea>.
func (c *CPU) opNEG(opcode uint16) error {
	return c.negate(opcode, "NEG", (*CPU).sub)
}

// opNEGX negates with extend, 0 - <ea> - X.
func (c *CPU) opNEGX(opcode uint16) error {
	return c.negate(opcode, "NEGX", (*CPU).subx)
}

func (c *CPU) negate(opcode uint16, name string, op aluOp) error {
	size := sizeFromBits(opcode >> 6)
	dst, err := c.resolveEA(opcode, size)
	if err != nil {
		return fmt.Errorf("%s failed to resolve destination: %w", name, err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", name, err)
	}
	if err = dst.write(c, op(c, v, 0, size)); err != nil {
		return fmt.Errorf("%s failed to put result: %w", name, err)
	}
	return nil
}

// opCLR clears the destination.
func (c *CPU) opCLR(opcode uint16) error {
	size := sizeFromBits(opcode >> 6)
	dst, err := c.resolveEA(opcode, size)
	if err != nil {
		return fmt.Errorf("CLR failed to resolve destination: %w", err)
	}
	if err = dst.write(c, 0); err != nil {
		return fmt.Errorf("CLR failed to put result: %w", err)
	}
	c.setLogicFlags(0, size)
	return nil
}

// opEXT sign-extends a byte to a word (EXT.W) or a word to a long (EXT.L).
func (c *CPU) opEXT(opcode uint16) error {
	dn := opcode & 7
	if opcode&0x40 == 0 {
		v := signExtend(c.D[dn], SizeByte)
		c.setD(dn, v, SizeWord)
		c.setLogicFlags(v, SizeWord)
		return nil
	}
	c.D[dn] = signExtend(c.D[dn], SizeWord)
	c.setLogicFlags(c.D[dn], SizeLong)
	return nil
}

// opMULU multiplies two unsigned words into a long.
func (c *CPU) opMULU(opcode uint16) error {
	src, err := c.readEA(opcode, SizeWord)
	if err != nil {
		return fmt.Errorf("MULU failed to get source operand: %w", err)
	}
	dn := (opcode >> 9) & 7
	c.D[dn] = (c.D[dn] & 0xFFFF) * src
	c.setLogicFlags(c.D[dn], SizeLong)
	return nil
}

// opMULS multiplies two signed words into a long.
func (c *CPU) opMULS(opcode uint16) error {
	src, err := c.readEA(opcode, SizeWord)
	if err != nil {
		return fmt.Errorf("MULS failed to get source operand: %w", err)
	}
	dn := (opcode >> 9) & 7
	c.D[dn] = uint32(int32(int16(c.D[dn])) * int32(int16(src)))
	c.setLogicFlags(c.D[dn], SizeLong)
	return nil
}

// opDIVU divides a long by an unsigned word, leaving the remainder in the
// high word and the quotient in the low word. On overflow V is set and
// the register is left alone.
func (c *CPU) opDIVU(opcode uint16) error {
	divisor, err := c.readEA(opcode, SizeWord)
	if err != nil {
		return fmt.Errorf("DIVU failed to get source operand: %w", err)
	}
	if divisor == 0 {
		c.sr &^= SRC
		return c.exception(VecZeroDivide)
	}

	dn := (opcode >> 9) & 7
	quotient := c.D[dn] / divisor
	remainder := c.D[dn] % divisor
	if quotient > 0xFFFF {
		c.sr = c.sr&^SRC | SRV
		return nil
	}
	c.D[dn] = remainder<<16 | quotient
	c.setLogicFlags(quotient, SizeWord)
	return nil
}

// opDIVS divides a signed long by a signed word. The remainder takes the
// sign of the dividend.
func (c *CPU) opDIVS(opcode uint16) error {
	src, err := c.readEA(opcode, SizeWord)
	if err != nil {
		return fmt.Errorf("DIVS failed to get source operand: %w", err)
	}
	divisor := int64(int16(src))
	if divisor == 0 {
		c.sr &^= SRC
		return c.exception(VecZeroDivide)
	}

	dn := (opcode >> 9) & 7
	dividend := int64(int32(c.D[dn]))
	quotient := dividend / divisor
	remainder := dividend % divisor
	if quotient > 32767 || quotient < -32768 {
		c.sr = c.sr&^SRC | SRV
		return nil
	}
	c.D[dn] = uint32(remainder)<<16 | uint32(quotient)&0xFFFF
	c.setLogicFlags(uint32(quotient), SizeWord)
	return nil
}

// registerAddSub registers the ADD or SUB family rooted at base (0xD000 or 0x9000).
func registerAddSub(b *builder, base uint16, name string, op, opA, opX Handler) {
	for sz := uint16(0); sz < 3; sz++ {
		size := sizeFromBits(sz)
		inst := &Instruction{sized(name, size), op}
		x := &Instruction{sized(name+"x", size), opX}

		src := eaAll
		if size == SizeByte {
			src = eaData
		}
		for r := uint16(0); r < 8; r++ {
			eachEA(src, func(ea uint16) { b.add(base|r<<9|sz<<6|ea, inst) })
			eachEA(eaMemAlterable, func(ea uint16) { b.add(base|r<<9|0x100|sz<<6|ea, inst) })
			for ry := uint16(0); ry < 8; ry++ {
				b.add(base|0x100|r<<9|sz<<6|ry, x)
				b.add(base|0x100|r<<9|sz<<6|0x8|ry, x)
			}
		}
	}

	for _, long := range []uint16{0, 1} {
		size := SizeWord
		if long == 1 {
			size = SizeLong
		}
		a := &Instruction{sized(name+"a", size), opA}
		for an := uint16(0); an < 8; an++ {
			eachEA(eaAll, func(ea uint16) { b.add(base|an<<9|long<<8|0xC0|ea, a) })
		}
	}
}

func registerArithmetic(b *builder) {
	registerAddSub(b, OPADD, "add", (*CPU).opADD, (*CPU).opADDA, (*CPU).opADDX)
	registerAddSub(b, OPSUB, "sub", (*CPU).opSUB, (*CPU).opSUBA, (*CPU).opSUBX)

	for sz := uint16(0); sz < 3; sz++ {
		size := sizeFromBits(sz)
		addi := &Instruction{sized("addi", size), (*CPU).opADDI}
		subi := &Instruction{sized("subi", size), (*CPU).opSUBI}
		neg := &Instruction{sized("neg", size), (*CPU).opNEG}
		negx := &Instruction{sized("negx", size), (*CPU).opNEGX}
		clr := &Instruction{sized("clr", size), (*CPU).opCLR}
		eachEA(eaDataAlterable, func(ea uint16) {
			b.add(OPADDI|sz<<6|ea, addi)
			b.add(OPSUBI|sz<<6|ea, subi)
			b.add(OPNEG|sz<<6|ea, neg)
			b.add(OPNEGX|sz<<6|ea, negx)
			b.add(OPCLR|sz<<6|ea, clr)
		})

		addq := &Instruction{sized("addq", size), (*CPU).opADDQ}
		subq := &Instruction{sized("subq", size), (*CPU).opSUBQ}
		dst := eaAlterable
		if size == SizeByte {
			dst = eaDataAlterable
		}
		for data := uint16(0); data < 8; data++ {
			eachEA(dst, func(ea uint16) {
				b.add(OPADDQ|data<<9|sz<<6|ea, addq)
				b.add(OPSUBQ|data<<9|sz<<6|ea, subq)
			})
		}
	}

	extw := &Instruction{"ext.w", (*CPU).opEXT}
	extl := &Instruction{"ext.l", (*CPU).opEXT}
	for dn := uint16(0); dn < 8; dn++ {
		b.add(OPEXTW|dn, extw)
		b.add(OPEXTL|dn, extl)
	}
}

func registerMultiply(b *builder) {
	mulu := &Instruction{"mulu", (*CPU).opMULU}
	muls := &Instruction{"muls", (*CPU).opMULS}
	divu := &Instruction{"divu", (*CPU).opDIVU}
	divs := &Instruction{"divs", (*CPU).opDIVS}
	for dn := uint16(0); dn < 8; dn++ {
		eachEA(eaData, func(ea uint16) {
			b.add(OPMULU|dn<<9|ea, mulu)
			b.add(OPMULS|dn<<9|ea, muls)
			b.add(OPDIVU|dn<<9|ea, divu)
			b.add(OPDIVS|dn<<9|ea, divs)
		})
	}
}
