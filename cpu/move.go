package cpu

import "fmt"

// moveSize decodes the size field of MOVE and MOVEA (01 byte, 11 word, 10 long).
func moveSize(opcode uint16) Size {
	switch (opcode >> 12) & 3 {
	case 1:
		return SizeByte
	case 3:
		return SizeWord
	case 2:
		return SizeLong
	}
	return SizeInvalid
}

// opMOVE handles the general MOVE instruction.
func (c *CPU) opMOVE(opcode uint16) error {
	size := moveSize(opcode)
	value, err := c.readEA(opcode, size)
	if err != nil {
		return fmt.Errorf("MOVE failed to get source operand: %w", err)
	}

	dst, err := c.resolve((opcode>>6)&7, (opcode>>9)&7, size)
	if err != nil {
		return fmt.Errorf("MOVE failed to resolve destination: %w", err)
	}
	if err = dst.write(c, value); err != nil {
		return fmt.Errorf("MOVE failed to put destination operand: %w", err)
	}

	c.setLogicFlags(value, size)
	return nil
}

// opMOVEA handles the MOVEA (Move Address) instruction.
// Word sources are sign-extended and condition codes are unaffected.
func (c *CPU) opMOVEA(opcode uint16) error {
	size := moveSize(opcode)
	value, err := c.readEA(opcode, size)
	if err != nil {
		return fmt.Errorf("MOVEA failed to get source operand: %w", err)
	}

	c.A[(opcode>>9)&7] = signExtend(value, size)
	return nil
}

// opMOVEQ handles the MOVEQ (Move Quick) instruction.
// Format: 0111 <reg> 0 <8-bit data>
func (c *CPU) opMOVEQ(opcode uint16) error {
	value := signExtend(uint32(opcode), SizeByte)
	c.D[(opcode>>9)&7] = value
	c.setLogicFlags(value, SizeLong)
	return nil
}

// opMOVEP transfers alternate bytes between a data register and memory.
// Format: 0000 <dn> 1 <opmode> 001 <an>, opmode 100/101 load and 110/111 store.
func (c *CPU) opMOVEP(opcode uint16) error {
	dn := (opcode >> 9) & 7
	opmode := (opcode >> 6) & 7
	addr := c.A[opcode&7] + signExtend(uint32(c.fetchWord()), SizeWord)

	n := uint32(2)
	if opmode&1 != 0 {
		n = 4
	}

	if opmode < 6 {
		var v uint32
		for i := uint32(0); i < n; i++ {
			v = v<<8 | c.read(addr+2*i, SizeByte)
		}
		if n == 2 {
			c.setD(dn, v, SizeWord)
		} else {
			c.D[dn] = v
		}
		return nil
	}

	for i := uint32(0); i < n; i++ {
		c.write(addr+2*i, SizeByte, c.D[dn]>>(8*(n-1-i)))
	}
	return nil
}

// opMOVEMToMem stores the registers in the mask word.
// Pre-decrement walks the mask in reverse (A7 down to D0) and stores the
// address register's initial value if it is in the list.
func (c *CPU) opMOVEMToMem(opcode uint16) error {
	mask := c.fetchWord()
	size := SizeWord
	if opcode&0x40 != 0 {
		size = SizeLong
	}

	mode, reg := (opcode>>3)&7, opcode&7
	if mode == ModeAddrPreDec {
		addr := c.A[reg]
		for i := 0; i < 16; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			addr -= size.Bytes()
			c.write(addr, size, c.register(15-i))
		}
		c.A[reg] = addr
		return nil
	}

	dst, err := c.resolve(mode, reg, size)
	if err != nil {
		return fmt.Errorf("MOVEM failed to resolve destination: %w", err)
	}
	addr, err := dst.address()
	if err != nil {
		return fmt.Errorf("MOVEM failed to get destination address: %w", err)
	}
	for i := 0; i < 16; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		c.write(addr, size, c.register(i))
		addr += size.Bytes()
	}
	return nil
}

// opMOVEMToReg loads the registers in the mask word, D0 first.
// Words are sign-extended into the whole register.
func (c *CPU) opMOVEMToReg(opcode uint16) error {
	mask := c.fetchWord()
	size := SizeWord
	if opcode&0x40 != 0 {
		size = SizeLong
	}

	mode, reg := (opcode>>3)&7, opcode&7
	var addr uint32
	if mode == ModeAddrPostInc {
		addr = c.A[reg]
	} else {
		src, err := c.resolve(mode, reg, size)
		if err != nil {
			return fmt.Errorf("MOVEM failed to resolve source: %w", err)
		}
		if addr, err = src.address(); err != nil {
			return fmt.Errorf("MOVEM failed to get source address: %w", err)
		}
	}

	for i := 0; i < 16; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		c.setRegister(i, signExtend(c.read(addr, size), size))
		addr += size.Bytes()
	}
	if mode == ModeAddrPostInc {
		c.A[reg] = addr
	}
	return nil
}

// opLEA loads an effective address into An.
func (c *CPU) opLEA(opcode uint16) error {
	src, err := c.resolveEA(opcode, SizeLong)
	if err != nil {
		return fmt.Errorf("LEA failed to resolve source: %w", err)
	}
	addr, err := src.address()
	if err != nil {
		return fmt.Errorf("LEA failed to get address: %w", err)
	}
	c.A[(opcode>>9)&7] = addr
	return nil
}

// opPEA pushes an effective address.
func (c *CPU) opPEA(opcode uint16) error {
	src, err := c.resolveEA(opcode, SizeLong)
	if err != nil {
		return fmt.Errorf("PEA failed to resolve source: %w", err)
	}
	addr, err := src.address()
	if err != nil {
		return fmt.Errorf("PEA failed to get address: %w", err)
	}
	c.pushLong(addr)
	return nil
}

// opEXG exchanges two registers.
// Opmode 01000 is Dx,Dy; 01001 Ax,Ay; 10001 Dx,Ay.
func (c *CPU) opEXG(opcode uint16) error {
	rx, ry := (opcode>>9)&7, opcode&7
	switch (opcode >> 3) & 0x1F {
	case 0x08:
		c.D[rx], c.D[ry] = c.D[ry], c.D[rx]
	case 0x09:
		c.A[rx], c.A[ry] = c.A[ry], c.A[rx]
	case 0x11:
		c.D[rx], c.A[ry] = c.A[ry], c.D[rx]
	}
	return nil
}

// opSWAP exchanges the halves of a data register.
func (c *CPU) opSWAP(opcode uint16) error {
	dn := opcode & 7
	v := c.D[dn]<<16 | c.D[dn]>>16
	c.D[dn] = v
	c.setLogicFlags(v, SizeLong)
	return nil
}

func registerMove(b *builder) {
	for _, bits := range []uint16{1, 3, 2} {
		size := moveSize(bits << 12)
		move := &Instruction{sized("move", size), (*CPU).opMOVE}
		movea := &Instruction{sized("movea", size), (*CPU).opMOVEA}

		src := eaAll
		if size == SizeByte {
			src = eaData
		}
		eachEA(src, func(s uint16) {
			eachEA(eaDataAlterable, func(d uint16) {
				// The destination field stores register then mode.
				b.add(bits<<12|(d&7)<<9|(d>>3)<<6|s, move)
			})
			if size == SizeByte {
				return
			}
			for an := uint16(0); an < 8; an++ {
				b.add(bits<<12|an<<9|ModeAddr<<6|s, movea)
			}
		})
	}

	moveq := &Instruction{"moveq", (*CPU).opMOVEQ}
	for dn := uint16(0); dn < 8; dn++ {
		for data := uint16(0); data < 256; data++ {
			b.add(OPMOVEQ|dn<<9|data, moveq)
		}
	}
}

func registerMovem(b *builder) {
	for sz, size := range []Size{SizeWord, SizeLong} {
		bit := uint16(sz) << 6
		toMem := &Instruction{sized("movem", size), (*CPU).opMOVEMToMem}
		eachEA(eaControlAlterable|eaDec, func(ea uint16) { b.add(OPMOVEMToMem|bit|ea, toMem) })
		toReg := &Instruction{sized("movem", size), (*CPU).opMOVEMToReg}
		eachEA(eaControl|eaInc, func(ea uint16) { b.add(OPMOVEMToReg|bit|ea, toReg) })
	}
}

func registerMoveSpecial(b *builder) {
	movep := &Instruction{"movep", (*CPU).opMOVEP}
	lea := &Instruction{"lea", (*CPU).opLEA}
	for r := uint16(0); r < 8; r++ {
		for opmode := uint16(4); opmode < 8; opmode++ {
			for an := uint16(0); an < 8; an++ {
				b.add(OPMOVEP|r<<9|opmode<<6|an, movep)
			}
		}
		eachEA(eaControl, func(ea uint16) { b.add(OPLEA|r<<9|ea, lea) })
	}

	pea := &Instruction{"pea", (*CPU).opPEA}
	eachEA(eaControl, func(ea uint16) { b.add(OPPEA|ea, pea) })

	exg := &Instruction{"exg", (*CPU).opEXG}
	swap := &Instruction{"swap", (*CPU).opSWAP}
	for rx := uint16(0); rx < 8; rx++ {
		for ry := uint16(0); ry < 8; ry++ {
			b.add(OPEXG|0x08<<3|rx<<9|ry, exg)
			b.add(OPEXG|0x09<<3|rx<<9|ry, exg)
			b.add(OPEXG|0x11<<3|rx<<9|ry, exg)
		}
		b.add(OPSWAP|rx, swap)
	}
}
