package cpu

import "fmt"

// condition evaluates one of the sixteen condition codes against the CCR.
func (c *CPU) condition(cc uint16) bool {
	n, z, v, cy := c.flag(SRN), c.flag(SRZ), c.flag(SRV), c.flag(SRC)
	switch cc & 0xF {
	case 0x0: // T
		return true
	case 0x1: // F
		return false
	case 0x2: // HI
		return !cy && !z
	case 0x3: // LS
		return cy || z
	case 0x4: // CC
		return !cy
	case 0x5: // CS
		return cy
	case 0x6: // NE
		return !z
	case 0x7: // EQ
		return z
	case 0x8: // VC
		return !v
	case 0x9: // VS
		return v
	case 0xA: // PL
		return !n
	case 0xB: // MI
		return n
	case 0xC: // GE
		return n == v
	case 0xD: // LT
		return n != v
	case 0xE: // GT
		return !z && n == v
	}
	// LE
	return z || n != v
}

// branchTarget returns the destination of a Bcc, BRA or BSR. The
// displacement is relative to the word after the opcode; a zero byte
// displacement means a 16-bit one follows.
func (c *CPU) branchTarget(opcode uint16) (uint32, error) {
	base := c.PC
	switch opcode & 0xFF {
	case 0x00:
		return base + signExtend(uint32(c.fetchWord()), SizeWord), nil
	case 0xFF:
		return 0, fmt.Errorf("%w: 32-bit branch displacement", ErrUnimplemented)
	}
	return base + signExtend(uint32(opcode), SizeByte), nil
}

// opBcc handles BRA and the conditional branches.
func (c *CPU) opBcc(opcode uint16) error {
	target, err := c.branchTarget(opcode)
	if err != nil {
		return err
	}
	if c.condition(opcode >> 8) {
		c.PC = target
	}
	return nil
}

// opBSR pushes the address of the next instruction and branches.
func (c *CPU) opBSR(opcode uint16) error {
	target, err := c.branchTarget(opcode)
	if err != nil {
		return err
	}
	c.pushLong(c.PC)
	c.PC = target
	return nil
}

// opDBcc ends the loop when the condition holds or the counter in the low
// word of Dn is already zero; otherwise it decrements and branches.
func (c *CPU) opDBcc(opcode uint16) error {
	base := c.PC
	disp := signExtend(uint32(c.fetchWord()), SizeWord)
	if c.condition(opcode >> 8) {
		return nil
	}

	dn := opcode & 7
	count := c.D[dn] & 0xFFFF
	if count == 0 {
		return nil
	}
	c.setD(dn, count-1, SizeWord)
	c.PC = base + disp
	return nil
}

// opScc sets a byte to all ones if the condition holds, otherwise zero.
func (c *CPU) opScc(opcode uint16) error {
	dst, err := c.resolveEA(opcode, SizeByte)
	if err != nil {
		return fmt.Errorf("Scc failed to resolve destination: %w", err)
	}
	var v uint32
	if c.condition(opcode >> 8) {
		v = 0xFF
	}
	return dst.write(c, v)
}

// opJMP jumps to an effective address.
func (c *CPU) opJMP(opcode uint16) error {
	dst, err := c.resolveEA(opcode, SizeLong)
	if err != nil {
		return fmt.Errorf("JMP failed to resolve target: %w", err)
	}
	addr, err := dst.address()
	if err != nil {
		return fmt.Errorf("JMP failed to get target address: %w", err)
	}
	c.PC = addr
	return nil
}

// opJSR pushes the return address and jumps to an effective address.
func (c *CPU) opJSR(opcode uint16) error {
	dst, err := c.resolveEA(opcode, SizeLong)
	if err != nil {
		return fmt.Errorf("JSR failed to resolve target: %w", err)
	}
	addr, err := dst.address()
	if err != nil {
		return fmt.Errorf("JSR failed to get target address: %w", err)
	}
	c.pushLong(c.PC)
	c.PC = addr
	return nil
}

// opRTS handles the Return from Subroutine instruction.
func (c *CPU) opRTS(opcode uint16) error {
	c.PC = c.popLong()
	return nil
}

// opRTR restores the condition codes, then returns.
func (c *CPU) opRTR(opcode uint16) error {
	c.SetCCR(uint8(c.popWord()))
	c.PC = c.popLong()
	return nil
}

// opRTE restores SR and PC from an exception frame (privileged).
func (c *CPU) opRTE(opcode uint16) error {
	if !c.Supervisor() {
		return c.privilegeViolation()
	}
	sr := c.popWord()
	pc := c.popLong()
	c.SetSR(sr)
	c.PC = pc
	return nil
}

func registerFlow(b *builder) {
	bsr := &Instruction{"bsr", (*CPU).opBSR}
	for cc := uint16(0); cc < 16; cc++ {
		bcc := &Instruction{"b" + conditionNames[cc], (*CPU).opBcc}
		if cc == 0 {
			bcc.Mnemonic = "bra"
		}
		for disp := uint16(0); disp < 256; disp++ {
			if cc == 1 {
				b.add(OPBSR|disp, bsr)
				continue
			}
			b.add(OPBcc|cc<<8|disp, bcc)
		}

		dbcc := &Instruction{"db" + conditionNames[cc], (*CPU).opDBcc}
		scc := &Instruction{"s" + conditionNames[cc], (*CPU).opScc}
		for dn := uint16(0); dn < 8; dn++ {
			b.add(OPDBcc|cc<<8|dn, dbcc)
		}
		eachEA(eaDataAlterable, func(ea uint16) { b.add(OPScc|cc<<8|ea, scc) })
	}

	jmp := &Instruction{"jmp", (*CPU).opJMP}
	jsr := &Instruction{"jsr", (*CPU).opJSR}
	eachEA(eaControl, func(ea uint16) {
		b.add(OPJMP|ea, jmp)
		b.add(OPJSR|ea, jsr)
	})

	b.add(OPRTS, &Instruction{"rts", (*CPU).opRTS})
	b.add(OPRTR, &Instruction{"rtr", (*CPU).opRTR})
	b.add(OPRTE, &Instruction{"rte", (*CPU).opRTE})
}
