package cpu

import "fmt"

// bcdFlags stores the packed BCD result flags. V reports a bit 7 that the
// decimal correction turned on; Z is only cleared.
func (c *CPU) bcdFlags(uncorrected, result uint32, carry bool) {
	c.sr &^= SRX | SRC | SRV | SRN
	if carry {
		c.sr |= SRX | SRC
	}
	if ^uncorrected&result&0x80 != 0 {
		c.sr |= SRV
	}
	if result&0x80 != 0 {
		c.sr |= SRN
	}
	if result&0xFF != 0 {
		c.sr &^= SRZ
	}
}

// abcd returns dst+src+X in packed BCD.
func (c *CPU) abcd(src, dst uint32, _ Size) uint32 {
	res := src&0x0F + dst&0x0F + c.extend()
	uncorrected := res
	if res > 9 {
		res += 6
	}
	res += src&0xF0 + dst&0xF0
	carry := res > 0x99
	if carry {
		res -= 0xA0
	}
	c.bcdFlags(uncorrected, res, carry)
	return res & 0xFF
}

// sbcd returns dst-src-X in packed BCD.
func (c *CPU) sbcd(src, dst uint32, _ Size) uint32 {
	res := dst&0x0F - src&0x0F - c.extend()
	uncorrected := res
	if res > 9 {
		res -= 6
	}
	res += dst&0xF0 - src&0xF0
	carry := res > 0x99
	if carry {
		res += 0xA0
	}
	res &= 0xFF
	c.bcdFlags(uncorrected, res, carry)
	return res
}

// opABCD handles ABCD Dy,Dx and ABCD -(Ay),-(Ax).
func (c *CPU) opABCD(opcode uint16) error {
	return c.extended(opcode&^0xC0, "ABCD", (*CPU).abcd)
}

// opSBCD handles SBCD Dy,Dx and SBCD -(Ay),-(Ax).
func (c *CPU) opSBCD(opcode uint16) error {
	return c.extended(opcode&^0xC0, "SBCD", (*CPU).sbcd)
}

// opNBCD negates a packed BCD byte with extend, 0 - <ea> - X.
func (c *CPU) opNBCD(opcode uint16) error {
	dst, err := c.resolveEA(opcode, SizeByte)
	if err != nil {
		return fmt.Errorf("NBCD failed to resolve destination: %w", err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("NBCD failed to get destination operand: %w", err)
	}

	res := (0x9A - v - c.extend()) & 0xFF
	if res == 0x9A {
		c.sr &^= SRX | SRC | SRV
		c.setFlag(SRN, res&0x80 != 0)
		return nil
	}

	uncorrected := res
	if res&0x0F == 0x0A {
		res = (res&0xF0 + 0x10) & 0xFF
	}
	if err = dst.write(c, res); err != nil {
		return fmt.Errorf("NBCD failed to put result: %w", err)
	}
	c.bcdFlags(uncorrected, res, true)
	return nil
}

func registerBCD(b *builder) {
	abcd := &Instruction{"abcd", (*CPU).opABCD}
	sbcd := &Instruction{"sbcd", (*CPU).opSBCD}
	for rx := uint16(0); rx < 8; rx++ {
		for ry := uint16(0); ry < 8; ry++ {
			for _, rm := range []uint16{0, 0x8} {
				b.add(OPABCD|rx<<9|rm|ry, abcd)
				b.add(OPSBCD|rx<<9|rm|ry, sbcd)
			}
		}
	}

	nbcd := &Instruction{"nbcd", (*CPU).opNBCD}
	eachEA(eaDataAlterable, func(ea uint16) { b.add(OPNBCD|ea, nbcd) })
}
