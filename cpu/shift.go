package cpu

import "fmt"

// Shift and rotate kinds, as encoded in bits 4-3 of the register form
// and bits 10-9 of the memory form.
const (
	shiftArith = iota
	shiftLogical
	rotateExtend
	rotate
)

var shiftNames = [4][2]string{
	{"asr", "asl"},
	{"lsr", "lsl"},
	{"roxr", "roxl"},
	{"ror", "rol"},
}

// shift moves v by count bit positions one at a time and sets the flags.
// A zero count clears C (ROX copies X into it) and leaves X alone.
// ASL sets V if the sign bit changes at any step.
func (c *CPU) shift(kind int, left bool, v, count uint32, size Size) uint32 {
	mask, msb := size.Mask(), size.SignBit()
	v &= mask
	x := c.sr&SRX != 0
	var carry, overflow bool

	for i := uint32(0); i < count; i++ {
		var out bool
		if left {
			out = v&msb != 0
			v = (v << 1) & mask
		} else {
			out = v&1 != 0
			sign := v & msb
			v >>= 1
			if kind == shiftArith {
				v |= sign
			}
		}

		switch kind {
		case shiftArith:
			if left && (v&msb != 0) != out {
				overflow = true
			}
			x = out
		case shiftLogical:
			x = out
		case rotateExtend:
			if x {
				if left {
					v |= 1
				} else {
					v |= msb
				}
			}
			x = out
		case rotate:
			if out {
				if left {
					v |= 1
				} else {
					v |= msb
				}
			}
		}
		carry = out
	}

	c.sr &^= SRN | SRZ | SRV | SRC
	switch {
	case count == 0:
		if kind == rotateExtend {
			c.setFlag(SRC, c.sr&SRX != 0)
		}
	case kind == rotate:
		c.setFlag(SRC, carry)
	default:
		c.setFlag(SRC, carry)
		c.setFlag(SRX, x)
	}
	c.setFlag(SRV, overflow)
	c.setNZ(v, size)
	return v
}

// opShiftReg shifts a data register. The count is either bits 11-9
// (0 meaning 8) or, with bit 5 set, the register they name modulo 64.
func (c *CPU) opShiftReg(opcode uint16) error {
	size := sizeFromBits(opcode >> 6)
	kind := int(opcode>>3) & 3
	left := opcode&0x100 != 0
	count := uint32((opcode >> 9) & 7)
	if opcode&0x20 != 0 {
		count = c.D[count] % 64
	} else if count == 0 {
		count = 8
	}

	dn := opcode & 7
	c.setD(dn, c.shift(kind, left, c.D[dn], count, size), size)
	return nil
}

// opShiftMem shifts a memory word by one bit.
func (c *CPU) opShiftMem(opcode uint16) error {
	kind := int(opcode>>9) & 3
	left := opcode&0x100 != 0

	dst, err := c.resolveEA(opcode, SizeWord)
	if err != nil {
		return fmt.Errorf("%s failed to resolve destination: %w", shiftNames[kind][boolIndex(left)], err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", shiftNames[kind][boolIndex(left)], err)
	}
	return dst.write(c, c.shift(kind, left, v, 1, SizeWord))
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

func registerShift(b *builder) {
	for kind := uint16(0); kind < 4; kind++ {
		for dir := uint16(0); dir < 2; dir++ {
			name := shiftNames[kind][dir]
			for sz := uint16(0); sz < 3; sz++ {
				inst := &Instruction{sized(name, sizeFromBits(sz)), (*CPU).opShiftReg}
				for cnt := uint16(0); cnt < 8; cnt++ {
					for ir := uint16(0); ir < 2; ir++ {
						for reg := uint16(0); reg < 8; reg++ {
							b.add(OPShiftReg|cnt<<9|dir<<8|sz<<6|ir<<5|kind<<3|reg, inst)
						}
					}
				}
			}

			mem := &Instruction{sized(name, SizeWord), (*CPU).opShiftMem}
			eachEA(eaMemAlterable, func(ea uint16) { b.add(OPShiftMem|kind<<9|dir<<8|ea, mem) })
		}
	}
}
