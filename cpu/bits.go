package cpu

import "fmt"

// Bit operations, as encoded in bits 7-6.
const (
	bitTest = iota
	bitChange
	bitClear
	bitSet
)

var bitNames = [4]string{"btst", "bchg", "bclr", "bset"}

// opBitStatic handles BTST, BCHG, BCLR and BSET with the bit number in
// an extension word ahead of the operand's own.
func (c *CPU) opBitStatic(opcode uint16) error {
	bit := uint32(c.fetchWord() & 0xFF)
	return c.bitOp(opcode, bit)
}

// opBitDynamic handles the forms taking the bit number from Dn.
func (c *CPU) opBitDynamic(opcode uint16) error {
	return c.bitOp(opcode, c.D[(opcode>>9)&7])
}

// bitOp sets Z to the inverse of the selected bit, then changes it.
// Data registers are long operands numbered modulo 32; memory operands
// are bytes numbered modulo 8.
func (c *CPU) bitOp(opcode uint16, bit uint32) error {
	op := int(opcode>>6) & 3
	size := SizeByte
	if (opcode>>3)&7 == ModeData {
		size = SizeLong
	}
	bit %= size.Bits()

	dst, err := c.resolveEA(opcode, size)
	if err != nil {
		return fmt.Errorf("%s failed to resolve operand: %w", bitNames[op], err)
	}
	v, err := dst.read(c)
	if err != nil {
		return fmt.Errorf("%s failed to get operand: %w", bitNames[op], err)
	}

	mask := uint32(1) << bit
	c.setFlag(SRZ, v&mask == 0)
	switch op {
	case bitTest:
		return nil
	case bitChange:
		v ^= mask
	case bitClear:
		v &^= mask
	case bitSet:
		v |= mask
	}
	if err = dst.write(c, v); err != nil {
		return fmt.Errorf("%s failed to put result: %w", bitNames[op], err)
	}
	return nil
}

func registerBits(b *builder) {
	for op := uint16(0); op < 4; op++ {
		static := &Instruction{bitNames[op], (*CPU).opBitStatic}
		dynamic := &Instruction{bitNames[op], (*CPU).opBitDynamic}

		staticModes, dynamicModes := eaDataAlterable, eaDataAlterable
		if op == bitTest {
			staticModes = eaData &^ eaImm
			dynamicModes = eaData
		}

		eachEA(staticModes, func(ea uint16) { b.add(OPBTST|op<<6|ea, static) })
		for dn := uint16(0); dn < 8; dn++ {
			eachEA(dynamicModes, func(ea uint16) { b.add(OPBitDyn|dn<<9|op<<6|ea, dynamic) })
		}
	}
}
