package cpu

import "fmt"

// operand is a resolved effective address. Extension words and register
// side effects are consumed once, by resolve, so an instruction that
// reads and then writes the same operand touches the bus only for the
// accesses it actually performs.
type operand struct {
	mode Mode
	reg  uint16
	size Size
	// addr is the effective address for memory modes.
	addr uint32
	// data holds the value of an immediate.
	data uint32
}

// resolve decodes the {mode, register} field pair of an opcode for an
// access of the given size, fetching any extension words at PC.
func (c *CPU) resolve(mode, reg uint16, size Size) (operand, error) {
	m, ok := modeOf(mode, reg)
	if !ok {
		return operand{}, fmt.Errorf("%w: mode %d register %d", ErrUnsupportedMode, mode, reg)
	}

	o := operand{mode: m, reg: reg, size: size}
	switch m {
	case DataDirect, AddrDirect:
	case Indirect:
		o.addr = c.A[reg]
	case PostInc:
		o.addr = c.A[reg]
		c.A[reg] += step(reg, size)
	case PreDec:
		c.A[reg] -= step(reg, size)
		o.addr = c.A[reg]
	case Displacement:
		o.addr = c.A[reg] + signExtend(uint32(c.fetchWord()), SizeWord)
	case Index:
		addr, err := c.index(c.A[reg])
		if err != nil {
			return operand{}, err
		}
		o.addr = addr
	case AbsShort:
		o.addr = signExtend(uint32(c.fetchWord()), SizeWord)
	case AbsLong:
		o.addr = c.fetchLong()
	case PCDisplacement:
		base := c.PC
		o.addr = base + signExtend(uint32(c.fetchWord()), SizeWord)
	case PCIndex:
		addr, err := c.index(c.PC)
		if err != nil {
			return operand{}, err
		}
		o.addr = addr
	case Immediate:
		if size == SizeInvalid {
			return operand{}, fmt.Errorf("%w: immediate without a size", ErrUnsupportedAccess)
		}
		o.data = c.fetchImmediate(size)
	}
	return o, nil
}

// step is the post-increment and pre-decrement distance. Byte accesses
// through A7 move by two to keep the stack pointer word aligned.
func step(reg uint16, size Size) uint32 {
	if size == SizeByte && reg == 7 {
		return 2
	}
	return size.Bytes()
}

// index decodes a brief extension word and adds it to base:
// bit 15 selects D/A, bits 14-12 the index register, bit 11 long or
// sign-extended word, and the low byte is a signed displacement.
func (c *CPU) index(base uint32) (uint32, error) {
	ext := c.fetchWord()
	if ext&0x0100 != 0 {
		return 0, fmt.Errorf("%w: full extension word %04X", ErrUnsupportedMode, ext)
	}

	reg := (ext >> 12) & 7
	var idx uint32
	if ext&0x8000 != 0 {
		idx = c.A[reg]
	} else {
		idx = c.D[reg]
	}
	if ext&0x0800 == 0 {
		idx = signExtend(idx, SizeWord)
	}
	return base + idx + signExtend(uint32(ext), SizeByte), nil
}

// read returns the operand's value, masked to its size.
func (o operand) read(c *CPU) (uint32, error) {
	switch o.mode {
	case DataDirect:
		return c.D[o.reg] & o.size.Mask(), nil
	case AddrDirect:
		if o.size == SizeByte {
			return 0, fmt.Errorf("%w: byte read of A%d", ErrUnsupportedAccess, o.reg)
		}
		return c.A[o.reg] & o.size.Mask(), nil
	case Immediate:
		return o.data, nil
	}
	return c.read(o.addr, o.size), nil
}

// write stores v through the operand. Data registers keep the bits above
// the size; word writes to address registers are sign-extended.
func (o operand) write(c *CPU, v uint32) error {
	switch o.mode {
	case DataDirect:
		c.setD(o.reg, v, o.size)
	case AddrDirect:
		switch o.size {
		case SizeWord:
			c.A[o.reg] = signExtend(v, SizeWord)
		case SizeLong:
			c.A[o.reg] = v
		default:
			return fmt.Errorf("%w: byte write to A%d", ErrUnsupportedAccess, o.reg)
		}
	case Immediate, PCDisplacement, PCIndex:
		return fmt.Errorf("%w: write to %s", ErrUnsupportedAccess, o.mode)
	default:
		c.write(o.addr, o.size, v)
	}
	return nil
}

// address returns the effective address of a memory operand.
func (o operand) address() (uint32, error) {
	switch o.mode {
	case DataDirect, AddrDirect, Immediate:
		return 0, fmt.Errorf("%w: %s has no address", ErrUnsupportedAccess, o.mode)
	}
	return o.addr, nil
}

// resolveEA resolves the effective address in the low six bits of opcode.
func (c *CPU) resolveEA(opcode uint16, size Size) (operand, error) {
	return c.resolve((opcode>>3)&7, opcode&7, size)
}

// readEA resolves and reads the effective address in the low six bits of opcode.
func (c *CPU) readEA(opcode uint16, size Size) (uint32, error) {
	o, err := c.resolveEA(opcode, size)
	if err != nil {
		return 0, err
	}
	return o.read(c)
}
