package cpu

// addrMask keeps addresses within the 68000's 24-bit bus.
const addrMask = 0x00FFFFFF

// read composes a big-endian value of the given size from byte reads.
func (c *CPU) read(addr uint32, size Size) uint32 {
	var v uint32
	for i := uint32(0); i < size.Bytes(); i++ {
		v = v<<8 | uint32(c.bus.Read((addr+i)&addrMask))
	}
	return v
}

// write stores the low bits of v for size as big-endian bytes.
func (c *CPU) write(addr uint32, size Size, v uint32) {
	n := size.Bytes()
	for i := uint32(0); i < n; i++ {
		shift := 8 * (n - 1 - i)
		c.bus.Write((addr+i)&addrMask, uint8(v>>shift))
	}
}

// fetchWord reads the word at PC and advances past it.
func (c *CPU) fetchWord() uint16 {
	v := uint16(c.read(c.PC, SizeWord))
	c.PC += 2
	return v
}

// fetchLong reads the long at PC and advances past it.
func (c *CPU) fetchLong() uint32 {
	v := c.read(c.PC, SizeLong)
	c.PC += 4
	return v
}

// fetchImmediate reads an immediate operand of the given size. Byte
// immediates occupy the low half of a full extension word.
func (c *CPU) fetchImmediate(size Size) uint32 {
	switch size {
	case SizeByte:
		return uint32(c.fetchWord()) & 0xFF
	case SizeWord:
		return uint32(c.fetchWord())
	}
	return c.fetchLong()
}

func (c *CPU) pushWord(v uint16) {
	c.A[7] -= 2
	c.write(c.A[7], SizeWord, uint32(v))
}

func (c *CPU) pushLong(v uint32) {
	c.A[7] -= 4
	c.write(c.A[7], SizeLong, v)
}

func (c *CPU) popWord() uint16 {
	v := uint16(c.read(c.A[7], SizeWord))
	c.A[7] += 2
	return v
}

func (c *CPU) popLong() uint32 {
	v := c.read(c.A[7], SizeLong)
	c.A[7] += 4
	return v
}

// setNZ updates the N and Z flags in the SR based on a value and operation size.
func (c *CPU) setNZ(value uint32, size Size) {
	c.sr &^= SRN | SRZ
	if value&size.Mask() == 0 {
		c.sr |= SRZ
	}
	if value&size.SignBit() != 0 {
		c.sr |= SRN
	}
}

// setLogicFlags sets N and Z from value and clears V and C, as every
// move and logical operation does.
func (c *CPU) setLogicFlags(value uint32, size Size) {
	c.sr &^= SRV | SRC
	c.setNZ(value, size)
}

// add returns dst+src for size and sets X, N, Z, V and C.
func (c *CPU) add(src, dst uint32, size Size) uint32 {
	mask, sign := size.Mask(), size.SignBit()
	src &= mask
	dst &= mask
	result := (src + dst) & mask

	c.sr &^= ccrMask
	if uint64(src)+uint64(dst) > uint64(mask) {
		c.sr |= SRC | SRX
	}
	if ^(src^dst)&(src^result)&sign != 0 {
		c.sr |= SRV
	}
	c.setNZ(result, size)
	return result
}

// sub returns dst-src for size and sets X, N, Z, V and C.
func (c *CPU) sub(src, dst uint32, size Size) uint32 {
	result := c.compare(src, dst, size)
	c.sr &^= SRX
	if c.sr&SRC != 0 {
		c.sr |= SRX
	}
	return result
}

// compare returns dst-src for size and sets N, Z, V and C, leaving X alone.
func (c *CPU) compare(src, dst uint32, size Size) uint32 {
	mask, sign := size.Mask(), size.SignBit()
	src &= mask
	dst &= mask
	result := (dst - src) & mask

	c.sr &^= SRN | SRZ | SRV | SRC
	if src > dst {
		c.sr |= SRC
	}
	if (src^dst)&(dst^result)&sign != 0 {
		c.sr |= SRV
	}
	c.setNZ(result, size)
	return result
}

// addx returns dst+src+X. Z is only ever cleared, so multi-precision
// chains report zero across all their parts.
func (c *CPU) addx(src, dst uint32, size Size) uint32 {
	mask, sign := size.Mask(), size.SignBit()
	src &= mask
	dst &= mask
	result := (src + dst + c.extend()) & mask

	carry := uint64(src)+uint64(dst)+uint64(c.extend()) > uint64(mask)
	c.sr &^= SRX | SRN | SRV | SRC
	if carry {
		c.sr |= SRX | SRC
	}
	if ^(src^dst)&(src^result)&sign != 0 {
		c.sr |= SRV
	}
	c.extendedNZ(result, size)
	return result
}

// subx returns dst-src-X with the same Z rule as addx.
func (c *CPU) subx(src, dst uint32, size Size) uint32 {
	mask, sign := size.Mask(), size.SignBit()
	src &= mask
	dst &= mask
	x := c.extend()
	result := (dst - src - x) & mask

	borrow := uint64(src)+uint64(x) > uint64(dst)
	c.sr &^= SRX | SRN | SRV | SRC
	if borrow {
		c.sr |= SRX | SRC
	}
	if (src^dst)&(dst^result)&sign != 0 {
		c.sr |= SRV
	}
	c.extendedNZ(result, size)
	return result
}

// extendedNZ sets N from value and clears Z if value is non-zero.
func (c *CPU) extendedNZ(value uint32, size Size) {
	c.sr &^= SRN
	if value&size.SignBit() != 0 {
		c.sr |= SRN
	}
	if value&size.Mask() != 0 {
		c.sr &^= SRZ
	}
}
