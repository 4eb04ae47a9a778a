// Package memory provides flat RAM for the 68000's 24-bit address bus.
package memory

import (
	"encoding/binary"
	"fmt"
)

// AddressSpace is the size of the 68000's 24-bit address space.
const AddressSpace = 1 << 24

// RAM is a big-endian byte array mapped from address 0. Reads beyond the
// end return 0 and writes beyond it are dropped.
type RAM struct {
	data []byte
}

// New allocates size bytes of RAM. Size is clamped to the address space.
func New(size int) (*RAM, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memory size must be positive, got %d", size)
	}
	if size > AddressSpace {
		size = AddressSpace
	}
	return &RAM{data: make([]byte, size)}, nil
}

// Size returns the number of bytes of RAM.
func (r *RAM) Size() int {
	return len(r.data)
}

// Read returns the byte at addr.
func (r *RAM) Read(addr uint32) uint8 {
	if int(addr) >= len(r.data) {
		return 0
	}
	return r.data[addr]
}

// Write stores v at addr.
func (r *RAM) Write(addr uint32, v uint8) {
	if int(addr) >= len(r.data) {
		return
	}
	r.data[addr] = v
}

// Vector returns the long stored in the exception vector table for vector n.
func (r *RAM) Vector(n uint8) uint32 {
	return r.ReadU32(uint32(n) * 4)
}

// SetVector stores addr in the exception vector table for vector n.
func (r *RAM) SetVector(n uint8, addr uint32) {
	r.WriteU32(uint32(n)*4, addr)
}

// Load copies b into RAM starting at addr.
func (r *RAM) Load(addr uint32, b []byte) error {
	end := uint64(addr) + uint64(len(b))
	if end > uint64(len(r.data)) {
		return fmt.Errorf("load of %d bytes at %06X overruns %d bytes of memory", len(b), addr, len(r.data))
	}
	copy(r.data[addr:], b)
	return nil
}

// ReadU16 reads a big-endian 16-bit word at the given address.
func (r *RAM) ReadU16(addr uint32) uint16 {
	if uint64(addr)+2 > uint64(len(r.data)) {
		return 0
	}
	return binary.BigEndian.Uint16(r.data[addr:])
}

// WriteU16 writes a 16-bit word at the given address in big-endian format.
func (r *RAM) WriteU16(addr uint32, v uint16) {
	if uint64(addr)+2 > uint64(len(r.data)) {
		return
	}
	binary.BigEndian.PutUint16(r.data[addr:], v)
}

// ReadU32 reads a big-endian 32-bit long word at the given address.
func (r *RAM) ReadU32(addr uint32) uint32 {
	if uint64(addr)+4 > uint64(len(r.data)) {
		return 0
	}
	return binary.BigEndian.Uint32(r.data[addr:])
}

// WriteU32 writes a 32-bit long word at the given address in big-endian format.
func (r *RAM) WriteU32(addr uint32, v uint32) {
	if uint64(addr)+4 > uint64(len(r.data)) {
		return
	}
	binary.BigEndian.PutUint32(r.data[addr:], v)
}
