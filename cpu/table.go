package cpu

import (
	"fmt"
	"sync"
)

// Handler executes one instruction. It is called with PC already past the
// opcode word.
type Handler func(c *CPU, opcode uint16) error

// Instruction is a dispatch table entry.
type Instruction struct {
	Mnemonic string
	Exec     Handler
}

// Table maps every 16-bit opcode to the instruction that executes it.
// Unmapped entries are nil.
type Table struct {
	ops [65536]*Instruction
}

// Add assigns inst to opcode. Each opcode may be assigned only once.
func (t *Table) Add(opcode uint16, inst *Instruction) error {
	if prev := t.ops[opcode]; prev != nil {
		return fmt.Errorf("%w: %04X holds %s, cannot add %s", ErrOpcodeConflict, opcode, prev.Mnemonic, inst.Mnemonic)
	}
	t.ops[opcode] = inst
	return nil
}

// Lookup returns the instruction for opcode, or nil if it is unmapped.
func (t *Table) Lookup(opcode uint16) *Instruction {
	return t.ops[opcode]
}

// Len returns the number of mapped opcodes.
func (t *Table) Len() int {
	n := 0
	for _, inst := range t.ops {
		if inst != nil {
			n++
		}
	}
	return n
}

// Count returns the number of opcodes mapped to mnemonic.
func (t *Table) Count(mnemonic string) int {
	n := 0
	for _, inst := range t.ops {
		if inst != nil && inst.Mnemonic == mnemonic {
			n++
		}
	}
	return n
}

// builder collects the first registration error so the family loops
// can stay free of error plumbing.
type builder struct {
	t   *Table
	err error
}

func (b *builder) add(opcode uint16, inst *Instruction) {
	if b.err != nil {
		return
	}
	b.err = b.t.Add(opcode, inst)
}

// eachEA calls fn with the combined {mode, register} field for every
// addressing mode in mask.
func eachEA(mask eaMask, fn func(ea uint16)) {
	for mode := uint16(0); mode < 8; mode++ {
		for reg := uint16(0); reg < 8; reg++ {
			m, ok := modeOf(mode, reg)
			if !ok || !mask.has(m) {
				continue
			}
			fn(mode<<3 | reg)
		}
	}
}

// sized returns the mnemonic with its size suffix.
func sized(name string, size Size) string {
	return name + "." + size.String()
}

// families registers every instruction group in turn.
var families = []func(*builder){
	registerMove,
	registerMovem,
	registerMoveSpecial,
	registerArithmetic,
	registerMultiply,
	registerCompare,
	registerLogical,
	registerShift,
	registerBits,
	registerBCD,
	registerFlow,
	registerStatus,
	registerSystem,
}

// NewTable builds a complete dispatch table.
func NewTable() (*Table, error) {
	b := &builder{t: &Table{}}
	for _, register := range families {
		register(b)
	}
	if b.err != nil {
		return nil, fmt.Errorf("building opcode table failed: %w", b.err)
	}
	return b.t, nil
}

var shared struct {
	once  sync.Once
	table *Table
	err   error
}

// DefaultTable returns a table shared by every CPU, built on first use.
func DefaultTable() (*Table, error) {
	shared.once.Do(func() {
		shared.table, shared.err = NewTable()
	})
	return shared.table, shared.err
}
