package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnimplemented is returned for an opcode the table recognises whose
	// variant the core does not execute.
	ErrUnimplemented = errors.New("unimplemented instruction variant")
	// ErrUnsupportedAccess is returned when an addressing mode is asked for
	// a capability it does not have, such as writing an immediate.
	ErrUnsupportedAccess = errors.New("unsupported access for this addressing mode")
	// ErrUnsupportedMode is returned for mode encodings outside the 68000 set.
	ErrUnsupportedMode = errors.New("unsupported addressing mode")
	// ErrOpcodeConflict is returned when two handlers claim the same opcode.
	ErrOpcodeConflict = errors.New("opcode already assigned")
	// ErrHalted is returned when the CPU is halted after a double fault.
	ErrHalted = errors.New("cpu halted")
)

// ExecError describes a failed instruction step.
type ExecError struct {
	// PC is the address of the failing instruction.
	PC       uint32
	Opcode   uint16
	Mnemonic string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Mnemonic == "" {
		return fmt.Sprintf("execution failed for opcode %04X at %06X: %v", e.Opcode, e.PC, e.Err)
	}
	return fmt.Sprintf("execution failed for opcode %04X (%s) at %06X: %v", e.Opcode, e.Mnemonic, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
