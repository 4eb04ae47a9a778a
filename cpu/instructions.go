package cpu

// Size defines the data size for an instruction's operation.
type Size int

const (
	// SizeInvalid is the zero value, used when a size field holds a reserved encoding.
	SizeInvalid Size = iota
	// SizeByte represents 8-bit data size.
	SizeByte
	// SizeWord represents 16-bit data size.
	SizeWord
	// SizeLong represents 32-bit data size.
	SizeLong
)

// Bytes returns the width of the size in bytes.
func (s Size) Bytes() uint32 {
	switch s {
	case SizeByte:
		return 1
	case SizeWord:
		return 2
	case SizeLong:
		return 4
	}
	return 0
}

// Mask returns the largest unsigned value the size can hold.
func (s Size) Mask() uint32 {
	switch s {
	case SizeByte:
		return 0xFF
	case SizeWord:
		return 0xFFFF
	case SizeLong:
		return 0xFFFFFFFF
	}
	return 0
}

// SignBit returns the most significant bit for the size.
func (s Size) SignBit() uint32 {
	switch s {
	case SizeByte:
		return 0x80
	case SizeWord:
		return 0x8000
	case SizeLong:
		return 0x80000000
	}
	return 0
}

// Bits returns the width of the size in bits.
func (s Size) Bits() uint32 {
	return s.Bytes() * 8
}

func (s Size) String() string {
	switch s {
	case SizeByte:
		return "b"
	case SizeWord:
		return "w"
	case SizeLong:
		return "l"
	}
	return "?"
}

// sizeFromBits decodes the common two-bit size field (00 byte, 01 word, 10 long).
func sizeFromBits(bits uint16) Size {
	switch bits & 3 {
	case 0:
		return SizeByte
	case 1:
		return SizeWord
	case 2:
		return SizeLong
	}
	return SizeInvalid
}

// signExtend widens the low bits of v for the given size to a signed 32-bit value.
func signExtend(v uint32, size Size) uint32 {
	switch size {
	case SizeByte:
		return uint32(int32(int8(v)))
	case SizeWord:
		return uint32(int32(int16(v)))
	}
	return v
}

// Base patterns for each instruction family. Field values are OR'd in by
// the registration loops in table.go.
const (
	// Logical and bit manipulation
	OPAND       = 0xC000 // AND
	OPOR        = 0x8000 // OR
	OPEOR       = 0xB100 // EOR
	OPANDI      = 0x0200 // ANDI
	OPORI       = 0x0000 // ORI
	OPEORI      = 0x0A00 // EORI
	OPANDItoCCR = 0x023C // ANDI to CCR
	OPORItoCCR  = 0x003C // ORI to CCR
	OPEORItoCCR = 0x0A3C // EORI to CCR
	OPANDItoSR  = 0x027C // ANDI to SR (privileged)
	OPORItoSR   = 0x007C // ORI to SR (privileged)
	OPEORItoSR  = 0x0A7C // EORI to SR (privileged)
	OPNOT       = 0x4600 // NOT
	OPCLR       = 0x4200 // CLR
	OPTST       = 0x4A00 // TST
	OPNEG       = 0x4400 // NEG
	OPNEGX      = 0x4000 // NEGX
	OPNBCD      = 0x4800 // NBCD
	OPEXTW      = 0x4880 // EXT.W
	OPEXTL      = 0x48C0 // EXT.L
	OPSWAP      = 0x4840 // SWAP
	OPBTST      = 0x0800 // BTST #<data>,<ea>
	OPBCHG      = 0x0840 // BCHG #<data>,<ea>
	OPBCLR      = 0x0880 // BCLR #<data>,<ea>
	OPBSET      = 0x08C0 // BSET #<data>,<ea>
	OPBitDyn    = 0x0100 // Base for BTST/BCHG/BCLR/BSET Dn,<ea>

	// Arithmetic
	OPADD  = 0xD000 // ADD
	OPADDQ = 0x5000 // ADDQ
	OPADDA = 0xD0C0 // ADDA (bit 8 selects long)
	OPADDI = 0x0600 // ADDI
	OPADDX = 0xD100 // ADDX
	OPSUB  = 0x9000 // SUB
	OPSUBQ = 0x5100 // SUBQ
	OPSUBA = 0x90C0 // SUBA (bit 8 selects long)
	OPSUBI = 0x0400 // SUBI
	OPSUBX = 0x9100 // SUBX
	OPMULS = 0xC1C0 // MULS
	OPMULU = 0xC0C0 // MULU
	OPDIVS = 0x81C0 // DIVS
	OPDIVU = 0x80C0 // DIVU
	OPABCD = 0xC100 // ABCD
	OPSBCD = 0x8100 // SBCD

	// Comparison
	OPCMP  = 0xB000 // CMP
	OPCMPI = 0x0C00 // CMPI
	OPCMPA = 0xB0C0 // CMPA (bit 8 selects long)
	OPCMPM = 0xB108 // CMPM
	OPCHK  = 0x4180 // CHK

	// Shift and rotate
	OPShiftReg = 0xE000 // Register shifts; type, direction, size and count OR'd in
	OPShiftMem = 0xE0C0 // Memory shifts; type and direction OR'd in

	// Move
	OPMOVEQ       = 0x7000 // MOVEQ
	OPMOVEMToMem  = 0x4880 // MOVEM registers to memory
	OPMOVEMToReg  = 0x4C80 // MOVEM memory to registers
	OPMOVEP       = 0x0108 // MOVEP
	OPMOVEFromSR  = 0x40C0 // MOVE from SR
	OPMOVEToSR    = 0x46C0 // MOVE to SR (privileged)
	OPMOVEToCCR   = 0x44C0 // MOVE to CCR
	OPMOVEFromUSP = 0x4E68 // MOVE USP,An (privileged)
	OPMOVEToUSP   = 0x4E60 // MOVE An,USP (privileged)

	// Address calculation and stack
	OPPEA  = 0x4840 // PEA
	OPLEA  = 0x41C0 // LEA
	OPLINK = 0x4E50 // LINK
	OPUNLK = 0x4E58 // UNLK
	OPEXG  = 0xC100 // EXG (opmode OR'd in)

	// Control
	OPTRAP    = 0x4E40 // TRAP
	OPTRAPV   = 0x4E76 // TRAPV
	OPRTE     = 0x4E73 // RTE
	OPSTOP    = 0x4E72 // STOP
	OPRESET   = 0x4E70 // RESET
	OPNOP     = 0x4E71 // NOP
	OPILLEGAL = 0x4AFC // ILLEGAL
	OPRTS     = 0x4E75 // RTS
	OPRTR     = 0x4E77 // RTR
	OPTAS     = 0x4AC0 // TAS

	// Conditional
	OPScc  = 0x50C0 // Scc (condition OR'd in)
	OPDBcc = 0x50C8 // DBcc (condition OR'd in)
	OPBcc  = 0x6000 // Bcc (condition OR'd in)
	OPBRA  = 0x6000 // Branch Always
	OPBSR  = 0x6100 // Branch to Subroutine

	// Jump
	OPJMP = 0x4EC0 // JMP
	OPJSR = 0x4E80 // JSR
)

// conditionNames holds the mnemonic suffix for each four-bit condition code.
var conditionNames = [16]string{
	"t", "f", "hi", "ls", "cc", "cs", "ne", "eq",
	"vc", "vs", "pl", "mi", "ge", "lt", "gt", "le",
}
