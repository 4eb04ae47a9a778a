package cpu

// Addressing mode constants (3-bit mode field + 3-bit register field)
const (
	// 000: Data Register Direct: Dn
	ModeData uint16 = 0

	// 001: Address Register Direct: An
	ModeAddr uint16 = 1

	// 010: Address Register Indirect: (An)
	ModeAddrInd uint16 = 2

	// 011: Address Register Indirect with Postincrement: (An)+
	ModeAddrPostInc uint16 = 3

	// 100: Address Register Indirect with Predecrement: -(An)
	ModeAddrPreDec uint16 = 4

	// 101: Address Register Indirect with Displacement: (d16,An)
	ModeAddrDisp uint16 = 5

	// 110: Address Register Indirect with Index: (d8,An,Xn)
	ModeAddrIndex uint16 = 6

	// 111: Miscellaneous / other addressing modes
	ModeOther uint16 = 7
)

// Submodes for ModeOther (register field = 3 bits)
const (
	// 000: Absolute short address: (xxx).W
	RegAbsShort uint16 = 0

	// 001: Absolute long address: (xxx).L
	RegAbsLong uint16 = 1

	// 010: Program counter with displacement: (d16,PC)
	RegPCDisp uint16 = 2

	// 011: Program counter with index: (d8,PC,Xn)
	RegPCIndex uint16 = 3

	// 100: Immediate: #<data>
	RegImmediate uint16 = 4
)

// Mode identifies one of the twelve resolved addressing-mode variants.
type Mode int

const (
	DataDirect Mode = iota
	AddrDirect
	Indirect
	PostInc
	PreDec
	Displacement
	Index
	AbsShort
	AbsLong
	PCDisplacement
	PCIndex
	Immediate
)

var modeNames = [...]string{
	DataDirect:     "Dn",
	AddrDirect:     "An",
	Indirect:       "(An)",
	PostInc:        "(An)+",
	PreDec:         "-(An)",
	Displacement:   "(d16,An)",
	Index:          "(d8,An,Xn)",
	AbsShort:       "(xxx).W",
	AbsLong:        "(xxx).L",
	PCDisplacement: "(d16,PC)",
	PCIndex:        "(d8,PC,Xn)",
	Immediate:      "#<data>",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "invalid"
	}
	return modeNames[m]
}

// modeOf maps a raw {mode, register} field pair to its variant.
func modeOf(mode, reg uint16) (Mode, bool) {
	if mode < ModeOther {
		return Mode(mode), true
	}
	if reg > RegImmediate {
		return 0, false
	}
	return AbsShort + Mode(reg), true
}

// eaMask is a set of Mode variants, used when registering instruction families.
type eaMask uint16

func (m eaMask) has(mode Mode) bool {
	return m&(1<<uint(mode)) != 0
}

const (
	eaDn   eaMask = 1 << DataDirect
	eaAn   eaMask = 1 << AddrDirect
	eaInd  eaMask = 1 << Indirect
	eaInc  eaMask = 1 << PostInc
	eaDec  eaMask = 1 << PreDec
	eaDisp eaMask = 1 << Displacement
	eaIdx  eaMask = 1 << Index
	eaAbsW eaMask = 1 << AbsShort
	eaAbsL eaMask = 1 << AbsLong
	eaPCD  eaMask = 1 << PCDisplacement
	eaPCI  eaMask = 1 << PCIndex
	eaImm  eaMask = 1 << Immediate

	// eaAll is every mode.
	eaAll = eaDn | eaAn | eaInd | eaInc | eaDec | eaDisp | eaIdx | eaAbsW | eaAbsL | eaPCD | eaPCI | eaImm
	// eaData excludes An.
	eaData = eaAll &^ eaAn
	// eaMemory excludes both register-direct modes.
	eaMemory = eaData &^ eaDn
	// eaControl is the set whose address can be taken without side effects.
	eaControl = eaInd | eaDisp | eaIdx | eaAbsW | eaAbsL | eaPCD | eaPCI
	// eaAlterable can be written.
	eaAlterable = eaDn | eaAn | eaInd | eaInc | eaDec | eaDisp | eaIdx | eaAbsW | eaAbsL
	// eaDataAlterable can be written and is not An.
	eaDataAlterable = eaAlterable &^ eaAn
	// eaMemAlterable can be written and lives in memory.
	eaMemAlterable = eaDataAlterable &^ eaDn
	// eaControlAlterable can be written and has an address.
	eaControlAlterable = eaControl &^ (eaPCD | eaPCI)
)

// Register numbers
const (
	// Data registers
	D0 = 0
	D1 = 1
	D2 = 2
	D3 = 3
	D4 = 4
	D5 = 5
	D6 = 6
	D7 = 7

	// Address registers
	A0 = 0
	A1 = 1
	A2 = 2
	A3 = 3
	A4 = 4
	A5 = 5
	A6 = 6
	A7 = 7 // stack pointer
)
