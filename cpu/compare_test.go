package cpu

import (
	"testing"

	"github.com/matryer/is"
)

func TestCMPLeavesExtend(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t,
		0xB041, // CMP.W D1,D0
		0xB041,
	)
	c.D[0] = 5
	c.D[1] = 5
	c.SetCCR(SRX)
	run(t, c, 1)
	is.Equal(flags(c), "XZ")
	is.Equal(c.D[0], uint32(5))

	c.D[1] = 6
	run(t, c, 1)
	is.Equal(flags(c), "XNC")
}

func TestCMPASignExtends(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t, 0xB0FC, 0xFFFF) // CMPA.W #$FFFF,A0
	c.A[0] = 0xFFFFFFFF
	run(t, c, 1)
	is.Equal(flags(c), "Z")
}

func TestCMPI(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t, 0x0C10, 0x0042) // CMPI.B #$42,(A0)
	c.A[0] = 0x3000
	c.bus.Write(0x3000, 0x41)
	run(t, c, 1)
	is.Equal(flags(c), "NC")
}

func TestCMPM(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t, 0xB308) // CMPM.B (A0)+,(A1)+
	c.A[0] = 0x3000
	c.A[1] = 0x3100
	b.RAM.Write(0x3000, 0x7F)
	b.RAM.Write(0x3100, 0x7F)
	run(t, c, 1)
	is.Equal(flags(c), "Z")
	is.Equal(c.A[0], uint32(0x3001))
	is.Equal(c.A[1], uint32(0x3101))
}

func TestTST(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t, 0x4A80) // TST.L D0
	c.D[0] = 0x80000000
	c.SetCCR(SRV | SRC | SRX)
	run(t, c, 1)
	is.Equal(flags(c), "XN")
}

func TestCHK(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t,
		0x4181, // CHK.W D1,D0
		0x4181,
	)
	c.D[0] = 5
	c.D[1] = 10
	run(t, c, 1)
	is.Equal(c.PC, uint32(testOrigin+2))

	c.D[0] = 0xFFFF
	run(t, c, 1)
	is.Equal(c.PC, handler(VecCHK))
	is.True(c.SR()&SRN != 0)
}

func TestCHKUpperBound(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t, 0x41BC, 0x0010) // CHK.W #16,D0
	c.D[0] = 17
	run(t, c, 1)
	is.Equal(c.PC, handler(VecCHK))
	is.True(c.SR()&SRN == 0)
}
