package cpu

import (
	"testing"

	"github.com/matryer/is"
)

func TestABCD(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t,
		0xC101, // ABCD D1,D0
		0xC101,
	)
	c.D[0] = 0x45
	c.D[1] = 0x38
	c.SetCCR(SRZ)
	run(t, c, 1)
	is.Equal(c.D[0], uint32(0x83))
	is.Equal(c.SR()&(SRX|SRZ|SRC), uint16(0))

	c.D[0] = 0x99
	c.D[1] = 0x01
	c.SetCCR(SRZ)
	run(t, c, 1)
	is.Equal(c.D[0], uint32(0x00))
	is.Equal(c.SR()&(SRX|SRZ|SRC), uint16(SRX|SRZ|SRC))
}

func TestSBCD(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t,
		0x8101, // SBCD D1,D0
		0x8101,
	)
	c.D[0] = 0x42
	c.D[1] = 0x15
	run(t, c, 1)
	is.Equal(c.D[0], uint32(0x27))
	is.Equal(c.SR()&(SRX|SRC), uint16(0))

	c.D[0] = 0x00
	c.D[1] = 0x01
	run(t, c, 1)
	is.Equal(c.D[0], uint32(0x99))
	is.Equal(c.SR()&(SRX|SRC), uint16(SRX|SRC))
}

func TestABCDMemory(t *testing.T) {
	is := is.New(t)
	c, b := newTestCPU(t,
		0xC109, // ABCD -(A1),-(A0)
		0xC109,
	)
	// 1999 + 0001 as two-byte packed decimal, low bytes first.
	c.A[0] = 0x3002
	c.A[1] = 0x3102
	b.RAM.WriteU16(0x3000, 0x1999)
	b.RAM.WriteU16(0x3100, 0x0001)
	c.SetCCR(SRZ)
	run(t, c, 2)
	is.Equal(b.RAM.ReadU16(0x3000), uint16(0x2000))
	is.Equal(c.A[0], uint32(0x3000))
	is.Equal(c.SR()&(SRX|SRZ|SRC), uint16(0))
}

func TestNBCD(t *testing.T) {
	is := is.New(t)
	c, _ := newTestCPU(t,
		0x4800, // NBCD D0
		0x4800,
	)
	c.D[0] = 0x25
	run(t, c, 1)
	is.Equal(c.D[0], uint32(0x75))
	is.Equal(c.SR()&(SRX|SRC), uint16(SRX|SRC))

	c.D[0] = 0x00
	c.SetCCR(SRZ)
	run(t, c, 1)
	is.Equal(c.D[0], uint32(0x00))
	is.Equal(c.SR()&(SRX|SRZ|SRC), uint16(SRZ))
}
