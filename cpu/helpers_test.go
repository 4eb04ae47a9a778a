package cpu

import (
	"testing"

	"github.com/matryer/is"

	"github.com/Urethramancer/m68kcore/memory"
)

const (
	testOrigin  = 0x1000
	testStack   = 0x8000
	handlerBase = 0x4000
)

// handler returns the address the test vector table assigns to vector n.
func handler(n int) uint32 {
	return handlerBase + uint32(n)*4
}

// testBus is RAM that records data accesses and RESET pulses.
type testBus struct {
	*memory.RAM
	resets int
	reads  []uint32
	writes []uint32
}

func (b *testBus) Read(addr uint32) uint8 {
	b.reads = append(b.reads, addr)
	return b.RAM.Read(addr)
}

func (b *testBus) Write(addr uint32, v uint8) {
	b.writes = append(b.writes, addr)
	b.RAM.Write(addr, v)
}

func (b *testBus) Reset() {
	b.resets++
}

func (b *testBus) clearLog() {
	b.reads = b.reads[:0]
	b.writes = b.writes[:0]
}

// newTestCPU returns a reset CPU in supervisor mode with words loaded at
// testOrigin, the stack at testStack and every vector from 2 upwards
// pointing at its own slot in a handler area.
func newTestCPU(t *testing.T, words ...uint16) (*CPU, *testBus) {
	t.Helper()
	is := is.New(t)

	ram, err := memory.New(0x10000)
	is.NoErr(err)
	ram.SetVector(VecResetSSP, testStack)
	ram.SetVector(VecResetPC, testOrigin)
	for n := VecBusError; n < 64; n++ {
		ram.SetVector(uint8(n), handler(n))
	}
	is.NoErr(ram.Load(testOrigin, memory.WordsToBytes(words)))

	b := &testBus{RAM: ram}
	c, err := New(b, Options{})
	is.NoErr(err)
	c.Reset()
	return c, b
}

// run steps the CPU n times, failing the test on any error.
func run(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

// enterUserMode drops to user mode with the user stack at usp.
func enterUserMode(c *CPU, usp uint32) {
	c.SetUSP(usp)
	c.SetSR(c.SR() &^ SRS)
}

// flags reports the CCR as a string of set flag letters, XNZVC order.
func flags(c *CPU) string {
	s := ""
	for _, f := range []struct {
		bit  uint16
		name string
	}{{SRX, "X"}, {SRN, "N"}, {SRZ, "Z"}, {SRV, "V"}, {SRC, "C"}} {
		if c.SR()&f.bit != 0 {
			s += f.name
		}
	}
	return s
}
