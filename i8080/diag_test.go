package i8080

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// diagMachine runs a CP/M diagnostic binary (TST8080.COM and friends) by
// stubbing the BDOS print call at 0x0005 and the warm-boot vector at
// 0x0000 with OUT instructions the harness intercepts.
type diagMachine struct {
	cpu     *CPU
	mem     *testMem
	out     bytes.Buffer
	running bool
}

func newDiagMachine(program []byte) *diagMachine {
	dm := &diagMachine{mem: &testMem{}, running: true}
	copy(dm.mem.data[0x100:], program)
	copy(dm.mem.data[0x0000:], []uint8{0xd3, 0x00})       // OUT 0: test finished
	copy(dm.mem.data[0x0005:], []uint8{0xd3, 0x01, 0xc9}) // OUT 1: BDOS call
	dm.cpu = NewCPU(dm.mem, dm)
	dm.cpu.pc = 0x100
	return dm
}

func (dm *diagMachine) PortIn(port uint8) uint8 {
	return 0
}

func (dm *diagMachine) PortOut(port uint8, val uint8) {
	switch port {
	case 0:
		dm.running = false
	case 1:
		reg := dm.cpu.Registers()
		switch reg.C {
		case 9:
			addr := (uint16(reg.D) << 8) | uint16(reg.E)
			for ch := dm.mem.data[addr]; ch != '$'; ch = dm.mem.data[addr] {
				dm.out.WriteByte(ch)
				addr++
			}
		case 2:
			dm.out.WriteByte(reg.E)
		}
	}
}

func (dm *diagMachine) run(t *testing.T, maxInstructions int) {
	t.Helper()
	for i := 0; dm.running; i++ {
		if dm.cpu.Halted() {
			t.Fatalf("diagnostic halted at PC %#04x:\n%s", dm.cpu.PC(), dm.out.String())
		}
		if i > maxInstructions {
			t.Fatalf("diagnostic did not finish within %d instructions:\n%s", maxInstructions, dm.out.String())
		}
		dm.cpu.Execute()
	}
}

func TestTST8080(t *testing.T) {
	program, err := os.ReadFile(filepath.Join("testdata", "TST8080.COM"))
	if err != nil {
		t.Skipf("diagnostic binary not present: %v", err)
	}
	dm := newDiagMachine(program)
	dm.run(t, 1_000_000)
	if !bytes.Contains(dm.out.Bytes(), []byte("CPU IS OPERATIONAL")) {
		t.Errorf("diagnostic failed:\n%s", dm.out.String())
	}
	t.Logf("TST8080 finished in %d cycles", dm.cpu.Cycles())
}
