package invaders

import (
	"bytes"
	"errors"
	"testing"
)

// counterROM builds a test program in segment h. The main loop parks at a
// self-jump; the RST 1 and RST 2 handlers each bump a counter in work RAM
// (0x2000 and 0x2001) and re-enable interrupts before returning. With
// enableInts false the program never executes EI, so no interrupt is ever
// delivered.
func counterROM(enableInts bool) []byte {
	h := make([]byte, ROMSegmentSize)
	put := func(addr int, code ...byte) {
		copy(h[addr:], code)
	}
	put(0x03, 0xc3, 0x20, 0x00) // JMP 0x20
	put(0x08, 0xc3, 0x30, 0x00) // RST 1 -> JMP 0x30
	put(0x10, 0xc3, 0x40, 0x00) // RST 2 -> JMP 0x40
	if enableInts {
		// LXI SP,0x2400; EI; loop: JMP loop
		put(0x20, 0x31, 0x00, 0x24, 0xfb, 0xc3, 0x24, 0x00)
	} else {
		// LXI SP,0x2400; loop: JMP loop
		put(0x20, 0x31, 0x00, 0x24, 0xc3, 0x23, 0x00)
	}
	// LDA ctr; INR A; STA ctr; EI; RET
	put(0x30, 0x3a, 0x00, 0x20, 0x3c, 0x32, 0x00, 0x20, 0xfb, 0xc9)
	put(0x40, 0x3a, 0x01, 0x20, 0x3c, 0x32, 0x01, 0x20, 0xfb, 0xc9)
	return h
}

func counterMachine(t *testing.T, enableInts bool) *Machine {
	t.Helper()
	blank := make([]byte, ROMSegmentSize)
	m, err := New(counterROM(enableInts), blank, blank, blank)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestROMSizeValidation(t *testing.T) {
	blank := make([]byte, ROMSegmentSize)
	short := make([]byte, ROMSegmentSize-1)
	if _, err := New(blank, short, blank, blank); !errors.Is(err, ErrROMSize) {
		t.Errorf("New with short segment = %v, want ErrROMSize", err)
	}
	if _, err := New(blank, blank, blank, append(blank, 0x00)); !errors.Is(err, ErrROMSize) {
		t.Errorf("New with long segment = %v, want ErrROMSize", err)
	}
}

func TestBootVectorPatch(t *testing.T) {
	m := counterMachine(t, true)
	if got := m.mem.Read(0x0000); got != 0xc3 {
		t.Errorf("ROM byte 0 = %#02x, want boot patch 0xc3", got)
	}
}

func TestStepFrameCadence(t *testing.T) {
	m := counterMachine(t, true)
	cycles := m.StepFrame()
	if m.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", m.FrameCount())
	}
	if cycles < 2*HalfFrameCycles || cycles > 2*HalfFrameCycles+40 {
		t.Errorf("cycles = %d, want just past %d", cycles, 2*HalfFrameCycles)
	}
	if m.CycleCount() != uint64(cycles) {
		t.Errorf("CycleCount = %d, want %d", m.CycleCount(), cycles)
	}
	// The mid-frame handler runs inside the same frame. The end-frame
	// interrupt is taken at the frame boundary, so its handler runs at
	// the top of the next frame and the counter lags one frame behind.
	if mid, end := m.ram.Data[0], m.ram.Data[1]; mid != 1 || end != 0 {
		t.Errorf("interrupt counters = %d/%d, want 1/0", mid, end)
	}
	for i := 0; i < 4; i++ {
		m.StepFrame()
	}
	if mid, end := m.ram.Data[0], m.ram.Data[1]; mid != 5 || end != 4 {
		t.Errorf("interrupt counters after 5 frames = %d/%d, want 5/4", mid, end)
	}
}

func TestInterruptsSkippedWhileDisabled(t *testing.T) {
	m := counterMachine(t, false)
	m.StepFrame()
	if m.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", m.FrameCount())
	}
	if mid, end := m.ram.Data[0], m.ram.Data[1]; mid != 0 || end != 0 {
		t.Errorf("interrupt counters = %d/%d, want none delivered", mid, end)
	}
}

func TestStepCycles(t *testing.T) {
	m := counterMachine(t, true)
	executed := m.StepCycles(100)
	if executed < 100 {
		t.Errorf("executed = %d, want at least 100", executed)
	}
	if m.FrameCount() != 0 {
		t.Error("StepCycles must not advance the frame counter")
	}
	if m.CycleCount() != uint64(executed) {
		t.Errorf("CycleCount = %d, want %d", m.CycleCount(), executed)
	}
}

func TestDeterminism(t *testing.T) {
	a := counterMachine(t, true)
	b := counterMachine(t, true)
	inputs := []uint8{0, ButtonCoin, ButtonCoin, 0, ButtonP1Start, 0, ButtonLeft | ButtonFire, 0}
	for _, m := range []*Machine{a, b} {
		for _, in := range inputs {
			m.SetInput(in)
			m.StepFrame()
		}
	}
	if !bytes.Equal(a.Snapshot(), b.Snapshot()) {
		t.Error("identical runs must produce byte-identical state")
	}
	if !bytes.Equal(a.VideoRAM(), b.VideoRAM()) {
		t.Error("identical runs must produce byte-identical video memory")
	}
}

func TestROMImmutability(t *testing.T) {
	h := counterROM(true)
	h[0x50] = 0x77
	blank := make([]byte, ROMSegmentSize)
	m, err := New(h, blank, blank, blank)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// write straight through the bus, like a rogue STA would
	m.mem.Write(0x0050, 0xff)
	if got := m.mem.Read(0x0050); got != 0x77 {
		t.Errorf("ROM byte = %#02x after write, want 0x77", got)
	}
}

func TestResetPreservesWiring(t *testing.T) {
	m := counterMachine(t, true)
	m.StepFrame()
	m.StepFrame()
	m.SetInput(ButtonCoin)
	m.SetDIPSwitches(0x03, 0x00, 0x01)
	m.PortOut(2, 5)
	m.PortOut(4, 0xaa)

	m.Reset()

	if m.FrameCount() != 0 || m.CycleCount() != 0 {
		t.Error("reset must clear the frame and cycle counters")
	}
	if s := m.CPUState(); s.PC != resetPC || s.SP != 0 || s.A != 0 {
		t.Errorf("CPU state after reset = %+v", s)
	}
	if m.Input() != inputTieHigh {
		t.Errorf("input latch = %#02x, want %#02x", m.Input(), inputTieHigh)
	}
	if m.shiftReg != 0 || m.shiftOffset != 0 {
		t.Error("shift register must clear on reset")
	}
	// DIP switches are physical; reset must not flip them
	if m.PortIn(0) != 0x03 || m.PortIn(2) != 0x01 {
		t.Error("DIP switches must survive reset")
	}
	for _, b := range m.ram.Data {
		if b != 0 {
			t.Error("RAM must be cleared by reset")
			break
		}
	}
	// the board is still wired: stepping delivers interrupts again
	m.StepFrame()
	if mid := m.ram.Data[0]; mid != 1 {
		t.Errorf("interrupt counter after reset+frame = %d, want 1", mid)
	}
}

func TestShiftRegister(t *testing.T) {
	m := counterMachine(t, true)

	m.PortOut(2, 4)
	m.PortOut(4, 0xff)
	if got := m.PortIn(3); got != 0xf0 {
		t.Errorf("offset 4 after writing 0xff: read %#02x, want 0xf0", got)
	}

	m.PortOut(2, 0)
	if got := m.PortIn(3); got != 0xff {
		t.Errorf("offset 0: read %#02x, want 0xff", got)
	}

	// a second write shifts the old high byte down
	m.PortOut(4, 0x00)
	m.PortOut(2, 7)
	if got := m.PortIn(3); got != 0x7f {
		t.Errorf("offset 7 after 0xff,0x00: read %#02x, want 0x7f", got)
	}

	// offset is masked to three bits
	m.PortOut(2, 0xff)
	if m.shiftOffset != 7 {
		t.Errorf("shift offset = %d, want 7", m.shiftOffset)
	}
}

func TestInputLatch(t *testing.T) {
	m := counterMachine(t, true)
	if m.PortIn(1) != inputTieHigh {
		t.Errorf("idle latch = %#02x, want %#02x", m.PortIn(1), inputTieHigh)
	}
	m.SetInput(ButtonCoin | ButtonFire)
	if got := m.PortIn(1); got != 0x19 {
		t.Errorf("latch = %#02x, want 0x19", got)
	}
	// bit 3 cannot be cleared, bit 7 cannot be set
	m.SetInput(0x80)
	if got := m.PortIn(1); got != inputTieHigh {
		t.Errorf("latch = %#02x, want %#02x", got, inputTieHigh)
	}
}

func TestDIPPorts(t *testing.T) {
	m := counterMachine(t, true)
	if m.PortIn(0) != defaultDIP[0] || m.PortIn(2) != defaultDIP[2] {
		t.Error("DIP ports must serve the factory defaults")
	}
	m.SetDIPSwitches(0x01, 0x02, 0x03)
	if m.PortIn(0) != 0x01 || m.PortIn(2) != 0x03 {
		t.Error("DIP ports must serve caller settings")
	}
}

func TestUnknownPorts(t *testing.T) {
	m := counterMachine(t, true)
	if got := m.PortIn(9); got != 0x00 {
		t.Errorf("unknown port read = %#02x, want 0x00", got)
	}
	m.PortOut(9, 0xff) // must be ignored
	m.PortOut(6, 0x01) // watchdog kick, no-op
}

type soundRecorder struct {
	ports []uint8
	vals  []uint8
}

func (s *soundRecorder) SoundOut(port uint8, val uint8) {
	s.ports = append(s.ports, port)
	s.vals = append(s.vals, val)
}

func TestSoundPortForwarding(t *testing.T) {
	m := counterMachine(t, true)
	m.PortOut(3, SoundShot) // no collaborator installed: discarded
	rec := &soundRecorder{}
	m.SetSoundPort(rec)
	m.PortOut(3, SoundShot)
	m.PortOut(5, SoundFleet2)
	if len(rec.ports) != 2 || rec.ports[0] != 3 || rec.ports[1] != 5 {
		t.Fatalf("forwarded ports = %v, want [3 5]", rec.ports)
	}
	if rec.vals[0] != SoundShot || rec.vals[1] != SoundFleet2 {
		t.Errorf("forwarded values = %v", rec.vals)
	}
}
