// Package invaders emulates the 1978 Space Invaders arcade board: an Intel
// 8080 wired to 8KB of ROM, 8KB of RAM with a bit-packed video region, DIP
// switches, an input latch and the 16-bit hardware shift register.
//
// A Machine owns all of its state; independent machines share nothing and
// can be stepped from different goroutines or processes without locks.
package invaders

import (
	"errors"
	"fmt"
	"os"

	"github.com/kfowler/Space-Invaders-Emulator/i8080"
	"github.com/kfowler/Space-Invaders-Emulator/memory"
)

var ErrROMSize = errors.New("invaders: ROM segment must be 2048 bytes")

// SoundPort observes writes to the board's two sound ports (3 and 5). The
// core itself produces no audio.
type SoundPort interface {
	SoundOut(port uint8, val uint8)
}

type Machine struct {
	cpu *i8080.CPU
	mem *memory.AddressSpace
	rom *memory.Bank
	ram *memory.Bank

	shiftReg    uint16
	shiftOffset uint8
	input       uint8
	dip         [3]uint8

	frameCount uint32
	cycleCount uint64

	sound SoundPort
}

// New assembles a machine from the four 2KB ROM segments in board order
// (invaders.h, g, f, e). The first ROM byte is patched to the JMP opcode
// 0xC3 once, at load time, to match the stock ROM set's boot vector.
func New(h, g, f, e []byte) (*Machine, error) {
	segments := [][]byte{h, g, f, e}
	names := []string{"h", "g", "f", "e"}
	rom := make([]byte, 0, ROMSize)
	for i, seg := range segments {
		if len(seg) != ROMSegmentSize {
			return nil, fmt.Errorf("%w: segment %s is %d bytes", ErrROMSize, names[i], len(seg))
		}
		rom = append(rom, seg...)
	}
	rom[0] = 0xc3

	m := &Machine{
		rom: &memory.Bank{Start: ROMStart, Data: rom, ReadOnly: true},
		ram: &memory.Bank{Start: RAMStart, Data: make([]byte, RAMSize)},
	}
	mem, err := memory.NewAddressSpace(m.rom, m.ram)
	if err != nil {
		return nil, err
	}
	m.mem = mem
	m.cpu = i8080.NewCPU(mem, m)
	m.dip = defaultDIP
	m.Reset()
	return m, nil
}

// NewFromFiles loads the four ROM segment files and assembles a machine.
func NewFromFiles(h, g, f, e string) (*Machine, error) {
	segments := make([][]byte, 4)
	for i, path := range []string{h, g, f, e} {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("invaders: reading ROM: %w", err)
		}
		segments[i] = data
	}
	return New(segments[0], segments[1], segments[2], segments[3])
}

// Reset returns the CPU and hardware registers to their power-on defaults
// and clears RAM. The memory banks, port wiring and DIP switches are left
// exactly as they were; a reset never rewires the board or flips physical
// switches.
func (m *Machine) Reset() {
	m.cpu.Reset(resetPC)
	m.shiftReg = 0
	m.shiftOffset = 0
	m.input = inputTieHigh
	m.frameCount = 0
	m.cycleCount = 0
	for i := range m.ram.Data {
		m.ram.Data[i] = 0
	}
}

// StepFrame advances the machine by one 60Hz video frame: two half-frame
// cycle bursts with the mid-screen interrupt between them and the vblank
// interrupt at the end. Returns the cycles executed. Interrupts are only
// delivered while the program has them enabled.
func (m *Machine) StepFrame() int {
	cycles := m.cpu.Run(HalfFrameCycles)
	m.cpu.Interrupt(MidFrameVector)
	cycles += m.cpu.Run(HalfFrameCycles)
	m.cpu.Interrupt(EndFrameVector)
	m.frameCount++
	m.cycleCount += uint64(cycles)
	return cycles
}

// StepCycles runs the CPU for at least n cycles without asserting any
// interrupts. Frame-accurate behavior is only guaranteed via StepFrame.
func (m *Machine) StepCycles(n int) int {
	executed := m.cpu.Run(n)
	m.cycleCount += uint64(executed)
	return executed
}

// SetInput latches the caller's button bitmask. Bit 3 is forced high and
// bit 7 is discarded, as on the real input latch.
func (m *Machine) SetInput(buttons uint8) {
	m.input = (buttons & inputMask) | inputTieHigh
}

func (m *Machine) Input() uint8 {
	return m.input
}

func (m *Machine) SetDIPSwitches(dip0, dip1, dip2 uint8) {
	m.dip = [3]uint8{dip0, dip1, dip2}
}

func (m *Machine) FrameCount() uint32 {
	return m.frameCount
}

func (m *Machine) CycleCount() uint64 {
	return m.cycleCount
}

func (m *Machine) Halted() bool {
	return m.cpu.Halted()
}

// CPUState exposes the register file for debugging front-ends.
func (m *Machine) CPUState() i8080.State {
	return m.cpu.State()
}

// SetSoundPort installs (or removes, with nil) the sound collaborator.
func (m *Machine) SetSoundPort(s SoundPort) {
	m.sound = s
}
