package invaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kfowler/Space-Invaders-Emulator/i8080"
)

// Save blob layout, all little-endian:
//
//	4 bytes  magic "SI80"
//	4 bytes  version (currently 1)
//	22 bytes CPU record (A F B C D E H L, PC, SP, halt, IE, cycle counter)
//	19 bytes hardware record (shift reg, shift offset, input latch,
//	         3 DIP bytes, frame counter, cycle counter)
//	8192 bytes RAM, ascending address order
//
// ROM is not captured; it is immutable and supplied by the caller at
// construction. Restoring a blob against a different ROM is undefined.

var (
	ErrBadMagic   = errors.New("invaders: not a save state blob")
	ErrBadVersion = errors.New("invaders: unsupported save state version")
	ErrTruncated  = errors.New("invaders: truncated save state blob")
)

var saveMagic = [4]byte{'S', 'I', '8', '0'}

const saveVersion = 1

type hardwareState struct {
	ShiftReg    uint16
	ShiftOffset uint8
	Input       uint8
	DIP         [3]uint8
	FrameCount  uint32
	CycleCount  uint64
}

// Snapshot captures the complete machine state as an opaque blob.
func (m *Machine) Snapshot() []byte {
	var buf bytes.Buffer
	buf.Write(saveMagic[:])
	binary.Write(&buf, binary.LittleEndian, uint32(saveVersion))
	binary.Write(&buf, binary.LittleEndian, m.cpu.State())
	binary.Write(&buf, binary.LittleEndian, hardwareState{
		ShiftReg:    m.shiftReg,
		ShiftOffset: m.shiftOffset,
		Input:       m.input,
		DIP:         m.dip,
		FrameCount:  m.frameCount,
		CycleCount:  m.cycleCount,
	})
	buf.Write(m.ram.Data)
	return buf.Bytes()
}

// Restore replaces the machine state with a previously captured blob. The
// blob is fully validated first; on any error the machine is untouched.
func (m *Machine) Restore(blob []byte) error {
	r := bytes.NewReader(blob)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return ErrTruncated
	}
	if magic != saveMagic {
		return ErrBadMagic
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return ErrTruncated
	}
	if version != saveVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	var cpu i8080.State
	if err := binary.Read(r, binary.LittleEndian, &cpu); err != nil {
		return ErrTruncated
	}

	var hw hardwareState
	if err := binary.Read(r, binary.LittleEndian, &hw); err != nil {
		return ErrTruncated
	}

	ram := make([]byte, RAMSize)
	if _, err := io.ReadFull(r, ram); err != nil {
		return ErrTruncated
	}

	m.cpu.SetState(cpu)
	m.shiftReg = hw.ShiftReg
	m.shiftOffset = hw.ShiftOffset & 0x07
	m.input = (hw.Input & inputMask) | inputTieHigh
	m.dip = hw.DIP
	m.frameCount = hw.FrameCount
	m.cycleCount = hw.CycleCount
	copy(m.ram.Data, ram)
	return nil
}
