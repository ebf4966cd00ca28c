// Package memory provides the banked 64KB address space seen by the CPU.
// Banks are fixed at construction; reads of unmapped addresses return 0x00
// and writes to unmapped addresses or read-only banks are discarded, the
// way a real bus with nothing listening behaves.
package memory

import (
	"errors"
	"fmt"
)

var ErrBankOverlap = errors.New("memory: overlapping banks")

// Bank is a contiguous address range backed by a byte buffer.
type Bank struct {
	Start    uint16
	Data     []byte
	ReadOnly bool
}

func (b *Bank) contains(addr uint16) bool {
	return addr >= b.Start && uint32(addr) < uint32(b.Start)+uint32(len(b.Data))
}

func (b *Bank) end() uint32 {
	return uint32(b.Start) + uint32(len(b.Data))
}

type AddressSpace struct {
	banks []*Bank
}

// NewAddressSpace validates that the banks do not overlap and returns the
// assembled address space. An overlapping bank table is the one fatal
// construction error.
func NewAddressSpace(banks ...*Bank) (*AddressSpace, error) {
	for i, a := range banks {
		for _, b := range banks[:i] {
			if uint32(a.Start) < b.end() && uint32(b.Start) < a.end() {
				return nil, fmt.Errorf("%w: %#04x-%#04x and %#04x-%#04x",
					ErrBankOverlap, b.Start, b.end()-1, a.Start, a.end()-1)
			}
		}
	}
	return &AddressSpace{banks: banks}, nil
}

func (a *AddressSpace) Read(addr uint16) uint8 {
	for _, b := range a.banks {
		if b.contains(addr) {
			return b.Data[addr-b.Start]
		}
	}
	return 0x00
}

func (a *AddressSpace) Write(addr uint16, val uint8) {
	for _, b := range a.banks {
		if b.contains(addr) {
			if !b.ReadOnly {
				b.Data[addr-b.Start] = val
			}
			return
		}
	}
}
