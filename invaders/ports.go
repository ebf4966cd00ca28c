package invaders

// Machine implements i8080.PortBus for the board's port-mapped hardware.

// PortIn services the IN instruction. Unknown ports read as 0x00.
func (m *Machine) PortIn(port uint8) uint8 {
	switch port {
	case 0:
		return m.dip[0]
	case 1:
		return m.input
	case 2:
		return m.dip[2]
	case 3:
		// The byte of the 16-bit shift register starting shiftOffset
		// bits from the top. Equivalent to (reg << off) >> 8 once the
		// result is truncated to 8 bits.
		return uint8(m.shiftReg >> (8 - uint16(m.shiftOffset)))
	}
	return 0x00
}

// PortOut services the OUT instruction. Unknown ports are ignored.
func (m *Machine) PortOut(port uint8, val uint8) {
	switch port {
	case 2:
		m.shiftOffset = val & 0x07
	case 3, 5:
		if m.sound != nil {
			m.sound.SoundOut(port, val)
		}
	case 4:
		// New high byte, previous high byte shifts down.
		m.shiftReg = (m.shiftReg >> 8) | (uint16(val) << 8)
	case 6:
		// watchdog kick, nothing to do
	}
}
