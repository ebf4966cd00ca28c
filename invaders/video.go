package invaders

// VideoRAM returns the bit-packed video region: one bit per pixel, eight
// pixels per byte, 256x224 logical pixels stored rotated 90 degrees from
// a conventional row-major screen. The slice aliases live machine RAM and
// must be treated as read-only; unpacking, rotation and color assignment
// are the renderer's business.
func (m *Machine) VideoRAM() []byte {
	return m.ram.Data[VRAMStart-RAMStart : VRAMEnd-RAMStart]
}

// Grayscale unpacks VRAM into buf as one byte per pixel (0 or 255) in VRAM
// bit order. buf must hold ScreenWidth*ScreenHeight bytes.
func (m *Machine) Grayscale(buf []byte) {
	vram := m.VideoRAM()
	for i, b := range vram {
		for bit := 0; bit < 8; bit++ {
			if (b>>uint(bit))&1 != 0 {
				buf[i*8+bit] = 255
			} else {
				buf[i*8+bit] = 0
			}
		}
	}
}
