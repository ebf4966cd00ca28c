package invaders

// Board memory map. ROM is four 2KB segments (invaders.h/g/f/e) mapped
// flat at 0x0000; RAM covers work RAM plus the bit-packed video region.
const (
	ROMStart       = 0x0000
	ROMSegmentSize = 0x0800
	ROMSize        = 4 * ROMSegmentSize
	RAMStart       = 0x2000
	RAMSize        = 0x2000
	VRAMStart      = 0x2400
	VRAMEnd        = 0x4000
)

const (
	ScreenWidth  = 256
	ScreenHeight = 224
)

// The CPU runs at ~2.048MHz with two interrupts per 60Hz frame: RST 1 as
// the beam crosses mid-screen and RST 2 at vblank.
const (
	HalfFrameCycles = 17066
	MidFrameVector  = 0x08
	EndFrameVector  = 0x10
)

// resetPC matches the stock ROM set, which is entered at 0x0001 with its
// first byte patched to a JMP opcode at load time.
const resetPC = 0x0001

// Input bitmask for SetInput. Bit 3 is tied high on the board and is
// forced regardless of what the caller passes.
const (
	ButtonCoin    = 1 << 0
	ButtonP2Start = 1 << 1
	ButtonP1Start = 1 << 2
	ButtonFire    = 1 << 4
	ButtonLeft    = 1 << 5
	ButtonRight   = 1 << 6

	inputMask    = 0x77
	inputTieHigh = 0x08
)

// Sound trigger bits, as emitted on ports 3 and 5. The core never plays
// anything itself; a SoundPort collaborator sees these writes.
const (
	SoundUFO        = 1 << 0 // port 3
	SoundShot       = 1 << 1 // port 3
	SoundPlayerDie  = 1 << 2 // port 3
	SoundInvaderDie = 1 << 3 // port 3

	SoundFleet1 = 1 << 0 // port 5
	SoundFleet2 = 1 << 1 // port 5
	SoundFleet3 = 1 << 2 // port 5
	SoundFleet4 = 1 << 3 // port 5
	SoundUFOHit = 1 << 4 // port 5
)

// Factory-default DIP settings: 3 lives, bonus at 1500, coin info on.
var defaultDIP = [3]uint8{0x0e, 0x08, 0x00}
