package invaders

// Game observation helpers. The game keeps its state at fixed work-RAM
// addresses (see computerarcheology.com/Arcade/SpaceInvaders/RAMUse.html);
// these readers peek at it without disturbing execution. They are
// observations of the running program, not invariants of the core.

const (
	addrPlayerY       = 0x201a
	addrPlayerX       = 0x201b
	addrPlayerShot    = 0x2025
	addrPlayerShotY   = 0x2029
	addrPlayerShotX   = 0x202a
	addrRollShotY     = 0x203d
	addrRollShotX     = 0x203e
	addrPluShotY      = 0x204d
	addrPluShotX      = 0x204e
	addrSquShotY      = 0x205d
	addrSquShotX      = 0x205e
	addrSaucerY       = 0x207b
	addrSaucerX       = 0x207c
	addrAlienCount    = 0x2082
	addrSaucerActive  = 0x2084
	addrPlayerAlive   = 0x20e7
	addrScoreLo       = 0x20f8
	addrScoreHi       = 0x20f9
	addrAlienGrid     = 0x2100
	addrShipsRemain   = 0x21ff
)

// AlienRows and AlienCols describe the rack the game walks through the
// flags at addrAlienGrid, bottom row first.
const (
	AlienRows = 5
	AlienCols = 11
)

// Score returns player 1's score, decoded from its four BCD digits.
func (m *Machine) Score() int {
	lo := m.mem.Read(addrScoreLo)
	hi := m.mem.Read(addrScoreHi)
	return int(hi>>4)*1000 + int(hi&0x0f)*100 + int(lo>>4)*10 + int(lo&0x0f)
}

// Lives returns the ships the player still has, counting the ship in play.
// The game stores reserve ships only, so the live ship adds one.
func (m *Machine) Lives() int {
	lives := int(m.mem.Read(addrShipsRemain))
	if m.mem.Read(addrPlayerAlive) != 0 {
		lives++
	}
	if lives > 6 {
		// RAM not initialized yet (boot/attract garbage)
		return 0
	}
	return lives
}

// GameOver reports whether play has ended: the CPU halted or the player is
// dead with no ships in reserve.
func (m *Machine) GameOver() bool {
	return m.cpu.Halted() ||
		(m.mem.Read(addrPlayerAlive) == 0 && m.mem.Read(addrShipsRemain) == 0)
}

// Level estimates the current wave from elapsed frames; the game has no
// explicit wave counter in RAM.
func (m *Machine) Level() int {
	return int(m.frameCount/3600) + 1
}

func (m *Machine) PlayerX() uint8 {
	return m.mem.Read(addrPlayerX)
}

func (m *Machine) PlayerY() uint8 {
	return m.mem.Read(addrPlayerY)
}

func (m *Machine) PlayerAlive() bool {
	return m.mem.Read(addrPlayerAlive) != 0
}

// AlienGrid returns the 55 alive flags of the alien rack, bottom-left
// first, row by row.
func (m *Machine) AlienGrid() [AlienRows * AlienCols]bool {
	var grid [AlienRows * AlienCols]bool
	for i := range grid {
		grid[i] = m.mem.Read(addrAlienGrid+uint16(i)) != 0
	}
	return grid
}

func (m *Machine) AlienCount() uint8 {
	return m.mem.Read(addrAlienCount)
}

// Shot is a projectile observation. Active mirrors how the game flags each
// shot: an explicit status byte for the player, Y != 0 for alien shots.
type Shot struct {
	Active bool
	X, Y   uint8
}

func (m *Machine) PlayerShot() Shot {
	return Shot{
		Active: m.mem.Read(addrPlayerShot) != 0,
		X:      m.mem.Read(addrPlayerShotX),
		Y:      m.mem.Read(addrPlayerShotY),
	}
}

func (m *Machine) RollingShot() Shot {
	return m.alienShot(addrRollShotX, addrRollShotY)
}

func (m *Machine) PlungerShot() Shot {
	return m.alienShot(addrPluShotX, addrPluShotY)
}

func (m *Machine) SquigglyShot() Shot {
	return m.alienShot(addrSquShotX, addrSquShotY)
}

func (m *Machine) alienShot(addrX, addrY uint16) Shot {
	y := m.mem.Read(addrY)
	return Shot{Active: y != 0, X: m.mem.Read(addrX), Y: y}
}

// Saucer reports whether the bonus saucer is on screen and its position.
func (m *Machine) Saucer() (active bool, x, y uint8) {
	if m.mem.Read(addrSaucerActive) == 0 {
		return false, 0, 0
	}
	return true, m.mem.Read(addrSaucerX), m.mem.Read(addrSaucerY)
}
