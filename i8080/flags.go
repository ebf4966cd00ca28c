package i8080

// Flags holds the five variable condition bits. The PSW byte layout is
// S Z 0 AC 0 P 1 CY from bit 7 down to bit 0; bits 5 and 3 read as 0 and
// bit 1 reads as 1 no matter what is popped into the flags.
type Flags struct {
	S  uint8
	Z  uint8
	AC uint8
	P  uint8
	CY uint8
}

func (f *Flags) PSW() uint8 {
	return f.S<<7 | f.Z<<6 | f.AC<<4 | f.P<<2 | 1<<1 | f.CY
}

func (f *Flags) SetPSW(psw uint8) {
	f.S = (psw >> 7) & 1
	f.Z = (psw >> 6) & 1
	f.AC = (psw >> 4) & 1
	f.P = (psw >> 2) & 1
	f.CY = psw & 1
}

func (c *CPU) setZSP(val uint8) {
	c.setZero(val)
	c.setSign(val)
	c.setParity(val)
}

func (c *CPU) setZero(val uint8) {
	if val == 0 {
		c.flags.Z = 1
	} else {
		c.flags.Z = 0
	}
}

func (c *CPU) setSign(val uint8) {
	if (val & 0x80) != 0 {
		c.flags.S = 1
	} else {
		c.flags.S = 0
	}
}

func (c *CPU) setParity(val uint8) {
	ones := 0
	for i := 0; i < 8; i++ {
		ones += int((val >> i) & 1)
	}
	if (ones % 2) == 0 {
		c.flags.P = 1
	} else {
		c.flags.P = 0
	}
}

func (c *CPU) setCarry(val uint16) {
	if val > 0xff {
		c.flags.CY = 1
	} else {
		c.flags.CY = 0
	}
}

func flip(val uint8) uint8 {
	if val == 1 {
		return 0
	}
	return 1
}
