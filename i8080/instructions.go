package i8080

// The regular quadrants of the opcode map (MOV, the accumulator ALU block,
// INR/DCR/MVI and the register-pair ops) encode their operands in bit
// fields, so those handlers decode the fetched opcode instead of existing
// once per opcode. regGet/regSet index 6 is the memory operand at (HL).

var regGet = [8]func(*CPU) uint8{
	func(c *CPU) uint8 { return c.reg.B },
	func(c *CPU) uint8 { return c.reg.C },
	func(c *CPU) uint8 { return c.reg.D },
	func(c *CPU) uint8 { return c.reg.E },
	func(c *CPU) uint8 { return c.reg.H },
	func(c *CPU) uint8 { return c.reg.L },
	func(c *CPU) uint8 { return c.read(c.getHL()) },
	func(c *CPU) uint8 { return c.reg.A },
}

var regSet = [8]func(*CPU, uint8){
	func(c *CPU, v uint8) { c.reg.B = v },
	func(c *CPU, v uint8) { c.reg.C = v },
	func(c *CPU, v uint8) { c.reg.D = v },
	func(c *CPU, v uint8) { c.reg.E = v },
	func(c *CPU, v uint8) { c.reg.H = v },
	func(c *CPU, v uint8) { c.reg.L = v },
	func(c *CPU, v uint8) { c.write(c.getHL(), v) },
	func(c *CPU, v uint8) { c.reg.A = v },
}

var pairGet = [4]func(*CPU) uint16{
	(*CPU).getBC,
	(*CPU).getDE,
	(*CPU).getHL,
	func(c *CPU) uint16 { return c.sp },
}

var pairSet = [4]func(*CPU, uint16){
	(*CPU).setBC,
	(*CPU).setDE,
	(*CPU).setHL,
	func(c *CPU, v uint16) { c.sp = v },
}

// --- arithmetic and logic helpers ---

func (c *CPU) add(val uint8, cy uint8) {
	ans := uint16(c.reg.A) + uint16(val) + uint16(cy)
	c.setZSP(uint8(ans))
	c.setCarry(ans)
	if ((uint16(c.reg.A) ^ uint16(val) ^ ans) & 0x10) != 0 {
		c.flags.AC = 1
	} else {
		c.flags.AC = 0
	}
	c.reg.A = uint8(ans)
}

// sub runs subtraction as two's-complement addition, which yields the
// 8080's AC behavior for borrows out of bit 3.
func (c *CPU) sub(val uint8, cy uint8) {
	c.add(^val, flip(cy))
	c.flags.CY = flip(c.flags.CY)
}

func (c *CPU) and(val uint8) {
	ans := c.reg.A & val
	c.setZSP(ans)
	c.flags.CY = 0
	// ANA sets AC from the OR of bit 3 of the operands
	if ((c.reg.A | val) & 0x08) != 0 {
		c.flags.AC = 1
	} else {
		c.flags.AC = 0
	}
	c.reg.A = ans
}

func (c *CPU) xor(val uint8) {
	c.reg.A ^= val
	c.setZSP(c.reg.A)
	c.flags.CY = 0
	c.flags.AC = 0
}

func (c *CPU) or(val uint8) {
	c.reg.A |= val
	c.setZSP(c.reg.A)
	c.flags.CY = 0
	c.flags.AC = 0
}

func (c *CPU) cmp(val uint8) {
	a := c.reg.A
	c.sub(val, 0)
	c.reg.A = a
}

func (c *CPU) inr(val uint8) uint8 {
	val++
	c.setZSP(val)
	if (val & 0x0f) == 0 {
		c.flags.AC = 1
	} else {
		c.flags.AC = 0
	}
	return val
}

func (c *CPU) dcr(val uint8) uint8 {
	val--
	c.setZSP(val)
	if (val & 0x0f) == 0x0f {
		c.flags.AC = 0
	} else {
		c.flags.AC = 1
	}
	return val
}

func (c *CPU) dad(val uint16) {
	ans := uint32(c.getHL()) + uint32(val)
	c.setHL(uint16(ans))
	if ans > 0xffff {
		c.flags.CY = 1
	} else {
		c.flags.CY = 0
	}
}

func (c *CPU) alu(op uint8, val uint8) {
	switch op {
	case 0:
		c.add(val, 0)
	case 1:
		c.add(val, c.flags.CY)
	case 2:
		c.sub(val, 0)
	case 3:
		c.sub(val, c.flags.CY)
	case 4:
		c.and(val)
	case 5:
		c.xor(val)
	case 6:
		c.or(val)
	case 7:
		c.cmp(val)
	}
}

func (c *CPU) cond(code uint8) bool {
	switch code {
	case 0:
		return c.flags.Z == 0
	case 1:
		return c.flags.Z == 1
	case 2:
		return c.flags.CY == 0
	case 3:
		return c.flags.CY == 1
	case 4:
		return c.flags.P == 0
	case 5:
		return c.flags.P == 1
	case 6:
		return c.flags.S == 0
	default:
		return c.flags.S == 1
	}
}

// --- grouped handlers (operands decoded from the opcode) ---

func movGroup(c *CPU) uint16 {
	op := c.fetch()
	regSet[(op>>3)&7](c, regGet[op&7](c))
	return 1
}

func aluGroup(c *CPU) uint16 {
	op := c.fetch()
	c.alu((op>>3)&7, regGet[op&7](c))
	return 1
}

func aluImm(c *CPU) uint16 {
	c.alu((c.fetch()>>3)&7, c.getNextByte())
	return 2
}

func inrGroup(c *CPU) uint16 {
	i := (c.fetch() >> 3) & 7
	regSet[i](c, c.inr(regGet[i](c)))
	return 1
}

func dcrGroup(c *CPU) uint16 {
	i := (c.fetch() >> 3) & 7
	regSet[i](c, c.dcr(regGet[i](c)))
	return 1
}

func mviGroup(c *CPU) uint16 {
	regSet[(c.fetch()>>3)&7](c, c.getNextByte())
	return 2
}

func lxi(c *CPU) uint16 {
	pairSet[(c.fetch()>>4)&3](c, c.getNextTwoBytes())
	return 3
}

func inx(c *CPU) uint16 {
	i := (c.fetch() >> 4) & 3
	pairSet[i](c, pairGet[i](c)+1)
	return 1
}

func dcx(c *CPU) uint16 {
	i := (c.fetch() >> 4) & 3
	pairSet[i](c, pairGet[i](c)-1)
	return 1
}

func dadGroup(c *CPU) uint16 {
	c.dad(pairGet[(c.fetch()>>4)&3](c))
	return 1
}

// pushRP/popRP cover pairs B, D and H; PSW has its own handlers because
// slot 3 of the pair tables is SP, not the flags word.
func pushRP(c *CPU) uint16 {
	c.push(pairGet[(c.fetch()>>4)&3](c))
	return 1
}

func popRP(c *CPU) uint16 {
	pairSet[(c.fetch()>>4)&3](c, c.pop())
	return 1
}

func pushPSW(c *CPU) uint16 {
	c.push((uint16(c.reg.A) << 8) | uint16(c.flags.PSW()))
	return 1
}

func popPSW(c *CPU) uint16 {
	val := c.pop()
	c.reg.A = uint8(val >> 8)
	c.flags.SetPSW(uint8(val))
	return 1
}

// --- control flow ---

func jmp(c *CPU) uint16 {
	c.pc = c.getNextTwoBytes()
	return 0
}

func jmpCond(c *CPU) uint16 {
	if c.cond((c.fetch() >> 3) & 7) {
		return jmp(c)
	}
	return 3
}

func call(c *CPU) uint16 {
	target := c.getNextTwoBytes()
	c.push(c.pc + 3)
	c.pc = target
	return 0
}

func callCond(c *CPU) uint16 {
	if c.cond((c.fetch() >> 3) & 7) {
		c.cyc += 6
		return call(c)
	}
	return 3
}

func ret(c *CPU) uint16 {
	c.pc = c.pop()
	return 0
}

func retCond(c *CPU) uint16 {
	if c.cond((c.fetch() >> 3) & 7) {
		c.cyc += 6
		return ret(c)
	}
	return 1
}

func rst(c *CPU) uint16 {
	vector := uint16(c.fetch() & 0x38)
	c.push(c.pc + 1)
	c.pc = vector
	return 0
}

func pchl(c *CPU) uint16 {
	c.pc = c.getHL()
	return 0
}

// --- the irregular opcodes ---

func nop(c *CPU) uint16 {
	return 1
}

func staxB(c *CPU) uint16 {
	c.write(c.getBC(), c.reg.A)
	return 1
}

func staxD(c *CPU) uint16 {
	c.write(c.getDE(), c.reg.A)
	return 1
}

func ldaxB(c *CPU) uint16 {
	c.reg.A = c.read(c.getBC())
	return 1
}

func ldaxD(c *CPU) uint16 {
	c.reg.A = c.read(c.getDE())
	return 1
}

func sta(c *CPU) uint16 {
	c.write(c.getNextTwoBytes(), c.reg.A)
	return 3
}

func lda(c *CPU) uint16 {
	c.reg.A = c.read(c.getNextTwoBytes())
	return 3
}

func shld(c *CPU) uint16 {
	addr := c.getNextTwoBytes()
	c.write(addr, c.reg.L)
	c.write(addr+1, c.reg.H)
	return 3
}

func lhld(c *CPU) uint16 {
	addr := c.getNextTwoBytes()
	c.reg.L = c.read(addr)
	c.reg.H = c.read(addr + 1)
	return 3
}

func rlc(c *CPU) uint16 {
	c.flags.CY = c.reg.A >> 7
	c.reg.A = (c.reg.A << 1) | c.flags.CY
	return 1
}

func rrc(c *CPU) uint16 {
	c.flags.CY = c.reg.A & 1
	c.reg.A = (c.reg.A >> 1) | (c.flags.CY << 7)
	return 1
}

func ral(c *CPU) uint16 {
	cy := c.flags.CY
	c.flags.CY = c.reg.A >> 7
	c.reg.A = (c.reg.A << 1) | cy
	return 1
}

func rar(c *CPU) uint16 {
	cy := c.flags.CY
	c.flags.CY = c.reg.A & 1
	c.reg.A = (c.reg.A >> 1) | (cy << 7)
	return 1
}

func daa(c *CPU) uint16 {
	cy := c.flags.CY
	correction := uint8(0)
	lsb := c.reg.A & 0x0f
	msb := c.reg.A >> 4
	if lsb > 9 || c.flags.AC == 1 {
		correction += 0x06
	}
	if c.flags.CY == 1 || msb > 9 || (msb >= 9 && lsb > 9) {
		correction += 0x60
		cy = 1
	}
	c.add(correction, 0)
	c.flags.CY = cy
	return 1
}

func cma(c *CPU) uint16 {
	c.reg.A = ^c.reg.A
	return 1
}

func stc(c *CPU) uint16 {
	c.flags.CY = 1
	return 1
}

func cmc(c *CPU) uint16 {
	c.flags.CY ^= 1
	return 1
}

func xchg(c *CPU) uint16 {
	c.reg.H, c.reg.D = c.reg.D, c.reg.H
	c.reg.L, c.reg.E = c.reg.E, c.reg.L
	return 1
}

func xthl(c *CPU) uint16 {
	lo := c.read(c.sp)
	hi := c.read(c.sp + 1)
	c.write(c.sp, c.reg.L)
	c.write(c.sp+1, c.reg.H)
	c.reg.L = lo
	c.reg.H = hi
	return 1
}

func sphl(c *CPU) uint16 {
	c.sp = c.getHL()
	return 1
}

func in(c *CPU) uint16 {
	if c.ports != nil {
		c.reg.A = c.ports.PortIn(c.getNextByte())
	} else {
		c.reg.A = 0
	}
	return 2
}

func out(c *CPU) uint16 {
	if c.ports != nil {
		c.ports.PortOut(c.getNextByte(), c.reg.A)
	}
	return 2
}

func ei(c *CPU) uint16 {
	c.inte = true
	return 1
}

func di(c *CPU) uint16 {
	c.inte = false
	return 1
}

func hlt(c *CPU) uint16 {
	c.halt = true
	return 1
}
