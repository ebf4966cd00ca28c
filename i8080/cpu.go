// Package i8080 implements an Intel 8080 interpreter. The CPU owns no
// memory or I/O of its own: both are injected at construction so that any
// number of independent cores can run side by side.
package i8080

// MemoryBus is the CPU's view of the address space. Implementations decide
// what lives where; the CPU itself never distinguishes ROM from RAM.
type MemoryBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// PortBus handles the IN and OUT instructions. A nil PortBus behaves like a
// floating bus: IN reads 0x00 and OUT is discarded.
type PortBus interface {
	PortIn(port uint8) uint8
	PortOut(port uint8, val uint8)
}

type Registers struct {
	A uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8
}

// State is a fixed-size capture of everything the CPU carries between
// instructions. All fields are plain integers so the struct can be written
// with encoding/binary as-is.
type State struct {
	A, F, B, C, D, E, H, L uint8
	PC, SP                 uint16
	Halt                   uint8
	IntEnable              uint8
	Cycles                 uint64
}

type CPU struct {
	mem   MemoryBus
	ports PortBus
	reg   Registers
	flags Flags
	pc    uint16
	sp    uint16
	halt  bool
	inte  bool
	cyc   uint64
}

func NewCPU(mem MemoryBus, ports PortBus) *CPU {
	return &CPU{mem: mem, ports: ports}
}

// Reset returns the CPU to its power-on state with execution starting at
// pc. The memory and port wiring is untouched.
func (c *CPU) Reset(pc uint16) {
	c.reg = Registers{}
	c.flags = Flags{}
	c.pc = pc
	c.sp = 0
	c.halt = false
	c.inte = false
	c.cyc = 0
}

// Execute runs a single instruction and returns its cycle cost. A halted
// CPU executes nothing and returns 0.
func (c *CPU) Execute() int {
	if c.halt {
		return 0
	}
	before := c.cyc
	opcode := c.fetch()
	c.cyc += uint64(CYCLES[opcode])
	c.pc += INSTRUCTIONS[opcode](c)
	return int(c.cyc - before)
}

// Run executes instructions until at least maxCycles have elapsed or the
// CPU halts, and returns the cycles actually executed.
func (c *CPU) Run(maxCycles int) int {
	executed := 0
	for executed < maxCycles && !c.halt {
		executed += c.Execute()
	}
	return executed
}

// Interrupt delivers an RST-style interrupt to the given vector. Delivery
// only happens while interrupts are enabled; it clears the halt flag,
// pushes the resume address and disables further interrupts until the
// program executes EI again. Reports whether the interrupt was taken.
func (c *CPU) Interrupt(vector uint16) bool {
	if !c.inte {
		return false
	}
	c.inte = false
	c.halt = false
	c.push(c.pc)
	c.pc = vector
	c.cyc += 11
	return true
}

func (c *CPU) Halted() bool { return c.halt }

func (c *CPU) Cycles() uint64 { return c.cyc }

func (c *CPU) PC() uint16 { return c.pc }

func (c *CPU) SP() uint16 { return c.sp }

func (c *CPU) Registers() Registers { return c.reg }

// State captures the complete register file for serialization.
func (c *CPU) State() State {
	s := State{
		A: c.reg.A, F: c.flags.PSW(),
		B: c.reg.B, C: c.reg.C,
		D: c.reg.D, E: c.reg.E,
		H: c.reg.H, L: c.reg.L,
		PC: c.pc, SP: c.sp,
		Cycles: c.cyc,
	}
	if c.halt {
		s.Halt = 1
	}
	if c.inte {
		s.IntEnable = 1
	}
	return s
}

// SetState overwrites the register file from a previously captured State.
func (c *CPU) SetState(s State) {
	c.reg = Registers{A: s.A, B: s.B, C: s.C, D: s.D, E: s.E, H: s.H, L: s.L}
	c.flags.SetPSW(s.F)
	c.pc = s.PC
	c.sp = s.SP
	c.halt = s.Halt != 0
	c.inte = s.IntEnable != 0
	c.cyc = s.Cycles
}

func (c *CPU) read(addr uint16) uint8 {
	return c.mem.Read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.mem.Write(addr, val)
}

func (c *CPU) fetch() uint8 {
	return c.read(c.pc)
}

func (c *CPU) getNextByte() uint8 {
	return c.read(c.pc + 1)
}

func (c *CPU) getNextTwoBytes() uint16 {
	return (uint16(c.read(c.pc+2)) << 8) | uint16(c.read(c.pc+1))
}

func (c *CPU) getBC() uint16 {
	return (uint16(c.reg.B) << 8) | uint16(c.reg.C)
}

func (c *CPU) getDE() uint16 {
	return (uint16(c.reg.D) << 8) | uint16(c.reg.E)
}

func (c *CPU) getHL() uint16 {
	return (uint16(c.reg.H) << 8) | uint16(c.reg.L)
}

func (c *CPU) setBC(val uint16) {
	c.reg.B = uint8(val >> 8)
	c.reg.C = uint8(val)
}

func (c *CPU) setDE(val uint16) {
	c.reg.D = uint8(val >> 8)
	c.reg.E = uint8(val)
}

func (c *CPU) setHL(val uint16) {
	c.reg.H = uint8(val >> 8)
	c.reg.L = uint8(val)
}

// push stores a word on the stack, high byte first.
func (c *CPU) push(val uint16) {
	c.write(c.sp-1, uint8(val>>8))
	c.write(c.sp-2, uint8(val))
	c.sp -= 2
}

func (c *CPU) pop() uint16 {
	val := (uint16(c.read(c.sp+1)) << 8) | uint16(c.read(c.sp))
	c.sp += 2
	return val
}
