package i8080

// CYCLES is the base cost per opcode. Conditional calls and returns add 6
// more on the taken path in their handlers.
var CYCLES = [256]int{
	04, 10, 07, 05, 05, 05, 07, 04, 04, 10, 07, 05, 05, 05, 07, 04,
	04, 10, 07, 05, 05, 05, 07, 04, 04, 10, 07, 05, 05, 05, 07, 04,
	04, 10, 16, 05, 05, 05, 07, 04, 04, 10, 16, 05, 05, 05, 07, 04,
	04, 10, 13, 05, 10, 10, 10, 04, 04, 10, 13, 05, 05, 05, 07, 04,
	05, 05, 05, 05, 05, 05, 07, 05, 05, 05, 05, 05, 05, 05, 07, 05,
	05, 05, 05, 05, 05, 05, 07, 05, 05, 05, 05, 05, 05, 05, 07, 05,
	05, 05, 05, 05, 05, 05, 07, 05, 05, 05, 05, 05, 05, 05, 07, 05,
	07, 07, 07, 07, 07, 07, 07, 07, 05, 05, 05, 05, 05, 05, 07, 05,
	04, 04, 04, 04, 04, 04, 07, 04, 04, 04, 04, 04, 04, 04, 07, 04,
	04, 04, 04, 04, 04, 04, 07, 04, 04, 04, 04, 04, 04, 04, 07, 04,
	04, 04, 04, 04, 04, 04, 07, 04, 04, 04, 04, 04, 04, 04, 07, 04,
	04, 04, 04, 04, 04, 04, 07, 04, 04, 04, 04, 04, 04, 04, 07, 04,
	05, 10, 10, 10, 11, 11, 07, 11, 05, 10, 10, 10, 11, 17, 07, 11,
	05, 10, 10, 10, 11, 11, 07, 11, 05, 10, 10, 10, 11, 17, 07, 11,
	05, 10, 10, 18, 11, 11, 07, 11, 05, 05, 10, 04, 11, 17, 07, 11,
	05, 10, 10, 04, 11, 11, 07, 11, 05, 05, 10, 04, 11, 17, 07, 11}

// INSTRUCTIONS dispatches each opcode to its handler. Undocumented opcodes
// fall back to their documented aliases from the published opcode table
// (0x08-style NOPs, 0xCB as JMP, 0xD9 as RET, 0xDD/0xED/0xFD as CALL);
// RIM and SIM (0x20/0x30) are no-ops on this board.
var INSTRUCTIONS = [256]func(*CPU) uint16{
	0x00: nop, 0x01: lxi, 0x02: staxB, 0x03: inx,
	0x04: inrGroup, 0x05: dcrGroup, 0x06: mviGroup, 0x07: rlc,
	0x08: nop, 0x09: dadGroup, 0x0a: ldaxB, 0x0b: dcx,
	0x0c: inrGroup, 0x0d: dcrGroup, 0x0e: mviGroup, 0x0f: rrc,
	0x10: nop, 0x11: lxi, 0x12: staxD, 0x13: inx,
	0x14: inrGroup, 0x15: dcrGroup, 0x16: mviGroup, 0x17: ral,
	0x18: nop, 0x19: dadGroup, 0x1a: ldaxD, 0x1b: dcx,
	0x1c: inrGroup, 0x1d: dcrGroup, 0x1e: mviGroup, 0x1f: rar,
	0x20: nop, 0x21: lxi, 0x22: shld, 0x23: inx,
	0x24: inrGroup, 0x25: dcrGroup, 0x26: mviGroup, 0x27: daa,
	0x28: nop, 0x29: dadGroup, 0x2a: lhld, 0x2b: dcx,
	0x2c: inrGroup, 0x2d: dcrGroup, 0x2e: mviGroup, 0x2f: cma,
	0x30: nop, 0x31: lxi, 0x32: sta, 0x33: inx,
	0x34: inrGroup, 0x35: dcrGroup, 0x36: mviGroup, 0x37: stc,
	0x38: nop, 0x39: dadGroup, 0x3a: lda, 0x3b: dcx,
	0x3c: inrGroup, 0x3d: dcrGroup, 0x3e: mviGroup, 0x3f: cmc,

	0xc0: retCond, 0xc1: popRP, 0xc2: jmpCond, 0xc3: jmp,
	0xc4: callCond, 0xc5: pushRP, 0xc6: aluImm, 0xc7: rst,
	0xc8: retCond, 0xc9: ret, 0xca: jmpCond, 0xcb: jmp,
	0xcc: callCond, 0xcd: call, 0xce: aluImm, 0xcf: rst,
	0xd0: retCond, 0xd1: popRP, 0xd2: jmpCond, 0xd3: out,
	0xd4: callCond, 0xd5: pushRP, 0xd6: aluImm, 0xd7: rst,
	0xd8: retCond, 0xd9: ret, 0xda: jmpCond, 0xdb: in,
	0xdc: callCond, 0xdd: call, 0xde: aluImm, 0xdf: rst,
	0xe0: retCond, 0xe1: popRP, 0xe2: jmpCond, 0xe3: xthl,
	0xe4: callCond, 0xe5: pushRP, 0xe6: aluImm, 0xe7: rst,
	0xe8: retCond, 0xe9: pchl, 0xea: jmpCond, 0xeb: xchg,
	0xec: callCond, 0xed: call, 0xee: aluImm, 0xef: rst,
	0xf0: retCond, 0xf1: popPSW, 0xf2: jmpCond, 0xf3: di,
	0xf4: callCond, 0xf5: pushPSW, 0xf6: aluImm, 0xf7: rst,
	0xf8: retCond, 0xf9: sphl, 0xfa: jmpCond, 0xfb: ei,
	0xfc: callCond, 0xfd: call, 0xfe: aluImm, 0xff: rst,
}

func init() {
	for op := 0x40; op < 0x80; op++ {
		INSTRUCTIONS[op] = movGroup
	}
	INSTRUCTIONS[0x76] = hlt
	for op := 0x80; op < 0xc0; op++ {
		INSTRUCTIONS[op] = aluGroup
	}
}
