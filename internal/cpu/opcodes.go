package cpu

import "fmt"

// instruction is one slot of a dispatch table. exec is never nil: slots
// without a real instruction hold opUnimplemented.
type instruction struct {
	mnemonic string
	exec     func(c *CPU, op byte) error
	illegal  bool
}

// The two tables are filled once by init and only read afterwards, so every
// CPU instance can share them.
var (
	primary  [256]instruction
	extended [256]instruction
)

// Opcodes that do not exist on the SM83.
var illegalOpcodes = []byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func init() {
	buildPrimary(&primary)
	buildExtended(&extended)
	mustCover("primary", &primary)
	mustCover("CB", &extended)
}

func mustCover(name string, t *[256]instruction) {
	for op, ins := range t {
		if ins.exec == nil || ins.mnemonic == "" {
			panic(fmt.Sprintf("cpu: %s table slot %#02x has no handler", name, op))
		}
	}
}

func unimplemented() instruction {
	return instruction{mnemonic: "-", exec: opUnimplemented, illegal: true}
}

func buildPrimary(t *[256]instruction) {
	set := func(op byte, mnemonic string, exec func(*CPU, byte) error) {
		t[op] = instruction{mnemonic: mnemonic, exec: exec}
	}

	for _, op := range illegalOpcodes {
		t[op] = unimplemented()
	}

	// 0x00-0x3F: the regular columns first
	for p := byte(0); p < 4; p++ {
		hi := p << 4
		set(hi|0x01, "LD "+pairNames[p]+",n16", opLDrrnn)
		set(hi|0x03, "INC "+pairNames[p], opINCrr)
		set(hi|0x09, "ADD HL,"+pairNames[p], opADDHLrr)
		set(hi|0x0B, "DEC "+pairNames[p], opDECrr)
	}
	for r := byte(0); r < 8; r++ {
		set(r<<3|0x04, "INC "+r8Names[r], opINCr)
		set(r<<3|0x05, "DEC "+r8Names[r], opDECr)
		set(r<<3|0x06, "LD "+r8Names[r]+",n8", opLDrn)
	}
	for cc := byte(0); cc < 4; cc++ {
		set(0x20|cc<<3, "JR "+condNames[cc]+",e8", opJRcc)
	}

	set(0x00, "NOP", opNOP)
	set(0x02, "LD (BC),A", opLDindA)
	set(0x12, "LD (DE),A", opLDindA)
	set(0x22, "LD (HL+),A", opLDindA)
	set(0x32, "LD (HL-),A", opLDindA)
	set(0x0A, "LD A,(BC)", opLDAind)
	set(0x1A, "LD A,(DE)", opLDAind)
	set(0x2A, "LD A,(HL+)", opLDAind)
	set(0x3A, "LD A,(HL-)", opLDAind)
	set(0x07, "RLCA", opRotateA)
	set(0x0F, "RRCA", opRotateA)
	set(0x17, "RLA", opRotateA)
	set(0x1F, "RRA", opRotateA)
	set(0x08, "LD (n16),SP", opLDnnSP)
	set(0x10, "STOP", opSTOP)
	set(0x18, "JR e8", opJR)
	set(0x27, "DAA", opDAA)
	set(0x2F, "CPL", opCPL)
	set(0x37, "SCF", opSCF)
	set(0x3F, "CCF", opCCF)

	// 0x40-0x7F: LD r,r' with HALT in the LD (HL),(HL) slot
	for op := 0x40; op <= 0x7F; op++ {
		o := byte(op)
		set(o, "LD "+r8Names[(o>>3)&7]+","+r8Names[o&7], opLDrr)
	}
	set(0x76, "HALT", opHALT)

	// 0x80-0xBF: ALU A,r; 0xC6-0xFE: ALU A,n8
	for op := 0x80; op <= 0xBF; op++ {
		o := byte(op)
		set(o, aluNames[(o>>3)&7]+r8Names[o&7], opALUr)
	}
	for k := byte(0); k < 8; k++ {
		set(0xC6|k<<3, aluNames[k]+"n8", opALUn)
		set(0xC7|k<<3, fmt.Sprintf("RST %02XH", k<<3), opRST)
	}

	for cc := byte(0); cc < 4; cc++ {
		set(0xC0|cc<<3, "RET "+condNames[cc], opRETcc)
		set(0xC2|cc<<3, "JP "+condNames[cc]+",n16", opJPcc)
		set(0xC4|cc<<3, "CALL "+condNames[cc]+",n16", opCALLcc)
	}
	for p := byte(0); p < 4; p++ {
		set(0xC1|p<<4, "POP "+stackPairNames[p], opPOP)
		set(0xC5|p<<4, "PUSH "+stackPairNames[p], opPUSH)
	}

	set(0xC3, "JP n16", opJP)
	set(0xC9, "RET", opRET)
	set(0xCB, "PREFIX CB", opPrefixCB)
	set(0xCD, "CALL n16", opCALL)
	set(0xD9, "RETI", opRETI)
	set(0xE0, "LDH (n8),A", opLDH)
	set(0xF0, "LDH A,(n8)", opLDH)
	set(0xE2, "LD (C),A", opLDHC)
	set(0xF2, "LD A,(C)", opLDHC)
	set(0xE8, "ADD SP,e8", opADDSPe)
	set(0xF8, "LD HL,SP+e8", opLDHLSPe)
	set(0xE9, "JP HL", opJPHL)
	set(0xF9, "LD SP,HL", opLDSPHL)
	set(0xEA, "LD (n16),A", opLDnnA)
	set(0xFA, "LD A,(n16)", opLDnnA)
	set(0xF3, "DI", opDI)
	set(0xFB, "EI", opEI)
}

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

// Mnemonic names a primary opcode. For 0xCB pass the following byte as cb.
func Mnemonic(op, cb byte) string {
	if op == 0xCB {
		return extended[cb].mnemonic
	}
	return primary[op].mnemonic
}

// Implemented reports whether a primary opcode has a real handler.
func Implemented(op byte) bool { return !primary[op].illegal }

func opUnimplemented(c *CPU, op byte) error {
	c.lastOpCycles = 0
	return &InstructionError{PC: c.lastPC, Opcode: op, Prefixed: c.prefixed}
}

// opPrefixCB fetches the second byte and runs the CB handler. The prefix
// itself costs 4 cycles on top of the handler's.
func opPrefixCB(c *CPU, _ byte) error {
	sub, err := c.fetch8()
	if err != nil {
		c.lastOpCycles = 4
		return err
	}
	c.lastCB, c.prefixed = sub, true
	err = extended[sub].exec(c, sub)
	c.lastOpCycles += 4
	return err
}
