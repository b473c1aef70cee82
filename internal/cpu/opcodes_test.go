package cpu

import (
	"errors"
	"testing"
)

func TestOpcodes_TableCoverage(t *testing.T) {
	illegal := map[byte]bool{}
	for _, op := range illegalOpcodes {
		illegal[op] = true
	}
	var missing int
	for op := 0; op < 256; op++ {
		if primary[op].exec == nil || extended[op].exec == nil {
			t.Fatalf("slot %02X has nil handler", op)
		}
		if primary[op].illegal != illegal[byte(op)] {
			t.Fatalf("opcode %02X illegal=%t", op, primary[op].illegal)
		}
		if !Implemented(byte(op)) {
			missing++
		}
		if extended[op].illegal {
			t.Fatalf("CB %02X is not implemented", op)
		}
	}
	if missing != 11 {
		t.Fatalf("unimplemented primary opcodes got %d want 11", missing)
	}
}

func TestOpcodes_Mnemonics(t *testing.T) {
	cases := []struct {
		op, cb byte
		want   string
	}{
		{0x00, 0, "NOP"},
		{0x41, 0, "LD B,C"},
		{0x86, 0, "ADD A,(HL)"},
		{0x96, 0, "SUB (HL)"},
		{0x03, 0, "INC BC"},
		{0x20, 0, "JR NZ,e8"},
		{0x76, 0, "HALT"},
		{0xDF, 0, "RST 18H"},
		{0xF1, 0, "POP AF"},
		{0xCB, 0x7E, "BIT 7,(HL)"},
		{0xCB, 0x37, "SWAP A"},
		{0xCB, 0xFF, "SET 7,A"},
	}
	for _, tc := range cases {
		if got := Mnemonic(tc.op, tc.cb); got != tc.want {
			t.Fatalf("Mnemonic(%02X,%02X) = %q want %q", tc.op, tc.cb, got, tc.want)
		}
	}
}

// refCB is a second, table-free model of the CB group used to check the
// handlers. It returns the stored value, the expected F and whether the
// operand is written back.
func refCB(op, v byte, f byte) (byte, byte, bool) {
	y := int(op>>3) & 7
	x := int(v)
	carryIn := 0
	if f&flagC != 0 {
		carryIn = 1
	}
	var res, cy int
	switch op >> 6 {
	case 1:
		z := x>>y&1 == 0
		out := f&flagC | flagH
		if z {
			out |= flagZ
		}
		return v, out, false
	case 2:
		return byte(x &^ (1 << y)), f, true
	case 3:
		return byte(x | 1<<y), f, true
	}
	switch y {
	case 0: // RLC
		res, cy = (x<<1|x>>7)&0xFF, x>>7
	case 1: // RRC
		res, cy = (x>>1|x<<7)&0xFF, x&1
	case 2: // RL
		res, cy = (x<<1|carryIn)&0xFF, x>>7
	case 3: // RR
		res, cy = x>>1|carryIn<<7, x&1
	case 4: // SLA
		res, cy = (x<<1)&0xFF, x>>7
	case 5: // SRA
		res, cy = x>>1|x&0x80, x&1
	case 6: // SWAP
		res = (x<<4|x>>4)&0xFF
	case 7: // SRL
		res, cy = x>>1, x&1
	}
	var out byte
	if res == 0 {
		out |= flagZ
	}
	if cy != 0 {
		out |= flagC
	}
	return byte(res), out, true
}

func TestOpcodes_CBMatchesReference(t *testing.T) {
	values := []byte{0x00, 0x01, 0x0F, 0x10, 0x80, 0x81, 0xA5, 0xFF}
	for sub := 0; sub < 256; sub++ {
		op := byte(sub)
		for _, v := range values {
			for _, f := range []byte{0x00, flagC, flagZ | flagN | flagH | flagC} {
				c, m := newCPUWithProgram(0xCB, op)
				c.A, c.B, c.C, c.D, c.E, c.H, c.L = 0x11, 0x22, 0x33, 0x44, 0x55, 0xC0, 0x10
				c.F = f
				if err := c.setR8(op, v); err != nil {
					t.Fatal(err)
				}
				before := c.Registers

				cyc := step(t, c)
				wantRes, wantF, writes := refCB(op, v, f)

				got, _ := c.getR8(op)
				if writes && got != wantRes || !writes && got != v {
					t.Fatalf("%s on %02X F=%02X stored %02X want %02X", Mnemonic(0xCB, op), v, f, got, wantRes)
				}
				if c.F != wantF {
					t.Fatalf("%s on %02X F=%02X flags %02X want %02X", Mnemonic(0xCB, op), v, f, c.F, wantF)
				}

				wantCyc := 8
				if op&7 == 6 {
					wantCyc = 16
					if op>>6 == 1 {
						wantCyc = 12
					}
				}
				if cyc != wantCyc {
					t.Fatalf("%s cycles got %d want %d", Mnemonic(0xCB, op), cyc, wantCyc)
				}

				// nothing but the operand, F and PC moves
				after := c.Registers
				after.F, before.F = 0, 0
				after.PC, before.PC = 0, 0
				if op&7 != 6 {
					*after.reg8(op) = 0
					*before.reg8(op) = 0
				}
				if after != before {
					t.Fatalf("%s touched other registers: %+v -> %+v", Mnemonic(0xCB, op), before, after)
				}
				if op&7 != 6 && m.writes != 0 {
					t.Fatalf("%s wrote memory", Mnemonic(0xCB, op))
				}
			}
		}
	}
}

func TestOpcodes_UnimplementedReportsByte(t *testing.T) {
	for _, op := range illegalOpcodes {
		c, m := newCPUWithProgram(0x00, op)
		step(t, c)
		before := c.Registers
		writes := m.writes

		err := c.Tick()
		var ie *InstructionError
		if !errors.As(err, &ie) || !errors.Is(err, ErrInstructionNotImplemented) {
			t.Fatalf("opcode %02X: got %v", op, err)
		}
		if ie.Opcode != op || ie.PC != 0x0001 || ie.Prefixed {
			t.Fatalf("opcode %02X: error %+v", op, ie)
		}
		before.PC = 0x0002
		if c.Registers != before || m.writes != writes {
			t.Fatalf("opcode %02X changed state: %+v", op, c.Registers)
		}
		if c.LastOpCycles() != 0 || c.TotalCycles() != 4 {
			t.Fatalf("opcode %02X charged cycles: last=%d total=%d", op, c.LastOpCycles(), c.TotalCycles())
		}
	}
}
