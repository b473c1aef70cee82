package cpu

// Flag bits in F. The low nibble of F is always zero.
const (
	flagZ byte = 1 << 7
	flagN byte = 1 << 6
	flagH byte = 1 << 5
	flagC byte = 1 << 4
)

// Registers is the SM83 register file. AF, BC, DE and HL are views over the
// 8-bit fields, not separate storage.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16
}

func (r Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

func (r *Registers) SetAF(v uint16) { r.A = byte(v >> 8); r.F = byte(v) & 0xF0 }
func (r *Registers) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }
func (r *Registers) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }
func (r *Registers) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

// SetF writes the flag register, dropping the low nibble.
func (r *Registers) SetF(v byte) { r.F = v & 0xF0 }

func (r Registers) FlagZ() bool { return r.F&flagZ != 0 }
func (r Registers) FlagN() bool { return r.F&flagN != 0 }
func (r Registers) FlagH() bool { return r.F&flagH != 0 }
func (r Registers) FlagC() bool { return r.F&flagC != 0 }

func (r *Registers) SetFlagZ(on bool) { r.setFlag(flagZ, on) }
func (r *Registers) SetFlagN(on bool) { r.setFlag(flagN, on) }
func (r *Registers) SetFlagH(on bool) { r.setFlag(flagH, on) }
func (r *Registers) SetFlagC(on bool) { r.setFlag(flagC, on) }

func (r *Registers) setFlag(mask byte, on bool) {
	if on {
		r.F |= mask
	} else {
		r.F &^= mask
	}
}

func (r *Registers) setZNHC(z, n, h, c bool) { r.F = flags(z, n, h, c) }

// reg8 returns the register selected by the 3-bit operand field used across
// the instruction set: B C D E H L (HL) A. Index 6 is memory and has no
// register; callers go through getR8/setR8.
func (r *Registers) reg8(idx byte) *byte {
	switch idx & 7 {
	case 0:
		return &r.B
	case 1:
		return &r.C
	case 2:
		return &r.D
	case 3:
		return &r.E
	case 4:
		return &r.H
	case 5:
		return &r.L
	case 7:
		return &r.A
	}
	return nil
}

// pair returns the register pair selected by bits 4-5 of the LD/INC/DEC/ADD rr family:
// BC DE HL SP.
func (r Registers) pair(idx byte) uint16 {
	switch idx & 3 {
	case 0:
		return r.BC()
	case 1:
		return r.DE()
	case 2:
		return r.HL()
	}
	return r.SP
}

func (r *Registers) setPair(idx byte, v uint16) {
	switch idx & 3 {
	case 0:
		r.SetBC(v)
	case 1:
		r.SetDE(v)
	case 2:
		r.SetHL(v)
	default:
		r.SP = v
	}
}

// stackPair is the PUSH/POP variant of pair where index 3 is AF.
func (r Registers) stackPair(idx byte) uint16 {
	if idx&3 == 3 {
		return r.AF()
	}
	return r.pair(idx)
}

func (r *Registers) setStackPair(idx byte, v uint16) {
	if idx&3 == 3 {
		r.SetAF(v)
		return
	}
	r.setPair(idx, v)
}

// cond evaluates the condition field (bits 3-4) of JR/JP/CALL/RET cc:
// NZ Z NC C.
func (r Registers) cond(idx byte) bool {
	switch idx & 3 {
	case 0:
		return !r.FlagZ()
	case 1:
		return r.FlagZ()
	case 2:
		return !r.FlagC()
	}
	return r.FlagC()
}

var (
	r8Names        = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
	condNames      = [4]string{"NZ", "Z", "NC", "C"}
)
