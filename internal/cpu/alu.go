package cpu

// The ALU functions are pure: they take operands (and the incoming flags
// where an instruction preserves some of them) and return the result with a
// complete F value. Callers assign both.

// flags packs the four outcomes into the F layout. The low nibble is always
// zero.
func flags(z, n, h, c bool) byte {
	var f byte
	if z {
		f |= flagZ
	}
	if n {
		f |= flagN
	}
	if h {
		f |= flagH
	}
	if c {
		f |= flagC
	}
	return f
}

// add8 covers ADD and ADC.
func add8(a, b byte, carryIn bool) (byte, byte) {
	ci := boolBit(carryIn)
	sum := uint16(a) + uint16(b) + uint16(ci)
	res := byte(sum)
	h := ((a&0x0F)+(b&0x0F)+ci)&0x10 != 0
	return res, flags(res == 0, false, h, sum > 0xFF)
}

// sub8 covers SUB, SBC and CP (which discards the result).
func sub8(a, b byte, carryIn bool) (byte, byte) {
	ci := boolBit(carryIn)
	res := a - b - ci
	h := a&0x0F < b&0x0F+ci
	cy := uint16(a) < uint16(b)+uint16(ci)
	return res, flags(res == 0, true, h, cy)
}

func and8(a, b byte) (byte, byte) {
	res := a & b
	return res, flags(res == 0, false, true, false)
}

func xor8(a, b byte) (byte, byte) {
	res := a ^ b
	return res, flags(res == 0, false, false, false)
}

func or8(a, b byte) (byte, byte) {
	res := a | b
	return res, flags(res == 0, false, false, false)
}

// inc8 and dec8 keep the incoming carry.
func inc8(v, f byte) (byte, byte) {
	res := v + 1
	return res, flags(res == 0, false, v&0x0F == 0x0F, f&flagC != 0)
}

func dec8(v, f byte) (byte, byte) {
	res := v - 1
	return res, flags(res == 0, true, v&0x0F == 0x00, f&flagC != 0)
}

// add16 is ADD HL,rr: Z kept, N cleared, H from bit 11, C from bit 15.
func add16(a, b uint16, f byte) (uint16, byte) {
	sum := uint32(a) + uint32(b)
	h := (a&0x0FFF)+(b&0x0FFF) > 0x0FFF
	return uint16(sum), flags(f&flagZ != 0, false, h, sum > 0xFFFF)
}

// addSPOffset is shared by ADD SP,e and LD HL,SP+e. The offset is signed but
// H and C come from unsigned addition on the low byte (bits 3 and 7).
func addSPOffset(sp uint16, e byte) (uint16, byte) {
	res := sp + uint16(int8(e))
	h := (sp&0x000F)+uint16(e&0x0F) > 0x000F
	cy := (sp&0x00FF)+uint16(e) > 0x00FF
	return res, flags(false, false, h, cy)
}

// daa adjusts A to packed BCD after an addition (N clear) or a subtraction
// (N set). N is kept, H is cleared.
func daa(a, f byte) (byte, byte) {
	n, h, c := f&flagN != 0, f&flagH != 0, f&flagC != 0
	var adj byte
	if !n {
		if c || a > 0x99 {
			adj |= 0x60
			c = true
		}
		if h || a&0x0F > 0x09 {
			adj |= 0x06
		}
		a += adj
	} else {
		if c {
			adj |= 0x60
		}
		if h {
			adj |= 0x06
		}
		a -= adj
	}
	return a, flags(a == 0, n, false, c)
}

// Rotates and shifts return the result and the bit that fell out, which
// becomes the new carry. Through-carry forms take the old carry as input.

func rlc(v byte) (byte, bool) { return v<<1 | v>>7, bit(v, 7) }

func rrc(v byte) (byte, bool) { return v>>1 | v<<7, bit(v, 0) }

func rl(v byte, carryIn bool) (byte, bool) { return v<<1 | boolBit(carryIn), bit(v, 7) }

func rr(v byte, carryIn bool) (byte, bool) { return v>>1 | boolBit(carryIn)<<7, bit(v, 0) }

func sla(v byte) (byte, bool) { return v << 1, bit(v, 7) }

// sra keeps bit 7.
func sra(v byte) (byte, bool) { return v>>1 | v&0x80, bit(v, 0) }

// srl shifts a zero into bit 7.
func srl(v byte) (byte, bool) { return v >> 1, bit(v, 0) }

func swap(v byte) byte { return v<<4 | v>>4 }
