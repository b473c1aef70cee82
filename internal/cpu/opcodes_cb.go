package cpu

import "fmt"

var cbRotateNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// buildExtended fills the CB table. Every byte decodes as
// bits 6-7 group, bits 3-5 operation or bit index, bits 0-2 operand.
func buildExtended(t *[256]instruction) {
	for op := 0; op < 256; op++ {
		o := byte(op)
		r := r8Names[o&7]
		y := (o >> 3) & 7
		switch o >> 6 {
		case 0:
			t[o] = instruction{mnemonic: cbRotateNames[y] + " " + r, exec: opCBRotate}
		case 1:
			t[o] = instruction{mnemonic: fmt.Sprintf("BIT %d,%s", y, r), exec: opCBBit}
		case 2:
			t[o] = instruction{mnemonic: fmt.Sprintf("RES %d,%s", y, r), exec: opCBRes}
		case 3:
			t[o] = instruction{mnemonic: fmt.Sprintf("SET %d,%s", y, r), exec: opCBSet}
		}
	}
}

// Handler costs below exclude the 4 cycles of the prefix byte.

func cbCost(op byte) int {
	if op&7 == 6 {
		return 12
	}
	return 4
}

func opCBRotate(c *CPU, op byte) error {
	c.lastOpCycles = cbCost(op)
	v, err := c.getR8(op)
	if err != nil {
		return err
	}
	var carry bool
	switch (op >> 3) & 7 {
	case 0:
		v, carry = rlc(v)
	case 1:
		v, carry = rrc(v)
	case 2:
		v, carry = rl(v, c.FlagC())
	case 3:
		v, carry = rr(v, c.FlagC())
	case 4:
		v, carry = sla(v)
	case 5:
		v, carry = sra(v)
	case 6:
		v = swap(v)
	case 7:
		v, carry = srl(v)
	}
	if err := c.setR8(op, v); err != nil {
		return err
	}
	c.setZNHC(v == 0, false, false, carry)
	return nil
}

func opCBBit(c *CPU, op byte) error {
	c.lastOpCycles = 4
	if op&7 == 6 {
		c.lastOpCycles = 8
	}
	v, err := c.getR8(op)
	if err != nil {
		return err
	}
	c.SetFlagZ(!bit(v, (op>>3)&7))
	c.SetFlagN(false)
	c.SetFlagH(true)
	return nil
}

func opCBRes(c *CPU, op byte) error {
	c.lastOpCycles = cbCost(op)
	v, err := c.getR8(op)
	if err != nil {
		return err
	}
	return c.setR8(op, resetBit(v, (op>>3)&7))
}

func opCBSet(c *CPU, op byte) error {
	c.lastOpCycles = cbCost(op)
	v, err := c.getR8(op)
	if err != nil {
		return err
	}
	return c.setR8(op, setBit(v, (op>>3)&7))
}
