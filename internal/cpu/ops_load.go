package cpu

// 8-bit and 16-bit loads. Handlers take the opcode so one function can
// serve every register combination of a row.

func opLDrr(c *CPU, op byte) error {
	c.lastOpCycles = 4
	src, dst := op&7, (op>>3)&7
	if src == 6 || dst == 6 {
		c.lastOpCycles = 8
	}
	v, err := c.getR8(src)
	if err != nil {
		return err
	}
	return c.setR8(dst, v)
}

func opLDrn(c *CPU, op byte) error {
	dst := (op >> 3) & 7
	c.lastOpCycles = 8
	if dst == 6 {
		c.lastOpCycles = 12
	}
	n, err := c.fetch8()
	if err != nil {
		return err
	}
	return c.setR8(dst, n)
}

func opLDrrnn(c *CPU, op byte) error {
	c.lastOpCycles = 12
	nn, err := c.fetch16()
	if err != nil {
		return err
	}
	c.setPair(op>>4, nn)
	return nil
}

// indirectAddr resolves the (BC) (DE) (HL+) (HL-) column used by 0x02/0x0A
// and friends, applying the HL post-increment or post-decrement.
func (c *CPU) indirectAddr(op byte) uint16 {
	switch op >> 4 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		hl := c.HL()
		c.SetHL(hl + 1)
		return hl
	default:
		hl := c.HL()
		c.SetHL(hl - 1)
		return hl
	}
}

func opLDindA(c *CPU, op byte) error {
	c.lastOpCycles = 8
	return c.write8(c.indirectAddr(op), c.A)
}

func opLDAind(c *CPU, op byte) error {
	c.lastOpCycles = 8
	v, err := c.read8(c.indirectAddr(op))
	if err != nil {
		return err
	}
	c.A = v
	return nil
}

func opLDnnSP(c *CPU, _ byte) error {
	c.lastOpCycles = 20
	nn, err := c.fetch16()
	if err != nil {
		return err
	}
	return c.write16(nn, c.SP)
}

// opLDH is LDH (n8),A (0xE0) and LDH A,(n8) (0xF0).
func opLDH(c *CPU, op byte) error {
	c.lastOpCycles = 12
	n, err := c.fetch8()
	if err != nil {
		return err
	}
	addr := 0xFF00 | uint16(n)
	if op == 0xE0 {
		return c.write8(addr, c.A)
	}
	v, err := c.read8(addr)
	if err != nil {
		return err
	}
	c.A = v
	return nil
}

// opLDHC is LD (C),A (0xE2) and LD A,(C) (0xF2).
func opLDHC(c *CPU, op byte) error {
	c.lastOpCycles = 8
	addr := 0xFF00 | uint16(c.C)
	if op == 0xE2 {
		return c.write8(addr, c.A)
	}
	v, err := c.read8(addr)
	if err != nil {
		return err
	}
	c.A = v
	return nil
}

// opLDnnA is LD (n16),A (0xEA) and LD A,(n16) (0xFA).
func opLDnnA(c *CPU, op byte) error {
	c.lastOpCycles = 16
	nn, err := c.fetch16()
	if err != nil {
		return err
	}
	if op == 0xEA {
		return c.write8(nn, c.A)
	}
	v, err := c.read8(nn)
	if err != nil {
		return err
	}
	c.A = v
	return nil
}

func opLDSPHL(c *CPU, _ byte) error {
	c.lastOpCycles = 8
	c.SP = c.HL()
	return nil
}

func opLDHLSPe(c *CPU, _ byte) error {
	c.lastOpCycles = 12
	e, err := c.fetch8()
	if err != nil {
		return err
	}
	v, f := addSPOffset(c.SP, e)
	c.SetHL(v)
	c.F = f
	return nil
}

func opPUSH(c *CPU, op byte) error {
	c.lastOpCycles = 16
	return c.push16(c.stackPair(op >> 4))
}

// opPOP into AF drops the low nibble of F.
func opPOP(c *CPU, op byte) error {
	c.lastOpCycles = 12
	v, err := c.pop16()
	if err != nil {
		return err
	}
	c.setStackPair(op>>4, v)
	return nil
}
