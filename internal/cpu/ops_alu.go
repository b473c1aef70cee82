package cpu

// alu applies one of the eight accumulator operations selected by bits 3-5
// of the opcode: ADD ADC SUB SBC AND XOR OR CP.
func (c *CPU) alu(kind, v byte) {
	var res, f byte
	switch kind & 7 {
	case 0:
		res, f = add8(c.A, v, false)
	case 1:
		res, f = add8(c.A, v, c.FlagC())
	case 2:
		res, f = sub8(c.A, v, false)
	case 3:
		res, f = sub8(c.A, v, c.FlagC())
	case 4:
		res, f = and8(c.A, v)
	case 5:
		res, f = xor8(c.A, v)
	case 6:
		res, f = or8(c.A, v)
	case 7:
		// CP: flags only
		_, f = sub8(c.A, v, false)
		c.F = f
		return
	}
	c.A, c.F = res, f
}

func opALUr(c *CPU, op byte) error {
	c.lastOpCycles = 4
	if op&7 == 6 {
		c.lastOpCycles = 8
	}
	v, err := c.getR8(op)
	if err != nil {
		return err
	}
	c.alu(op>>3, v)
	return nil
}

func opALUn(c *CPU, op byte) error {
	c.lastOpCycles = 8
	n, err := c.fetch8()
	if err != nil {
		return err
	}
	c.alu(op>>3, n)
	return nil
}

func opINCr(c *CPU, op byte) error {
	r := (op >> 3) & 7
	c.lastOpCycles = 4
	if r == 6 {
		c.lastOpCycles = 12
	}
	v, err := c.getR8(r)
	if err != nil {
		return err
	}
	res, f := inc8(v, c.F)
	if err := c.setR8(r, res); err != nil {
		return err
	}
	c.F = f
	return nil
}

func opDECr(c *CPU, op byte) error {
	r := (op >> 3) & 7
	c.lastOpCycles = 4
	if r == 6 {
		c.lastOpCycles = 12
	}
	v, err := c.getR8(r)
	if err != nil {
		return err
	}
	res, f := dec8(v, c.F)
	if err := c.setR8(r, res); err != nil {
		return err
	}
	c.F = f
	return nil
}

// 16-bit INC and DEC touch no flags.
func opINCrr(c *CPU, op byte) error {
	c.lastOpCycles = 8
	c.setPair(op>>4, c.pair(op>>4)+1)
	return nil
}

func opDECrr(c *CPU, op byte) error {
	c.lastOpCycles = 8
	c.setPair(op>>4, c.pair(op>>4)-1)
	return nil
}

func opADDHLrr(c *CPU, op byte) error {
	c.lastOpCycles = 8
	v, f := add16(c.HL(), c.pair(op>>4), c.F)
	c.SetHL(v)
	c.F = f
	return nil
}

func opADDSPe(c *CPU, _ byte) error {
	c.lastOpCycles = 16
	e, err := c.fetch8()
	if err != nil {
		return err
	}
	c.SP, c.F = addSPOffset(c.SP, e)
	return nil
}

// opRotateA is RLCA RRCA RLA RRA. Unlike their CB forms they always clear Z.
func opRotateA(c *CPU, op byte) error {
	c.lastOpCycles = 4
	var carry bool
	switch op {
	case 0x07:
		c.A, carry = rlc(c.A)
	case 0x0F:
		c.A, carry = rrc(c.A)
	case 0x17:
		c.A, carry = rl(c.A, c.FlagC())
	case 0x1F:
		c.A, carry = rr(c.A, c.FlagC())
	}
	c.setZNHC(false, false, false, carry)
	return nil
}

func opDAA(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	c.A, c.F = daa(c.A, c.F)
	return nil
}

func opCPL(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	c.A = ^c.A
	c.SetFlagN(true)
	c.SetFlagH(true)
	return nil
}

func opSCF(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	c.SetFlagN(false)
	c.SetFlagH(false)
	c.SetFlagC(true)
	return nil
}

func opCCF(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	c.SetFlagN(false)
	c.SetFlagH(false)
	c.SetFlagC(!c.FlagC())
	return nil
}
