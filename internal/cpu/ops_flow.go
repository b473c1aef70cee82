package cpu

// Control flow and CPU control. Conditional handlers charge the not-taken
// cost up front and raise it once the branch is taken.

func opNOP(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	return nil
}

func opJP(c *CPU, _ byte) error {
	c.lastOpCycles = 16
	nn, err := c.fetch16()
	if err != nil {
		return err
	}
	c.PC = nn
	return nil
}

func opJPcc(c *CPU, op byte) error {
	c.lastOpCycles = 12
	nn, err := c.fetch16()
	if err != nil {
		return err
	}
	if c.cond(op >> 3) {
		c.PC = nn
		c.lastOpCycles = 16
	}
	return nil
}

func opJPHL(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	c.PC = c.HL()
	return nil
}

// The JR offset is relative to the address after the operand.
func opJR(c *CPU, _ byte) error {
	c.lastOpCycles = 12
	e, err := c.fetch8()
	if err != nil {
		return err
	}
	c.PC += uint16(int8(e))
	return nil
}

func opJRcc(c *CPU, op byte) error {
	c.lastOpCycles = 8
	e, err := c.fetch8()
	if err != nil {
		return err
	}
	if c.cond(op >> 3) {
		c.PC += uint16(int8(e))
		c.lastOpCycles = 12
	}
	return nil
}

func opCALL(c *CPU, _ byte) error {
	c.lastOpCycles = 24
	nn, err := c.fetch16()
	if err != nil {
		return err
	}
	if err := c.push16(c.PC); err != nil {
		return err
	}
	c.PC = nn
	return nil
}

func opCALLcc(c *CPU, op byte) error {
	c.lastOpCycles = 12
	nn, err := c.fetch16()
	if err != nil {
		return err
	}
	if !c.cond(op >> 3) {
		return nil
	}
	c.lastOpCycles = 24
	if err := c.push16(c.PC); err != nil {
		return err
	}
	c.PC = nn
	return nil
}

func opRET(c *CPU, _ byte) error {
	c.lastOpCycles = 16
	pc, err := c.pop16()
	if err != nil {
		return err
	}
	c.PC = pc
	return nil
}

func opRETcc(c *CPU, op byte) error {
	c.lastOpCycles = 8
	if !c.cond(op >> 3) {
		return nil
	}
	c.lastOpCycles = 20
	pc, err := c.pop16()
	if err != nil {
		return err
	}
	c.PC = pc
	return nil
}

// opRETI returns and enables interrupts with no delay.
func opRETI(c *CPU, _ byte) error {
	c.lastOpCycles = 16
	pc, err := c.pop16()
	if err != nil {
		return err
	}
	c.PC = pc
	c.IME = true
	c.imeDelay = 0
	return nil
}

func opRST(c *CPU, op byte) error {
	c.lastOpCycles = 16
	if err := c.push16(c.PC); err != nil {
		return err
	}
	c.PC = uint16(op & 0x38)
	return nil
}

func opHALT(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	c.halted = true
	return nil
}

// opSTOP consumes its padding byte and suspends the CPU like HALT.
func opSTOP(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	if _, err := c.fetch8(); err != nil {
		return err
	}
	c.stopped, c.halted = true, true
	return nil
}

func opDI(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	c.IME = false
	c.imeDelay = 0
	return nil
}

// opEI arms IME to switch on once the next instruction has run. Tick steps
// the counter after this handler too, hence 2.
func opEI(c *CPU, _ byte) error {
	c.lastOpCycles = 4
	if !c.IME && c.imeDelay == 0 {
		c.imeDelay = 2
	}
	return nil
}
