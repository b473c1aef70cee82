package cpu

import "fmt"

// Start runs Tick until Stop is called. Faults are handed to OnFault and
// execution carries on with the next instruction. With verbose set, one
// trace line per instruction goes to the trace writer; the line is built
// from a snapshot and never touches the bus.
//
// Start does not re-arm itself: after Stop, call Resume (or Reset) first.
func (c *CPU) Start(verbose bool) {
	for c.running.Load() {
		err := c.Tick()
		if err != nil && c.OnFault != nil {
			c.OnFault(c.lastPC, err)
		}
		if verbose && c.trace != nil {
			c.writeTrace()
		}
	}
}

// Stop clears the continuation flag. It is safe to call from another
// goroutine; the loop notices at the next instruction boundary.
func (c *CPU) Stop() { c.running.Store(false) }

// Resume sets the continuation flag again.
func (c *CPU) Resume() { c.running.Store(true) }

// Running reports the continuation flag.
func (c *CPU) Running() bool { return c.running.Load() }

func (c *CPU) writeTrace() {
	fmt.Fprintln(c.trace, c.State().TraceLine())
}
