package ui

// Config contains window and stepping settings for the monitor.
type Config struct {
	Title         string // window title
	Scale         int    // integer upscaling factor
	StepsPerFrame int    // instructions executed per Ebiten update while running
	FastFactor    int    // multiplier applied while Tab is held
	LogLines      int    // number of log entries shown under the registers
	StatePath     string // save state file used by F5/F9 and the menu
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbnet"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.StepsPerFrame <= 0 {
		c.StepsPerFrame = 1000
	}
	if c.FastFactor <= 0 {
		c.FastFactor = 10
	}
	if c.LogLines <= 0 {
		c.LogLines = 6
	}
	if c.StatePath == "" {
		c.StatePath = "slot0.savestate"
	}
}
