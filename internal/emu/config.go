package emu

import (
	"io"
	"os"
)

// Config contains settings that affect how the machine runs and reports.
type Config struct {
	Verbose     bool      // trace every instruction executed by Run
	TraceWriter io.Writer // destination for the trace, stdout when nil
	LogEntries  int       // size of the fault log, 256 when zero
	EchoLog     io.Writer // copy of every log entry as it happens, off when nil
}

func (c Config) traceWriter() io.Writer {
	if c.TraceWriter == nil {
		return os.Stdout
	}
	return c.TraceWriter
}

func (c Config) logEntries() int {
	if c.LogEntries <= 0 {
		return 256
	}
	return c.LogEntries
}
