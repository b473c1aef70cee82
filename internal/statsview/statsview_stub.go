//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Address is empty when the server is not compiled in.
const Address = ""

// Launch only explains how to get the real server.
func Launch(output io.Writer) {
	fmt.Fprintln(output, "statsview: not built in (go build -tags statsview)")
}

func Available() bool { return false }
