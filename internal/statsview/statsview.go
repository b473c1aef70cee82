//go:build statsview

package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address is the listen address of the charts server.
const Address = "localhost:18066"

var started sync.Once

// Launch serves runtime charts in the background and prints where to find
// them. Only the first call starts a server.
func Launch(output io.Writer) {
	started.Do(func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		go mgr.Start()
		fmt.Fprintf(output, "statsview: http://%s/debug/statsview\n", Address)
	})
}

func Available() bool { return true }
