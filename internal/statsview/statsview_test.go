//go:build !statsview

package statsview

import (
	"strings"
	"testing"
)

func TestStubReportsUnavailable(t *testing.T) {
	if Available() {
		t.Fatalf("stub build reports Available")
	}
	var w strings.Builder
	Launch(&w)
	if !strings.Contains(w.String(), "-tags statsview") {
		t.Fatalf("Launch wrote %q", w.String())
	}
}
