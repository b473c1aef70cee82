package emu

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindROMs recursively collects .gb and .gbc files under dir, sorted.
func FindROMs(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		low := strings.ToLower(d.Name())
		if strings.HasSuffix(low, ".gb") || strings.HasSuffix(low, ".gbc") {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}
