package cli

import (
	"path/filepath"

	"phprun/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	File        string
	Line        int
	Stdin       bool
	ProjectPath string
	Verbose     bool
	NoTUI       bool
}

// ToConfigFlags converts CLI flags to config flags.
// File and project paths are made absolute so stored records work from any directory.
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		File:        absPath(f.File),
		Line:        f.Line,
		Stdin:       f.Stdin,
		ProjectPath: absPath(f.ProjectPath),
		Verbose:     f.Verbose,
		NoTUI:       f.NoTUI,
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
