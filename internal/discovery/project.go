package discovery

import (
	"os"
	"path/filepath"
)

// ProjectMarkers identify the root of a PHP project
var ProjectMarkers = []string{"composer.json", "artisan", "vendor"}

// FindProjectRoot walks upward from path to the nearest directory holding a project marker.
// Returns fallback when no marker is found or path is empty.
func FindProjectRoot(path, fallback string) string {
	if path == "" {
		return fallback
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fallback
	}

	dir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		for _, marker := range ProjectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}
		dir = parent
	}
}
