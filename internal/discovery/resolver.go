package discovery

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

var (
	// ErrNoFile is returned when there is no current file on disk
	ErrNoFile = errors.New("no file is open")
	// ErrNotTestFile is returned when the current file does not look like a test
	ErrNotTestFile = errors.New("current file is not a test file")
	// ErrNoFunction is returned when no function encloses the cursor
	ErrNoFunction = errors.New("no test function found above the cursor")
)

// declPattern captures the identifier between the function keyword and the parameter list.
// Anonymous functions ("function (") do not match.
var declPattern = regexp.MustCompile(`function\s+([^\s(]+)\s*\(`)

// ResolveFunctionName returns the nearest function declared above cursorRow.
// Rows are scanned from cursorRow-1 up to 0; the cursor row itself is not inspected.
func ResolveFunctionName(lines []string, cursorRow int) (string, bool) {
	row := cursorRow
	if row > len(lines) {
		row = len(lines)
	}

	for row--; row >= 0; row-- {
		if name, ok := matchDeclaration(lines[row]); ok {
			return name, true
		}
	}
	return "", false
}

func matchDeclaration(line string) (string, bool) {
	if !strings.Contains(line, "function ") {
		return "", false
	}
	parts := declPattern.FindStringSubmatch(line)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// ResolveFilePath decides whether current can be used as a test target.
// Suite runs accept any file; otherwise the path must contain "test" (any case)
// unless fallback relaxes the check.
func ResolveFilePath(current string, suite, fallback bool) (string, error) {
	if current == "" {
		return "", ErrNoFile
	}
	info, err := os.Stat(current)
	if err != nil || info.IsDir() {
		return "", ErrNoFile
	}

	if suite || fallback || IsTestFile(current) {
		return current, nil
	}
	return "", ErrNotTestFile
}

// IsTestFile reports whether the path case-insensitively contains "test"
func IsTestFile(path string) bool {
	return strings.Contains(strings.ToLower(path), "test")
}
