package discovery

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Cursor is the editor context a command runs in
type Cursor struct {
	File   string   // Path of the current file, empty when no file is open
	Line   int      // One-based cursor line, 0 when unknown
	Lines  []string // Contents of the current buffer
	Buffer []byte   // Raw unsaved buffer when it came from stdin
}

// Row returns the zero-based cursor row
func (c *Cursor) Row() int {
	if c.Line <= 0 {
		return 0
	}
	return c.Line - 1
}

// HasPosition reports whether there is a cursor to resolve a function from
func (c *Cursor) HasPosition() bool {
	return c != nil && c.Line > 0 && len(c.Lines) > 0
}

// LoadCursor builds the editor context. When buffer is non-nil its contents are used
// instead of the file on disk, so unsaved edits are resolved too.
func LoadCursor(file string, line int, buffer io.Reader) (*Cursor, error) {
	c := &Cursor{File: file, Line: line}

	switch {
	case buffer != nil:
		data, err := io.ReadAll(buffer)
		if err != nil {
			return nil, fmt.Errorf("read buffer: %w", err)
		}
		c.Buffer = data
		c.Lines = splitLines(string(data))
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			// No file on disk is a resolution failure, not a load failure
			return c, nil
		}
		c.Lines = splitLines(string(data))
	}
	return c, nil
}

// splitLines splits on \n or \r\n with no limit on line length.
// A trailing newline does not add an empty last line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
