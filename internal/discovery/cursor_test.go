package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCursor(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "UserTest.php")
	if err := os.WriteFile(testFile, []byte(userTest), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("reads lines from disk", func(t *testing.T) {
		c, err := LoadCursor(testFile, 7, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !c.HasPosition() || c.Row() != 6 {
			t.Fatalf("expected row 6, got %d", c.Row())
		}
		if name, _ := ResolveFunctionName(c.Lines, c.Row()); name != "testCreateUser" {
			t.Errorf("expected testCreateUser, got %q", name)
		}
	})

	t.Run("prefers the unsaved buffer", func(t *testing.T) {
		buffer := "<?php\nfunction testUnsaved()\n{\n"
		c, err := LoadCursor(testFile, 3, strings.NewReader(buffer))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(c.Buffer) != buffer {
			t.Errorf("expected buffer to be kept")
		}
		if name, _ := ResolveFunctionName(c.Lines, c.Row()); name != "testUnsaved" {
			t.Errorf("expected testUnsaved, got %q", name)
		}
	})

	t.Run("missing file has no position", func(t *testing.T) {
		c, err := LoadCursor(filepath.Join(tmpDir, "Gone.php"), 3, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.HasPosition() {
			t.Error("expected no cursor position without file contents")
		}
	})

	t.Run("very long lines do not cut the file short", func(t *testing.T) {
		buffer := "<?php\nclass FooTest\n{\n    private $fixture = '" + strings.Repeat("A", 2<<20) + "';\n" +
			"    public function testBar()\n    {\n        $this->assertTrue(true);\n    }\n}\n"
		c, err := LoadCursor(testFile, 7, strings.NewReader(buffer))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.Lines) != 9 {
			t.Fatalf("expected 9 lines, got %d", len(c.Lines))
		}
		if name, _ := ResolveFunctionName(c.Lines, c.Row()); name != "testBar" {
			t.Errorf("expected testBar, got %q", name)
		}
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
