package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"phprun/internal/discovery"
)

func TestPrintFunctions(t *testing.T) {
	functions := []discovery.Function{
		{Name: "setUp", Row: 4},
		{Name: "testCreatesUser", Row: 9},
		{Name: "testDeletesUser", Row: 15},
	}

	var buf bytes.Buffer
	PrintFunctions(&buf, "tests/UserTest.php", functions, 1)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "tests/UserTest.php (3 function(s))", lines[0])
	assert.Equal(t, "├── setUp  line 5", lines[1])
	assert.Equal(t, "├── testCreatesUser  line 10 ◀ cursor", lines[2])
	assert.Equal(t, "└── testDeletesUser  line 16", lines[3])
}

func TestPrintFunctions_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintFunctions(&buf, "tests/EmptyTest.php", nil, -1)
	assert.Equal(t, "No functions found in tests/EmptyTest.php\n", buf.String())
}
