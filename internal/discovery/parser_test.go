package discovery

import (
	"strings"
	"testing"
)

func TestFindFunctions(t *testing.T) {
	lines := strings.Split(userTest, "\n")

	functions := FindFunctions(lines)
	if len(functions) != 2 {
		t.Fatalf("expected 2 functions, got %d: %v", len(functions), functions)
	}
	if functions[0].Name != "testCreateUser" || functions[0].Row != 4 {
		t.Errorf("unexpected first function %+v", functions[0])
	}
	if functions[1].Name != "testCreateUserWithRole" || functions[1].Row != 9 {
		t.Errorf("unexpected second function %+v", functions[1])
	}

	t.Run("enclosing function agrees with resolver", func(t *testing.T) {
		for row := 0; row <= len(lines); row++ {
			idx := EnclosingFunction(functions, row)
			name, ok := ResolveFunctionName(lines, row)
			if ok != (idx >= 0) {
				t.Fatalf("row %d: resolver found=%v, enclosing index=%d", row, ok, idx)
			}
			if ok && functions[idx].Name != name {
				t.Errorf("row %d: expected %s, got %s", row, name, functions[idx].Name)
			}
		}
	})
}
