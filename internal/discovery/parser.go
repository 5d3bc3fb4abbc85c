package discovery

// Function is a function declaration found in a file
type Function struct {
	Name string // Declared identifier
	Row  int    // Zero-based line index of the declaration
}

// FindFunctions lists every named function declared in lines, in file order.
// Detection uses the same line matching as ResolveFunctionName.
func FindFunctions(lines []string) []Function {
	var functions []Function
	for row, line := range lines {
		if name, ok := matchDeclaration(line); ok {
			functions = append(functions, Function{Name: name, Row: row})
		}
	}
	return functions
}

// EnclosingFunction returns the index into functions of the entry ResolveFunctionName
// would pick for cursorRow, or -1.
func EnclosingFunction(functions []Function, cursorRow int) int {
	found := -1
	for i, fn := range functions {
		if fn.Row >= cursorRow {
			break
		}
		found = i
	}
	return found
}
