package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"phprun/internal/discovery"
)

// PrintFunctions prints the functions declared in file as a tree.
// The entry at selected is the one a test run from the cursor would target.
func PrintFunctions(w io.Writer, file string, functions []discovery.Function, selected int) {
	if len(functions) == 0 {
		fmt.Fprintln(w, color.YellowString("No functions found in %s", file))
		return
	}

	fmt.Fprintln(w, color.GreenString("%s (%d function(s))", file, len(functions)))
	for i, fn := range functions {
		branch := "├── "
		if i == len(functions)-1 {
			branch = "└── "
		}

		line := fmt.Sprintf("%s%s  %s", branch, fn.Name, color.HiBlackString("line %d", fn.Row+1))
		if i == selected {
			line += " " + color.CyanString("◀ cursor")
		}
		fmt.Fprintln(w, line)
	}
}
