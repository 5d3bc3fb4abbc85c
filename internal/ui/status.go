package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"phprun/internal/domain"
	"phprun/internal/storage"
)

// PrintStatus renders the last run record and panel state as a table
func PrintStatus(w io.Writer, rec domain.RunRecord, out *storage.PanelOutput, visible bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Last Test")
	t.Style().Title.Align = text.AlignCenter

	t.AppendRow(table.Row{"Kind", string(rec.Kind)})
	t.AppendRow(table.Row{"Scope", rec.Scope()})
	t.AppendRow(table.Row{"File", orDash(rec.FilePath)})
	t.AppendRow(table.Row{"Function", orDash(rec.FunctionName)})
	t.AppendSeparator()

	if out != nil {
		result := text.FgRed.Sprint("failed")
		if out.Succeeded {
			result = text.FgGreen.Sprint("passed")
		}
		t.AppendRow(table.Row{"Command", out.Command})
		t.AppendRow(table.Row{"Result", result})
		t.AppendRow(table.Row{"Run ID", orDash(out.RunID)})
		t.AppendRow(table.Row{"Finished", out.UpdatedAt.Local().Format("2006-01-02 15:04:05")})
	} else {
		t.AppendRow(table.Row{"Result", "-"})
	}

	panel := "hidden"
	if visible {
		panel = "visible"
	}
	t.AppendRow(table.Row{"Panel", panel})

	t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
