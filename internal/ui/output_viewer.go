package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"phprun/internal/storage"
)

// OutputViewer shows the saved panel output in an interactive pager
type OutputViewer struct {
	store *storage.PanelStore
}

// NewOutputViewer creates a new OutputViewer
func NewOutputViewer(store *storage.PanelStore) *OutputViewer {
	return &OutputViewer{store: store}
}

// View displays out until the user quits. Pressing h also closes the panel.
func (v *OutputViewer) View(out storage.PanelOutput) error {
	app := tview.NewApplication()

	headerView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetText(formatHeader(out))

	outputView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetText(tview.Escape(out.Text))
	outputView.SetBorder(true).SetTitle(" Output ")
	outputView.ScrollToEnd()

	footerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(" ↑↓/PgUp/PgDn to scroll | [yellow]h[white] to hide the panel | q, Esc or Ctrl+C to exit ")

	var hideErr error
	outputView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				app.Stop()
				return nil
			case 'h', 'H':
				hideErr = v.store.SetVisible(false)
				app.Stop()
				return nil
			}
		}
		return event
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 2, 0, false).
		AddItem(outputView, 0, 1, true).
		AddItem(footerView, 1, 0, false)

	if err := app.SetRoot(layout, true).SetFocus(outputView).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return hideErr
}

// formatHeader formats the status header using tview color tags
func formatHeader(out storage.PanelOutput) string {
	status := "[red]✗ FAILED[white]"
	if out.Succeeded {
		status = "[green]✓ PASSED[white]"
	}
	when := ""
	if !out.UpdatedAt.IsZero() {
		when = out.UpdatedAt.Local().Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%s  [cyan]%s[white]\n[gray]%s[white]", status, tview.Escape(out.Command), when)
}

// PrintOutput writes the saved output without the TUI, for pipes and dumb terminals
func PrintOutput(w io.Writer, out storage.PanelOutput) {
	if out.Succeeded {
		color.New(color.FgGreen).Fprint(w, "✓ ")
	} else {
		color.New(color.FgRed).Fprint(w, "✗ ")
	}
	color.New(color.FgCyan, color.Bold).Fprintln(w, out.Command)
	fmt.Fprint(w, out.Text)
	if !strings.HasSuffix(out.Text, "\n") {
		fmt.Fprintln(w)
	}
}
