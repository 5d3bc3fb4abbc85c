package app

import (
	"fmt"
	"io"

	"phprun/internal/discovery"
	"phprun/internal/storage"
	"phprun/internal/ui"
)

// ToggleOutput hides the panel when it is open and shows it otherwise
func (a *App) ToggleOutput(tui bool) error {
	visible, err := a.panel.Visible()
	if err != nil {
		return err
	}
	if visible {
		return a.HideOutput()
	}
	return a.ShowOutput(tui)
}

// HideOutput closes the panel
func (a *App) HideOutput() error {
	return a.panel.SetVisible(false)
}

// ShowOutput opens the panel with the last run's output
func (a *App) ShowOutput(tui bool) error {
	if err := a.panel.SetVisible(true); err != nil {
		return err
	}

	out, ok, err := a.panel.Output()
	if err != nil {
		return err
	}
	if !ok {
		out = storage.PanelOutput{Text: ui.NoOutput}
	}

	if tui {
		return a.viewer.View(out)
	}
	ui.PrintOutput(a.out, out)
	return nil
}

// Status prints the last run record and panel state
func (a *App) Status(w io.Writer) error {
	rec, err := a.runs.Get(nil)
	if err != nil {
		return err
	}
	visible, err := a.panel.Visible()
	if err != nil {
		return err
	}

	out, ok, err := a.panel.Output()
	if err != nil {
		return err
	}
	var last *storage.PanelOutput
	if ok {
		last = &out
	}

	ui.PrintStatus(w, rec, last, visible)
	return nil
}

// List prints the functions of the current file, marking the one a test run would pick
func (a *App) List(w io.Writer, cur *discovery.Cursor) error {
	if len(cur.Lines) == 0 {
		return fmt.Errorf("%w: %w", ErrResolution, discovery.ErrNoFile)
	}

	functions := discovery.FindFunctions(cur.Lines)
	selected := -1
	if cur.HasPosition() {
		selected = discovery.EnclosingFunction(functions, cur.Row())
	}
	ui.PrintFunctions(w, cur.File, functions, selected)
	return nil
}
