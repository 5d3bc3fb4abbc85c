package commands

import (
	"github.com/spf13/cobra"

	"phprun/internal/app"
)

// OutputCommand handles the output panel commands
type OutputCommand struct {
	session *session
}

// NewOutputCommand creates a new OutputCommand
func NewOutputCommand(s *session) *OutputCommand {
	return &OutputCommand{session: s}
}

// Toggle opens the panel when it is closed and closes it otherwise
func (oc *OutputCommand) Toggle(cmd *cobra.Command, args []string) error {
	return oc.with(func(a *app.App) error {
		return a.ToggleOutput(oc.session.interactive())
	})
}

// Show opens the panel with the last output
func (oc *OutputCommand) Show(cmd *cobra.Command, args []string) error {
	return oc.with(func(a *app.App) error {
		return a.ShowOutput(oc.session.interactive())
	})
}

// Hide closes the panel
func (oc *OutputCommand) Hide(cmd *cobra.Command, args []string) error {
	return oc.with(func(a *app.App) error {
		return a.HideOutput()
	})
}

func (oc *OutputCommand) with(fn func(a *app.App) error) error {
	a, err := oc.session.open()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
