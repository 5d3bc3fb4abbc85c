package commands

import (
	"github.com/spf13/cobra"
)

// StatusCommand handles the status command
type StatusCommand struct {
	session *session
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(s *session) *StatusCommand {
	return &StatusCommand{session: s}
}

// Execute runs the command
func (sc *StatusCommand) Execute(cmd *cobra.Command, args []string) error {
	a, err := sc.session.open()
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Status(sc.session.streams.Out)
}
