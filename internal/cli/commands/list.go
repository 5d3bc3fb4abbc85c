package commands

import (
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	session *session
}

// NewListCommand creates a new ListCommand
func NewListCommand(s *session) *ListCommand {
	return &ListCommand{session: s}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cur, err := lc.session.cursor()
	if err != nil {
		return err
	}

	a, err := lc.session.open()
	if err != nil {
		return err
	}
	defer a.Close()

	return a.List(lc.session.streams.Out, cur)
}
