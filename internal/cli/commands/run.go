package commands

import (
	"context"

	"github.com/spf13/cobra"

	"phprun/internal/app"
	"phprun/internal/discovery"
)

// Target selects what a run command runs
type Target int

const (
	TargetTest Target = iota
	TargetClass
	TargetSuite
	TargetBrowserTest
	TargetBrowserClass
	TargetLast
)

// RunCommand handles the test, class, suite, browser-test, browser-class and last commands
type RunCommand struct {
	session *session
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(s *session) *RunCommand {
	return &RunCommand{session: s}
}

// Execute returns the cobra handler for target
func (rc *RunCommand) Execute(target Target) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cur, err := rc.session.cursor()
		if err != nil {
			return err
		}

		a, err := rc.session.open()
		if err != nil {
			return err
		}
		defer a.Close()

		return run(cmd.Context(), a, target, cur)
	}
}

func run(ctx context.Context, a *app.App, target Target, cur *discovery.Cursor) error {
	switch target {
	case TargetClass:
		return a.RunClass(ctx, cur)
	case TargetSuite:
		return a.RunSuite(ctx, cur)
	case TargetBrowserTest:
		return a.RunBrowserTest(ctx, cur)
	case TargetBrowserClass:
		return a.RunBrowserClass(ctx, cur)
	case TargetLast:
		return a.RunLast(ctx, cur)
	default:
		return a.RunTest(ctx, cur)
	}
}
