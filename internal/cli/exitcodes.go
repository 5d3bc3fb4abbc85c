package cli

import (
	"errors"

	"phprun/internal/app"
)

// Exit codes:
//
// * Success (0): the tests passed
// * TestFailure (1): the runner reported failing tests
// * RuntimeErr (2): the target could not be resolved, the runner could not be started, or any other error
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)

// ExitCode maps the error returned by a command to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, app.ErrTestsFailed):
		return TestFailure
	default:
		return RuntimeErr
	}
}

// Silent reports whether err needs no message from main: failing tests and
// errors the user was notified about have been shown already.
func Silent(err error) bool {
	return err == nil || errors.Is(err, app.ErrTestsFailed) || app.Notified(err)
}
