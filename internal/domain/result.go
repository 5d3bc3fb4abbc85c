package domain

import "time"

// Outcome is the result of running one test command
type Outcome struct {
	RunID     string        // Unique identifier for this run
	Command   string        // Rendered command line
	ExitCode  int           // Process exit code, -1 if the process never ran
	Stdout    string        // Accumulated stdout
	Stderr    string        // Accumulated stderr
	Succeeded bool          // ExitCode == 0 and no spawn error
	Err       error         // Spawn or wait error, nil for a normal exit
	Duration  time.Duration // Time taken to execute
}

// Display returns the text to show for the outcome.
// A failed run with stderr output shows stderr, anything else shows stdout.
func (o Outcome) Display() string {
	if !o.Succeeded && o.Stderr != "" {
		return o.Stderr
	}
	return o.Stdout
}

// ActiveRun identifies the process of a run that may still be going.
// The process leads its own process group, so PID is also the group id.
type ActiveRun struct {
	RunID string `json:"run_id"`
	PID   int    `json:"pid"`
}
