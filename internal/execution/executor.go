package execution

import (
	"context"
	"errors"

	"phprun/internal/command"
	"phprun/internal/domain"
)

var (
	// ErrSpawn is returned when the runner binary could not be started
	ErrSpawn = errors.New("failed to start test runner")
	// ErrCanceled marks a run that was stopped before it exited
	ErrCanceled = errors.New("test run canceled")
	// ErrTimeout marks a run killed by the configured timeout
	ErrTimeout = errors.New("test run timed out")
)

// Sink receives the output of a run as it happens.
// Calls for a single run never overlap.
type Sink interface {
	// OnProgress receives the accumulated text of one stream.
	// final is only set for the closing call of a successful run.
	OnProgress(text, command string, final, stdout bool)
	// OnCompleted is called once per run after the last OnProgress
	OnCompleted(outcome domain.Outcome)
}

// Executor starts test runs
type Executor interface {
	Start(ctx context.Context, spec command.Spec, sink Sink) (*Handle, error)
}

// Handle tracks a started run
type Handle struct {
	RunID   string
	Command string
	PID     int // Also the process group id on unix

	cancel  context.CancelFunc
	done    chan struct{}
	outcome domain.Outcome
}

// Wait blocks until the run has completed and the sink has been notified
func (h *Handle) Wait() domain.Outcome {
	<-h.done
	return h.outcome
}

// Done is closed once the run has completed
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancel kills the process if it is still running
func (h *Handle) Cancel() {
	h.cancel()
}
