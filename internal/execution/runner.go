package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"phprun/internal/command"
	"phprun/internal/config"
	"phprun/internal/domain"
)

// waitDelay bounds how long Wait keeps reading after the process is killed,
// in case a grandchild still holds the output pipes open.
const waitDelay = 2 * time.Second

// stopTimeout bounds the wait for a previous run to exit after each signal
const stopTimeout = 3 * time.Second

// Tracker remembers the active run so a later phprun process can stop it
type Tracker interface {
	Active() (domain.ActiveRun, bool, error)
	SetActive(run domain.ActiveRun) error
	ClearActive(runID string) error
}

// Runner executes a single test command and streams its output
type Runner struct {
	config  *config.Config
	logger  *log.Logger
	tracker Tracker

	mu      sync.Mutex
	current *Handle
}

// NewRunner creates a new Runner. With exclusiveRuns set, tracker lets it
// stop runs started by other processes; nil limits the guard to this Runner.
func NewRunner(cfg *config.Config, logger *log.Logger, tracker Tracker) *Runner {
	return &Runner{config: cfg, logger: logger, tracker: tracker}
}

type chunk struct {
	stdout bool
	data   []byte
}

// streamWriter forwards each write from the process to the dispatcher
type streamWriter struct {
	stdout bool
	events chan<- chunk
}

func (w *streamWriter) Write(p []byte) (int, error) {
	w.events <- chunk{stdout: w.stdout, data: append([]byte{}, p...)}
	return len(p), nil
}

// Start spawns the command and returns without waiting for it.
// Every run ends with exactly one sink.OnCompleted, including runs that fail to spawn.
func (r *Runner) Start(ctx context.Context, spec command.Spec, sink Sink) (*Handle, error) {
	args := spec.Args()
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrSpawn)
	}

	if r.config.ExclusiveRuns {
		r.mu.Lock()
		prev := r.current
		r.mu.Unlock()
		if prev != nil {
			r.logger.Debug("canceling previous run", "run_id", prev.RunID)
			prev.Cancel()
			prev.Wait()
		}
		r.stopActive()
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout := r.config.Timeout(); timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}

	h := &Handle{
		RunID:   uuid.New().String(),
		Command: spec.Render(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	events := make(chan chunk, 64)
	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = os.Environ()
	cmd.Stdout = &streamWriter{stdout: true, events: events}
	cmd.Stderr = &streamWriter{stdout: false, events: events}
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	r.logger.Info("running", "cmd", h.Command, "dir", spec.Dir, "run_id", h.RunID)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		cancel()
		err = fmt.Errorf("%w: %s: %w", ErrSpawn, args[0], err)
		h.outcome = domain.Outcome{
			RunID:    h.RunID,
			Command:  h.Command,
			ExitCode: -1,
			Err:      err,
		}
		close(h.done)
		sink.OnCompleted(h.outcome)
		return nil, err
	}

	h.PID = cmd.Process.Pid
	r.mu.Lock()
	r.current = h
	r.mu.Unlock()
	r.track(h)

	var waitErr error
	go func() {
		waitErr = cmd.Wait()
		close(events)
	}()

	go func() {
		defer cancel()

		var stdout, stderr strings.Builder
		for ev := range events {
			if ev.stdout {
				stdout.Write(ev.data)
				sink.OnProgress(stdout.String(), h.Command, false, true)
			} else {
				stderr.Write(ev.data)
				sink.OnProgress(stderr.String(), h.Command, false, false)
			}
		}

		outcome := domain.Outcome{
			RunID:    h.RunID,
			Command:  h.Command,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Duration: time.Since(start),
		}
		outcome.ExitCode, outcome.Err = classify(runCtx, waitErr)
		outcome.Succeeded = outcome.ExitCode == 0 && outcome.Err == nil

		switch {
		case outcome.Succeeded:
			sink.OnProgress(outcome.Stdout, h.Command, true, true)
		case outcome.Stderr != "":
			sink.OnProgress(outcome.Stderr, h.Command, false, false)
		default:
			sink.OnProgress(outcome.Stdout, h.Command, false, true)
		}

		r.logger.Info("finished", "run_id", h.RunID, "exit_code", outcome.ExitCode, "duration", outcome.Duration.Round(time.Millisecond))

		h.outcome = outcome
		r.mu.Lock()
		if r.current == h {
			r.current = nil
		}
		r.mu.Unlock()
		r.untrack(h)

		sink.OnCompleted(outcome)
		close(h.done)
	}()

	return h, nil
}

// stopActive ends a run another process recorded as still going and waits for it to exit
func (r *Runner) stopActive() {
	if r.tracker == nil {
		return
	}
	prev, ok, err := r.tracker.Active()
	if err != nil {
		r.logger.Warn("could not read active run", "err", err)
		return
	}
	if !ok || !processAlive(prev.PID) {
		return
	}

	r.logger.Debug("stopping previous run", "run_id", prev.RunID, "pid", prev.PID)
	for _, force := range []bool{false, true} {
		if err := signalGroup(prev.PID, force); err != nil {
			r.logger.Warn("could not stop previous run", "pid", prev.PID, "err", err)
			return
		}
		if waitExit(prev.PID, stopTimeout) {
			return
		}
	}
	r.logger.Warn("previous run did not exit", "pid", prev.PID)
}

// waitExit polls until pid is gone or timeout passes
func waitExit(pid int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for processAlive(pid) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(20 * time.Millisecond)
	}
	return true
}

func (r *Runner) track(h *Handle) {
	if r.tracker == nil || !r.config.ExclusiveRuns {
		return
	}
	if err := r.tracker.SetActive(domain.ActiveRun{RunID: h.RunID, PID: h.PID}); err != nil {
		r.logger.Warn("could not record active run", "run_id", h.RunID, "err", err)
	}
}

func (r *Runner) untrack(h *Handle) {
	if r.tracker == nil || !r.config.ExclusiveRuns {
		return
	}
	if err := r.tracker.ClearActive(h.RunID); err != nil {
		r.logger.Warn("could not clear active run", "run_id", h.RunID, "err", err)
	}
}

// classify turns the Wait error into an exit code and a run error.
// A plain nonzero exit is not an error, only a failed run.
func classify(ctx context.Context, waitErr error) (int, error) {
	if waitErr == nil {
		return 0, nil
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		code = exitErr.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return code, ErrTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return code, ErrCanceled
	case exitErr != nil && !errors.Is(waitErr, exec.ErrWaitDelay):
		return code, nil
	}
	return code, fmt.Errorf("wait for test runner: %w", waitErr)
}
