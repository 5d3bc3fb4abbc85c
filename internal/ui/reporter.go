package ui

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"phprun/internal/config"
	"phprun/internal/domain"
	"phprun/internal/execution"
)

// Reporter routes run output to the panel or to notifications,
// following the successAsNotifications and failuresAsNotifications settings.
type Reporter struct {
	config   *config.Config
	panel    *Panel
	notifier *Notifier
	logger   *log.Logger

	spinnerOut io.Writer
	spinner    *Spinner
	live       bool
	outcome    *domain.Outcome
}

// NewReporter creates a Reporter. A non-nil spinnerOut shows a spinner while
// output is held back for a notification.
func NewReporter(cfg *config.Config, panel *Panel, notifier *Notifier, spinnerOut io.Writer, logger *log.Logger) *Reporter {
	return &Reporter{
		config:     cfg,
		panel:      panel,
		notifier:   notifier,
		logger:     logger,
		spinnerOut: spinnerOut,
	}
}

// Begin is called before the process is started.
// Output streams into the panel unless failures are reported as notifications,
// in which case nothing is shown until the outcome is known.
func (r *Reporter) Begin(command string) {
	r.outcome = nil
	r.live = !r.config.FailuresAsNotifications
	r.panel.Begin(command, r.live)
	if !r.live && r.spinnerOut != nil {
		r.spinner = NewSpinner(r.spinnerOut, "Running tests...")
	}
}

// OnProgress implements execution.Sink
func (r *Reporter) OnProgress(text, command string, final, stdout bool) {
	r.panel.Update(text, command, final, stdout)
}

// OnCompleted implements execution.Sink
func (r *Reporter) OnCompleted(outcome domain.Outcome) {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
	r.outcome = &outcome
	defer r.panel.Save(outcome.RunID, outcome.Succeeded)

	if errors.Is(outcome.Err, execution.ErrSpawn) {
		r.panel.Hide()
		r.notifier.Error("Could not run tests", outcome.Command, outcome.Err.Error())
		return
	}

	// Already on screen when streamed
	detail := outcome.Display()
	if r.live {
		detail = ""
	}

	switch {
	case !outcome.Succeeded && outcome.Stderr != "":
		r.panel.Show()
	case !outcome.Succeeded:
		if r.config.FailuresAsNotifications {
			r.panel.Hide()
			r.notifier.Error("Test Failed!", outcome.Command, detail)
		} else {
			r.panel.Show()
		}
	default:
		if r.config.SuccessAsNotifications {
			r.panel.Hide()
			r.notifier.Success("Test Passed!", outcome.Command, detail)
		} else {
			r.panel.Show()
		}
	}

	if outcome.Err != nil {
		r.notifier.Error("Test run interrupted", outcome.Command, outcome.Err.Error())
	}
}

// Outcome returns the last completed outcome, nil while a run is in flight
func (r *Reporter) Outcome() *domain.Outcome {
	return r.outcome
}

// Panel returns the output panel
func (r *Reporter) Panel() *Panel {
	return r.panel
}
