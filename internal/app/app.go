// Package app holds the long-lived pieces of a phprun invocation and the
// editor-facing operations built on them.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"phprun/internal/command"
	"phprun/internal/config"
	"phprun/internal/execution"
	"phprun/internal/storage"
	"phprun/internal/ui"
)

var (
	// ErrTestsFailed is returned when the runner exited nonzero
	ErrTestsFailed = errors.New("tests failed")
	// ErrResolution is returned when no test target could be worked out from the editor context
	ErrResolution = errors.New("could not resolve test target")
)

// notifiedError marks an error the user was already shown in a notification
type notifiedError struct {
	err error
}

func (e *notifiedError) Error() string { return e.err.Error() }
func (e *notifiedError) Unwrap() error { return e.err }

func notified(err error) error {
	return &notifiedError{err: err}
}

// Notified reports whether err already reached the user through a notification,
// so printing it again would only repeat it
func Notified(err error) bool {
	var n *notifiedError
	return errors.As(err, &n)
}

// Options configures the output side of an App
type Options struct {
	Out     io.Writer   // Panel and notifications, stdout when nil
	Spinner io.Writer   // Spinner while output is held back, none when nil
	Logger  *log.Logger // Discards when nil
	Viewer  ui.Viewer   // Interactive output viewer, the tview pager when nil
}

// App is created once per invocation and passed to every operation
type App struct {
	config   *config.Config
	logger   *log.Logger
	out      io.Writer
	backend  storage.Backend
	runs     storage.Store
	panel    *storage.PanelStore
	builder  *command.Builder
	executor execution.Executor
	reporter *ui.Reporter
	notifier *ui.Notifier
	viewer   ui.Viewer
}

// New opens the configured store and wires the components
func New(cfg *config.Config, opts Options) (*App, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	backend, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}

	runStore := storage.NewRunStore(backend)
	panelStore := storage.NewPanelStore(backend)
	notifier := ui.NewNotifier(opts.Out)
	panel := ui.NewPanel(opts.Out, panelStore, opts.Logger)
	if opts.Viewer == nil {
		opts.Viewer = ui.NewOutputViewer(panelStore)
	}

	return &App{
		config:   cfg,
		logger:   opts.Logger,
		out:      opts.Out,
		backend:  backend,
		runs:     runStore,
		panel:    panelStore,
		builder:  command.NewBuilder(cfg),
		executor: execution.NewRunner(cfg, opts.Logger, runStore),
		reporter: ui.NewReporter(cfg, panel, notifier, opts.Spinner, opts.Logger),
		notifier: notifier,
		viewer:   opts.Viewer,
	}, nil
}

// Close releases the store
func (a *App) Close() error {
	return a.backend.Close()
}
