package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"phprun/internal/discovery"
	"phprun/internal/domain"
	"phprun/internal/execution"
)

const suiteNotFound = "Failed to find phpunit! Make sure you are in the test file from the suite you want run."

// RunTest runs the test function enclosing the cursor
func (a *App) RunTest(ctx context.Context, cur *discovery.Cursor) error {
	return a.runTest(ctx, cur, domain.KindUnit)
}

// RunClass runs every test in the current file
func (a *App) RunClass(ctx context.Context, cur *discovery.Cursor) error {
	return a.runClass(ctx, cur, domain.KindUnit)
}

// RunBrowserTest runs the Dusk test enclosing the cursor
func (a *App) RunBrowserTest(ctx context.Context, cur *discovery.Cursor) error {
	return a.runTest(ctx, cur, domain.KindBrowser)
}

// RunBrowserClass runs every Dusk test in the current file
func (a *App) RunBrowserClass(ctx context.Context, cur *discovery.Cursor) error {
	return a.runClass(ctx, cur, domain.KindBrowser)
}

// RunSuite runs the whole suite of the project the current file belongs to
func (a *App) RunSuite(ctx context.Context, cur *discovery.Cursor) error {
	a.reporter.Panel().Reset()

	file, err := discovery.ResolveFilePath(cur.File, true, a.config.UseTestFallback)
	if err != nil {
		a.notifier.Error(suiteNotFound, "", "")
		return notified(fmt.Errorf("%w: %w", ErrResolution, err))
	}

	return a.execute(ctx, cur, domain.RunRecord{Kind: domain.KindUnit}, a.projectDir(file))
}

// RunLast repeats the last run. Before anything was run it targets the current cursor.
func (a *App) RunLast(ctx context.Context, cur *discovery.Cursor) error {
	a.reporter.Panel().Reset()

	rec, err := a.runs.Get(func() domain.RunRecord {
		var rec domain.RunRecord
		if file, err := discovery.ResolveFilePath(cur.File, false, a.config.UseTestFallback); err == nil {
			rec.FilePath = file
		}
		if cur.HasPosition() {
			rec.FunctionName, _ = discovery.ResolveFunctionName(cur.Lines, cur.Row())
		}
		return rec
	})
	if err != nil {
		return err
	}

	projectFile := rec.FilePath
	if projectFile == "" {
		projectFile = cur.File
	}
	return a.execute(ctx, cur, rec, a.projectDir(projectFile))
}

func (a *App) runTest(ctx context.Context, cur *discovery.Cursor, kind domain.Kind) error {
	a.reporter.Panel().Reset()

	file, err := discovery.ResolveFilePath(cur.File, false, a.config.UseTestFallback)
	if err != nil {
		if a.config.UseTestFallback {
			a.logger.Debug("no test file, running last test", "err", err)
			return a.RunLast(ctx, cur)
		}
		return a.resolutionFailure(err)
	}

	var function string
	var ok bool
	if cur.HasPosition() {
		function, ok = discovery.ResolveFunctionName(cur.Lines, cur.Row())
	}
	if !ok {
		if a.config.UseTestFallback {
			a.logger.Debug("no function above cursor, running class", "file", file)
			return a.runClass(ctx, cur, kind)
		}
		return a.resolutionFailure(discovery.ErrNoFunction)
	}

	return a.execute(ctx, cur, domain.RunRecord{FilePath: file, FunctionName: function, Kind: kind}, a.projectDir(file))
}

func (a *App) runClass(ctx context.Context, cur *discovery.Cursor, kind domain.Kind) error {
	a.reporter.Panel().Reset()

	file, err := discovery.ResolveFilePath(cur.File, false, a.config.UseTestFallback)
	if err != nil {
		if a.config.UseTestFallback {
			a.logger.Debug("no test file, running last test", "err", err)
			return a.RunLast(ctx, cur)
		}
		return a.resolutionFailure(err)
	}

	return a.execute(ctx, cur, domain.RunRecord{FilePath: file, Kind: kind}, a.projectDir(file))
}

// execute records rec as the last run, then runs it and waits for the outcome
func (a *App) execute(ctx context.Context, cur *discovery.Cursor, rec domain.RunRecord, projectDir string) error {
	spec, err := a.builder.Build(rec.Kind, rec.FunctionName, rec.FilePath, projectDir)
	if err != nil {
		a.notifier.Error("Cannot run test", "", err.Error())
		return notified(fmt.Errorf("%w: %w", ErrResolution, err))
	}

	if err := a.saveBuffer(cur); err != nil {
		return err
	}

	// Stored before spawning so an interrupted run can still be repeated
	if err := a.runs.Put(rec); err != nil {
		return fmt.Errorf("record last test: %w", err)
	}
	a.logger.Debug("resolved target", "scope", rec.Scope(), "kind", rec.Kind, "file", rec.FilePath, "function", rec.FunctionName)

	a.reporter.Begin(spec.Render())
	h, err := a.executor.Start(ctx, spec, a.reporter)
	if err != nil {
		// The reporter shows spawn failures as they complete the run
		if errors.Is(err, execution.ErrSpawn) && a.reporter.Outcome() != nil {
			return notified(err)
		}
		return err
	}

	outcome := h.Wait()
	if outcome.Err != nil {
		return notified(outcome.Err)
	}
	if !outcome.Succeeded {
		return fmt.Errorf("%w: exit code %d", ErrTestsFailed, outcome.ExitCode)
	}
	return nil
}

// saveBuffer writes an unsaved editor buffer to disk when saveBeforeTest is on
func (a *App) saveBuffer(cur *discovery.Cursor) error {
	if !a.config.SaveBeforeTest || cur == nil || cur.Buffer == nil || cur.File == "" {
		return nil
	}
	info, err := os.Stat(cur.File)
	if err != nil {
		return fmt.Errorf("save %s: %w", cur.File, err)
	}
	if err := os.WriteFile(cur.File, cur.Buffer, info.Mode().Perm()); err != nil {
		return fmt.Errorf("save %s: %w", cur.File, err)
	}
	a.logger.Debug("saved buffer", "file", cur.File, "bytes", len(cur.Buffer))
	return nil
}

func (a *App) resolutionFailure(err error) error {
	switch {
	case errors.Is(err, discovery.ErrNoFile):
		a.notifier.Error("No test file", "Open a test file and try again (pass it with --file).", "")
	case errors.Is(err, discovery.ErrNotTestFile):
		a.notifier.Error("Not a test file", "The current file name does not contain \"test\". Enable useTestFallback to run it anyway.", "")
	case errors.Is(err, discovery.ErrNoFunction):
		a.notifier.Error("No test function", "Place the cursor inside a test method (pass the line with --line).", "")
	default:
		return fmt.Errorf("%w: %w", ErrResolution, err)
	}
	return notified(fmt.Errorf("%w: %w", ErrResolution, err))
}

// projectDir returns the absolute project root for file
func (a *App) projectDir(file string) string {
	dir := a.config.ProjectPath
	if a.config.Flags.ProjectPath == "" {
		dir = discovery.FindProjectRoot(file, a.config.ProjectPath)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
