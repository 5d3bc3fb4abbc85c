package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"phprun/internal/app"
	"phprun/internal/cli"
	"phprun/internal/config"
	"phprun/internal/discovery"
	"phprun/internal/shellenv"
)

// Streams are the standard streams commands talk to
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// session is the per-invocation state shared by all commands
type session struct {
	config  *config.Config
	flags   *cli.Flags
	streams Streams
	logger  *log.Logger
}

// prepare loads the configuration of the project the current file belongs to
// and sets up logging and PATH. Runs before every command.
func (s *session) prepare(cmd *cobra.Command) error {
	flags := s.flags.ToConfigFlags()

	dir := flags.ProjectPath
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = discovery.FindProjectRoot(flags.File, cwd)
	}

	loaded, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loaded.Flags = flags
	*s.config = *loaded

	s.logger = cli.NewLogger(s.streams.Err, s.config.LogLevel, flags.Verbose)
	s.logger.Debug("loaded config", "project", s.config.ProjectPath, "store", s.config.Store.Driver)

	if s.config.LoginShellPath {
		if err := shellenv.Apply(cmd.Context(), s.logger); err != nil {
			s.logger.Warn("could not read PATH from login shell", "err", err)
		}
	}
	return nil
}

// open builds the App. The caller closes it.
func (s *session) open() (*app.App, error) {
	opts := app.Options{
		Out:    s.streams.Out,
		Logger: s.logger,
	}
	if isTerminal(s.streams.Err) {
		opts.Spinner = s.streams.Err
	}
	return app.New(s.config, opts)
}

// cursor loads the editor context from --file, --line and --stdin
func (s *session) cursor() (*discovery.Cursor, error) {
	var buffer io.Reader
	if s.config.Flags.Stdin {
		buffer = s.streams.In
	}
	return discovery.LoadCursor(s.config.Flags.File, s.config.Flags.Line, buffer)
}

// interactive reports whether the full-screen viewer can be used
func (s *session) interactive() bool {
	return !s.config.Flags.NoTUI && isTerminal(s.streams.Out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
