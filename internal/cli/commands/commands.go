package commands

import (
	"github.com/spf13/cobra"

	"phprun/internal/cli"
	"phprun/internal/config"
)

// Commands holds all CLI commands
type Commands struct {
	session *session

	Run    *RunCommand
	Output *OutputCommand
	List   *ListCommand
	Status *StatusCommand
	Config *ConfigCommand
}

// NewCommands creates all commands sharing cfg and flags
func NewCommands(cfg *config.Config, flags *cli.Flags, streams Streams) *Commands {
	s := &session{
		config:  cfg,
		flags:   flags,
		streams: streams,
	}

	return &Commands{
		session: s,
		Run:     NewRunCommand(s),
		Output:  NewOutputCommand(s),
		List:    NewListCommand(s),
		Status:  NewStatusCommand(s),
		Config:  NewConfigCommand(s),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		return c.session.prepare(cmd)
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.File, "file", "f", "", "Path of the file open in the editor")
	pf.IntVarP(&flags.Line, "line", "l", 0, "One-based cursor line in the file")
	pf.BoolVar(&flags.Stdin, "stdin", false, "Read the unsaved editor buffer from stdin")
	pf.StringVarP(&flags.ProjectPath, "project", "p", "", "Project root (default: nearest directory with composer.json, artisan or vendor)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	pf.BoolVar(&flags.NoTUI, "no-tui", false, "Print output instead of opening the interactive viewer")

	runs := []struct {
		use    string
		short  string
		long   string
		target Target
	}{
		{"test", "Run the test under the cursor", "Run the test function enclosing --line in --file", TargetTest},
		{"class", "Run the current test file", "Run every test in --file", TargetClass},
		{"suite", "Run the whole suite", "Run the suite of the project --file belongs to", TargetSuite},
		{"browser-test", "Run the Dusk test under the cursor", "Run the test function enclosing --line in --file with artisan dusk", TargetBrowserTest},
		{"browser-class", "Run the current Dusk test file", "Run every test in --file with artisan dusk", TargetBrowserClass},
		{"last", "Run the last test again", "Repeat the last run, whatever file is open", TargetLast},
	}
	for _, r := range runs {
		rootCmd.AddCommand(&cobra.Command{
			Use:   r.use,
			Short: r.short,
			Long:  r.long,
			Args:  cobra.NoArgs,
			RunE:  c.Run.Execute(r.target),
		})
	}

	// Output command
	outputCmd := &cobra.Command{
		Use:   "output",
		Short: "Toggle the output panel",
		Long:  "Show or hide the output of the last run. Without a subcommand the panel is toggled.",
		Args:  cobra.NoArgs,
		RunE:  c.Output.Toggle,
	}
	outputCmd.AddCommand(
		&cobra.Command{Use: "toggle", Short: "Toggle the output panel", Args: cobra.NoArgs, RunE: c.Output.Toggle},
		&cobra.Command{Use: "show", Short: "Show the output of the last run", Args: cobra.NoArgs, RunE: c.Output.Show},
		&cobra.Command{Use: "hide", Short: "Hide the output panel", Args: cobra.NoArgs, RunE: c.Output.Hide},
	)
	rootCmd.AddCommand(outputCmd)

	// List command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List functions in the current file",
		Long:  "List the functions declared in --file and mark the one a test run from --line would pick",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	})

	// Status command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the last run",
		Args:  cobra.NoArgs,
		RunE:  c.Status.Execute,
	})

	// Config command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  c.Config.Execute,
	})
}
