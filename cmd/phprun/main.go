package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"phprun/internal/cli"
	"phprun/internal/cli/commands"
	"phprun/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "phprun",
		Short:         "Run the PHPUnit test under your cursor",
		Long:          `Editor companion for PHPUnit and Laravel Dusk. Given the open file and cursor line, phprun runs the enclosing test, the file, or the whole suite, and remembers the last run so it can be repeated from anywhere.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	streams := commands.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	cmds := commands.NewCommands(cfg, &flags, streams)
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	code := cli.ExitCode(err)
	// Failing tests and notified errors were already reported by the panel or a notification
	if !cli.Silent(err) {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
	}
	return code
}
