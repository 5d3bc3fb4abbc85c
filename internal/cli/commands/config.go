package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigCommand handles the config command
type ConfigCommand struct {
	session *session
}

// NewConfigCommand creates a new ConfigCommand
func NewConfigCommand(s *session) *ConfigCommand {
	return &ConfigCommand{session: s}
}

// Execute prints the effective configuration as YAML
func (cc *ConfigCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := cc.session.config
	out := cc.session.streams.Out

	storePath := "-"
	if cfg.Store.Driver != "mysql" {
		p, err := cfg.GetStorePath()
		if err != nil {
			return err
		}
		storePath = p
	}

	fmt.Fprintln(out, color.HiBlackString("# project: %s", cfg.ProjectPath))
	fmt.Fprintln(out, color.HiBlackString("# store file: %s", storePath))

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
