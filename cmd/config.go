package cmd

import (
	"github.com/git-l10n/po2json/config"
	"github.com/spf13/cobra"
)

type configCommand struct {
	cmd *cobra.Command
}

func (v *configCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration as YAML after reading ~/.po2json.yaml, po2json.yaml
in the repository root (or the file given by --config), PO2JSON_*
environment variables and command line options.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	return v.cmd
}

func (v configCommand) Execute(args []string) error {
	if len(args) > 0 {
		return NewErrorWithUsage("config takes no arguments")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return NewStandardErrorF("%v", err)
	}
	_, err = v.cmd.OutOrStdout().Write(data)
	return err
}

var configCmd = configCommand{}

func init() {
	rootCmd.AddCommand(configCmd.Command())
}
