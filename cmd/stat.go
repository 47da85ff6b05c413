package cmd

import (
	"github.com/git-l10n/po2json/repository"
	"github.com/git-l10n/po2json/util"
	"github.com/spf13/cobra"
)

type statCommand struct {
	cmd *cobra.Command
}

func (v *statCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "stat [po-file...]",
		Short: "Report statistics for PO files",
		Long: `Report what a conversion of each PO file would see:
  messages     - records with a msgid, header excluded
  json entries - entries written to messages.json
  plurals      - records with plural translations
  contexts     - records with msgctxt
  fuzzy        - records marked fuzzy
  untranslated - records with at least one empty msgstr
  rolled back  - obsolete records dropped
  skipped      - lines that could not be parsed

Without arguments, report on every PO file in the po directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	return v.cmd
}

func (v statCommand) Execute(args []string) error {
	poFiles := args
	if len(poFiles) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		poDir := repository.Resolve(cfg.PoDir)
		if poFiles, err = util.CollectPoFiles(poDir); err != nil {
			return NewErrorWithUsage(err)
		}
		if len(poFiles) == 0 {
			return NewStandardErrorF("no PO files found in %s", poDir)
		}
	}

	var stats []*util.CatalogStats
	for _, poFile := range poFiles {
		if !util.Exist(poFile) {
			return NewErrorWithUsage("file does not exist:", poFile)
		}
		s, err := util.CountCatalogStats(poFile)
		if err != nil {
			return NewStandardErrorF("%v", err)
		}
		stats = append(stats, s)
	}

	util.ReportCatalogStats(v.cmd.OutOrStdout(), stats)
	return nil
}

var statCmd = statCommand{}

func init() {
	rootCmd.AddCommand(statCmd.Command())
}
