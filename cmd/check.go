package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/git-l10n/po2json/repository"
	"github.com/git-l10n/po2json/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type checkCommand struct {
	cmd *cobra.Command
}

func (v *checkCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "check [messages.json...]",
		Short: "Check generated messages.json files",
		Long: `Check that generated files are valid JSON objects whose keys look like
generated message keys and whose values all carry a string "message".

Without arguments, check every <locales-dir>/*/<output-name>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	return v.cmd
}

func (v checkCommand) Execute(args []string) error {
	files := args
	if len(files) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pattern := filepath.Join(repository.Resolve(cfg.LocalesDir), "*", cfg.OutputName)
		if files, err = filepath.Glob(pattern); err != nil {
			return NewStandardErrorF("bad pattern %s: %v", pattern, err)
		}
		if len(files) == 0 {
			return NewErrorWithUsageF("no files match %s", pattern)
		}
	}

	failed := 0
	for _, file := range files {
		if !v.checkFile(file) {
			failed++
		}
	}
	if failed > 0 {
		return NewStandardErrorF("%d of %d files failed the check", failed, len(files))
	}
	return nil
}

func (v checkCommand) checkFile(file string) bool {
	data, err := os.ReadFile(file)
	if err != nil {
		log.Errorf("%s\t%s", file, err)
		return false
	}
	result, err := util.CheckMessagesJSON(data)
	if err != nil {
		log.Errorf("%s\t%s", file, err)
		return false
	}

	if len(result.Problems) > 0 {
		util.ReportWarnAndErrors(result.Problems, file, false)
		return false
	}
	if result.Flagged > 0 {
		util.ReportWarnAndErrors([]string{
			fmt.Sprintf("%d of %d messages are flagged as unreviewed", result.Flagged, result.Entries),
		}, file, true)
	}
	log.Infof("%s: %d entries ok", file, result.Entries)
	return true
}

var checkCmd = checkCommand{}

func init() {
	rootCmd.AddCommand(checkCmd.Command())
}
