package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/git-l10n/po2json/catalog"
	"github.com/git-l10n/po2json/repository"
	"github.com/git-l10n/po2json/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type buildCommand struct {
	cmd *cobra.Command
	O   struct {
		DryRun bool
	}
}

func (v *buildCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "build [po-file...]",
		Short: "Generate <locales-dir>/<locale>/messages.json for PO files",
		Long: `Convert every PO file in the po directory, or the given PO files, and
write the result to <locales-dir>/<locale>/<output-name>.

The locale is taken from the PO file name, e.g. po/pt_BR.po is written to
_locales/pt_BR/messages.json. Relative directories are resolved against the
root of the git worktree when run inside one. Generated files are always
overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	fs := v.cmd.Flags()
	fs.SortFlags = false
	fs.IntP("jobs", "j", 0,
		"number of files to convert concurrently (default 4)")
	fs.String("output-name", "",
		"file name written in each locale directory (default \"messages.json\")")
	fs.BoolVarP(&v.O.DryRun, "dry-run", "n", false,
		"only show which files would be generated")
	_ = viper.BindPFlag("jobs", fs.Lookup("jobs"))
	_ = viper.BindPFlag("output-name", fs.Lookup("output-name"))
	setFlagGroup(v.cmd, groupGeneral, "jobs", "dry-run")
	setFlagGroup(v.cmd, groupOutput, "output-name")

	return v.cmd
}

func (v buildCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	poFiles := args
	if len(poFiles) == 0 {
		poDir := repository.Resolve(cfg.PoDir)
		if !util.IsDir(poDir) {
			return NewErrorWithUsageF("po directory %s does not exist", poDir)
		}
		if poFiles, err = util.CollectPoFiles(poDir); err != nil {
			return NewStandardErrorF("%v", err)
		}
		if len(poFiles) == 0 {
			return NewStandardErrorF("no PO files found in %s", poDir)
		}
	} else {
		for _, poFile := range poFiles {
			if !util.IsFile(poFile) {
				return NewErrorWithUsageF("file does not exist: %s", poFile)
			}
		}
	}

	targets, err := util.PlanBuild(poFiles, repository.Resolve(cfg.LocalesDir), cfg.OutputName)
	if err != nil {
		return NewStandardErrorF("%v", err)
	}

	if v.O.DryRun {
		out := v.cmd.OutOrStdout()
		for _, target := range targets {
			fmt.Fprintf(out, "%s -> %s\n", target.PoFile, target.Output)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var messages int64
	opts := catalogOptions(cfg)
	opts.OnComplete = func(r *catalog.Result) {
		atomic.AddInt64(&messages, int64(r.Messages))
	}
	if err := util.RunBuild(ctx, targets, opts, *cfg.Jobs); err != nil {
		return NewStandardErrorF("%v", err)
	}
	log.Infof("built %d locales with %d messages in total", len(targets), messages)
	return nil
}

var buildCmd = buildCommand{}

func init() {
	rootCmd.AddCommand(buildCmd.Command())
}
