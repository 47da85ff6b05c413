package cmd

import (
	"errors"

	"github.com/git-l10n/po2json/catalog"
	"github.com/git-l10n/po2json/util"
	"github.com/spf13/cobra"
)

type convertCommand struct {
	cmd *cobra.Command
	O   struct {
		Output string
		Force  bool
	}
}

func (v *convertCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "convert [-o <output>] <po-file>",
		Short: "Convert a PO file to messages.json",
		Long: `Convert one PO file to the messages.json format used by browser extensions.

Every msgstr becomes an entry keyed by its normalized msgctxt and msgid,
with the plural form index appended. Untranslated messages fall back to
msgid. The output keeps the line terminator of the input file.

Write result to the file given by -o; use -o - or omit -o to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	fs := v.cmd.Flags()
	fs.SortFlags = false
	fs.StringVarP(&v.O.Output, "output", "o", "",
		"write output to file (use - for stdout); default is stdout")
	fs.BoolVarP(&v.O.Force, "force", "f", false,
		"overwrite output file without asking")
	setFlagGroup(v.cmd, groupOutput, "output", "force")

	return v.cmd
}

func (v convertCommand) Execute(args []string) error {
	if len(args) != 1 {
		return NewErrorWithUsage("convert requires exactly one argument: <po-file>")
	}
	poFile := args[0]
	if !util.IsFile(poFile) {
		return NewStandardErrorF("file does not exist: %s", poFile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := util.ConvertFile(poFile, v.O.Output, catalogOptions(cfg), v.O.Force); err != nil {
		var formatErr *catalog.FormatError
		if errors.As(err, &formatErr) {
			return NewStandardErrorF("%s is not a valid PO file: %v", poFile, formatErr)
		}
		return NewStandardErrorF("%v", err)
	}
	return nil
}

var convertCmd = convertCommand{}

func init() {
	rootCmd.AddCommand(convertCmd.Command())
}
