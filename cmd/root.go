// Package cmd provides CLI implementations.
package cmd

import (
	"fmt"

	"github.com/git-l10n/po2json/config"
	"github.com/git-l10n/po2json/flag"
	"github.com/git-l10n/po2json/repository"
	"github.com/git-l10n/po2json/version"
	log "github.com/sirupsen/logrus"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = rootCommand{}

// errorWithUsage marks an error that should display command usage.
type errorWithUsage struct{ msg string }

func (e errorWithUsage) Error() string { return e.msg }

// NewErrorWithUsage creates an error that should display usage (e.g. argument/flag errors).
func NewErrorWithUsage(a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprintln(a...)}
}

// NewErrorWithUsageF creates an error that should display usage.
func NewErrorWithUsageF(format string, a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprintf(format, a...)}
}

// NewStandardError creates an error that should not display usage.
func NewStandardError(a ...interface{}) error {
	return fmt.Errorf("%s", fmt.Sprint(a...))
}

// NewStandardErrorF creates an error that should not display usage.
func NewStandardErrorF(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}

// IsErrorWithUsage returns true if the error should display command usage.
func IsErrorWithUsage(err error) bool {
	_, ok := err.(errorWithUsage)
	return ok
}

// Response wraps error for subcommand, and is returned from cmd package.
type Response struct {
	// Err contains error returned from the subcommand executed.
	Err error

	// Cmd contains the command object.
	Cmd *cobra.Command
}

// IsUserError returns true if the command failed because of bad arguments.
func (r Response) IsUserError() bool {
	return IsErrorWithUsage(r.Err)
}

type rootCommand struct {
	cmd *cobra.Command
}

func (v *rootCommand) initLog() {
	f := new(log.TextFormatter)
	f.DisableTimestamp = true
	f.DisableLevelTruncation = true
	log.SetFormatter(f)
	verbose := flag.Verbose()
	quiet := flag.Quiet()
	if verbose == 1 {
		log.SetLevel(log.DebugLevel)
	} else if verbose > 1 {
		log.SetLevel(log.TraceLevel)
	} else if quiet == 1 {
		log.SetLevel(log.WarnLevel)
	} else if quiet > 1 {
		log.SetLevel(log.ErrorLevel)
	}
}

func (v *rootCommand) initEnv() {
	config.LoadEnv()
	flag.InitEnv()
}

func (v *rootCommand) initRepository() {
	repository.OpenRepository("")
}

// Command represents the base command when called without any subcommands
func (v *rootCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "po2json",
		Short: "Convert gettext PO files to messages.json locale files",
		// Let main.go handle error output; do not show usage on every error
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Version = version.Version
	v.cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
	pf := v.cmd.PersistentFlags()
	pf.CountP("quiet",
		"q",
		"quiet mode")
	pf.CountP("verbose",
		"v",
		"verbose mode")
	pf.String("config",
		"",
		"load configuration from this file (overrides ~/.po2json.yaml and repo po2json.yaml)")
	pf.String("po-dir",
		"",
		"directory of the PO files (default \"po\")")
	pf.String("locales-dir",
		"",
		"directory of the generated locales (default \"_locales\")")
	pf.Bool("minify",
		false,
		"write JSON without any whitespace")
	pf.Bool("expand",
		false,
		"pad messages with hyphens to the expected length of a translation")
	pf.Bool("flag-unreviewed",
		false,
		"wrap fuzzy and untranslated messages in \"# ... #\"")

	for _, name := range []string{
		"quiet",
		"verbose",
		"config",
		"po-dir",
		"locales-dir",
		"minify",
		"expand",
		"flag-unreviewed",
	} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}

	return v.cmd
}

func (v rootCommand) Execute(args []string) error {
	return NewErrorWithUsage("run 'po2json -h' for help")
}

func (v *rootCommand) AddCommand(cmds ...*cobra.Command) {
	v.Command().AddCommand(cmds...)
}

// persistentFlagCommands lists, for persistent flags not used by every
// command, the commands that show them in help.
var persistentFlagCommands = map[string][]string{
	"po-dir":          {"build", "stat", "config"},
	"locales-dir":     {"build", "check", "config"},
	"minify":          {"convert", "build", "config"},
	"expand":          {"convert", "build", "config"},
	"flag-unreviewed": {"convert", "build", "config"},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() Response {
	var (
		resp Response
	)

	// Must run before ExecuteC.
	hideUnusedPersistentFlags()

	// Ensure all commands use SilenceErrors so main.go handles error output.
	setSilenceErrorsRecursive(rootCmd.Command())

	c, err := rootCmd.Command().ExecuteC()
	resp.Err = err
	resp.Cmd = c
	return resp
}

func init() {
	cobra.OnInitialize(rootCmd.initLog)
	cobra.OnInitialize(rootCmd.initEnv)
	cobra.OnInitialize(rootCmd.initRepository)
}

// setSilenceErrorsRecursive sets SilenceErrors on c and all its descendants.
func setSilenceErrorsRecursive(c *cobra.Command) {
	c.SilenceErrors = true
	for _, child := range c.Commands() {
		setSilenceErrorsRecursive(child)
	}
}

// hideUnusedPersistentFlags sets a help func on every command, which hides
// the persistent flags listed in persistentFlagCommands that the command
// does not use.
func hideUnusedPersistentFlags() {
	root := rootCmd.Command()
	defaultHelp := root.HelpFunc() // capture before modifying root
	var visit func(*cobra.Command)
	visit = func(c *cobra.Command) {
		var hidden []string
		for name, users := range persistentFlagCommands {
			if !containsString(users, c.Name()) {
				hidden = append(hidden, name)
			}
		}
		markFlagsHiddenForHelp(c, hidden, defaultHelp)
		for _, child := range c.Commands() {
			visit(child)
		}
	}
	visit(root)
}

// markFlagsHiddenForHelp sets a help func that hides the named flags before
// rendering help for c.
func markFlagsHiddenForHelp(c *cobra.Command, names []string, baseHelp func(*cobra.Command, []string)) {
	c.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		// For root, use PersistentFlags(); for children, use InheritedFlags()
		for _, name := range persistentFlagNames() {
			f := cmd.InheritedFlags().Lookup(name)
			if f == nil {
				f = cmd.PersistentFlags().Lookup(name)
			}
			if f != nil {
				f.Hidden = containsString(names, name)
			}
		}
		baseHelp(cmd, args)
	})
}

func persistentFlagNames() []string {
	names := make([]string, 0, len(persistentFlagCommands))
	for name := range persistentFlagCommands {
		names = append(names, name)
	}
	return names
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
