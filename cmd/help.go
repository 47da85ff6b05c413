package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	groupAnnotationKey = "group"

	groupGeneral = "General options"
	groupOutput  = "Output options"
	groupOther   = "Other options"
)

// groupedUsageTemplate is cobra's default usage template with local flags
// printed by flagUsagesByGroup.
const groupedUsageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{flagUsagesByGroup . | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// setFlagGroup puts the named local flags of c under group in help output.
func setFlagGroup(c *cobra.Command, group string, names ...string) {
	fs := c.Flags()
	for _, name := range names {
		_ = fs.SetAnnotation(name, groupAnnotationKey, []string{group})
	}
	c.SetUsageTemplate(groupedUsageTemplate)
}

// flagUsagesByGroup formats local flags by their "group" annotation.
// Groups are printed in first-seen order, and flags without a group go to
// "Other options".
func flagUsagesByGroup(cmd *cobra.Command) string {
	fs := cmd.LocalFlags()
	if fs == nil || !cmd.HasAvailableLocalFlags() {
		return ""
	}

	var groupOrder []string
	groups := make(map[string][]*pflag.Flag)
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		group := groupOther
		if g := flag.Annotations[groupAnnotationKey]; len(g) > 0 {
			group = g[0]
		} else if flag.Name == "help" {
			group = groupGeneral
		}
		if _, seen := groups[group]; !seen {
			groupOrder = append(groupOrder, group)
		}
		groups[group] = append(groups[group], flag)
	})

	var buf bytes.Buffer
	for _, group := range groupOrder {
		fmt.Fprintf(&buf, "\n%s:\n", group)
		formatFlags(&buf, groups[group])
	}
	return strings.TrimPrefix(buf.String(), "\n")
}

func formatFlags(buf *bytes.Buffer, flags []*pflag.Flag) {
	names := make([]string, 0, len(flags))
	width := 0
	for _, flag := range flags {
		name := fmt.Sprintf("      --%s", flag.Name)
		if flag.Shorthand != "" && flag.ShorthandDeprecated == "" {
			name = fmt.Sprintf("  -%s, --%s", flag.Shorthand, flag.Name)
		}
		if varname, _ := pflag.UnquoteUsage(flag); varname != "" {
			name += " " + varname
		}
		if len(name) > width {
			width = len(name)
		}
		names = append(names, name)
	}

	for i, flag := range flags {
		_, usage := pflag.UnquoteUsage(flag)
		if !isZeroValue(flag) {
			if flag.Value.Type() == "string" {
				usage += fmt.Sprintf(" (default %q)", flag.DefValue)
			} else {
				usage += fmt.Sprintf(" (default %s)", flag.DefValue)
			}
		}
		fmt.Fprintf(buf, "%-*s   %s\n", width, names[i], usage)
	}
}

func isZeroValue(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "false", "", "0", "<nil>", "[]":
		return true
	}
	return false
}

func init() {
	cobra.AddTemplateFunc("flagUsagesByGroup", flagUsagesByGroup)
}
