// nolint:errcheck
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	titleStyle       = color.New(color.Bold, color.FgHiWhite)
	commandStyle     = color.New(color.FgHiGreen)
	descriptionStyle = color.New(color.FgHiCyan)
	aliasStyle       = color.New(color.FgHiGreen)
	exampleStyle     = color.New(color.FgHiCyan)
	flagStyle        = color.New(color.Bold, color.FgHiCyan)
	tipStyle         = color.New(color.FgHiYellow)
)

var HelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}` + titleStyle.Sprintf("Scripts:") + color.New(color.FgYellow).Sprintln(
	`	run "prmpt functions" for the functions a prompt script can call`,
)

func rpad(s string, padding int) string {
	return fmt.Sprintf("%-*s", padding, s)
}

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

var (
	reWithShort = regexp.MustCompile(`^( {2,})(-[a-zA-Z]), (--[a-zA-Z0-9-]+)(.*)$`)
	reLongOnly  = regexp.MustCompile(`^( {2,})(--[a-zA-Z0-9-]+)(.*)$`)
)

// colorFlags highlights the flag names in pflag's usage listing.
func colorFlags(raw string) []byte {
	var out bytes.Buffer

	for _, line := range strings.Split(raw, "\n") {
		if m := reWithShort.FindStringSubmatch(line); m != nil {
			out.WriteString(m[1])
			flagStyle.Fprint(&out, m[2])
			out.WriteString(", " + m[3] + m[4])
		} else if m := reLongOnly.FindStringSubmatch(line); m != nil {
			out.WriteString(m[1])
			flagStyle.Fprint(&out, m[2])
			out.WriteString(m[3])
		} else {
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}

	return bytes.TrimSuffix(out.Bytes(), []byte("\n"))
}

func writeSection(buf *bytes.Buffer, title string) {
	fmt.Fprint(buf, "\n\n")
	titleStyle.Fprint(buf, title)
}

// ColorUsageFunc writes cobra's usage text with colours.
func ColorUsageFunc(w io.Writer, cmd *cobra.Command) error {
	buf := &bytes.Buffer{}

	titleStyle.Fprint(buf, "Usage:")
	if cmd.Runnable() {
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprint(buf, cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprintf(buf, "%s [command]", cmd.CommandPath())
	}

	if len(cmd.Aliases) > 0 {
		writeSection(buf, "Aliases:")
		fmt.Fprint(buf, "\n  ")
		aliasStyle.Fprint(buf, strings.Join(cmd.Aliases, ", "))
	}

	if cmd.HasExample() {
		writeSection(buf, "Examples:")
		fmt.Fprint(buf, "\n")
		exampleStyle.Fprint(buf, cmd.Example)
	}

	if cmd.HasAvailableSubCommands() {
		writeSection(buf, "Available Commands:")
		for _, subcmd := range cmd.Commands() {
			if subcmd.IsAvailableCommand() || subcmd.Name() == "help" {
				fmt.Fprint(buf, "\n  ")
				commandStyle.Fprint(buf, rpad(subcmd.Name(), subcmd.NamePadding()))
				fmt.Fprint(buf, " ")
				descriptionStyle.Fprint(buf, subcmd.Short)
			}
		}
	}

	if cmd.HasAvailableLocalFlags() {
		writeSection(buf, "Flags:")
		fmt.Fprint(buf, "\n")
		buf.Write(colorFlags(trimRightSpace(cmd.LocalFlags().FlagUsages())))
	}

	if cmd.HasAvailableInheritedFlags() {
		writeSection(buf, "Global Flags:")
		fmt.Fprint(buf, "\n")
		buf.Write(colorFlags(trimRightSpace(cmd.InheritedFlags().FlagUsages())))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprint(buf, "\n\n")
		tipStyle.Fprintf(buf, "Use \"%s [command] --help\" for more information about a command.", cmd.CommandPath())
	}

	fmt.Fprintln(buf)

	_, err := w.Write(buf.Bytes())
	return err
}
