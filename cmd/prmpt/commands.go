package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/Hanaasagi/prmpt/pkg/colours"
)

func bashrcLine(exe string) string {
	return fmt.Sprintf("export PS1=\"\\$(%s -e \\$? --shell bash)\"\n", exe)
}

func zshrcLine(exe string) string {
	return fmt.Sprintf("setopt PROMPT_SUBST\nPROMPT='$(%s -e $? --shell zsh)'\n", exe)
}

func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return appName
	}
	if abs, err := filepath.Abs(exe); err == nil {
		return abs
	}
	return exe
}

func newShellRCCommand(name string, line func(exe string) string) *cobra.Command {
	shell := strings.TrimSuffix(name, "rc")
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Print the line that installs %s in ~/.%s", appName, name),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s prompt for %s\n", appName, shell)
			fmt.Fprint(cmd.OutOrStdout(), line(executablePath()))
		},
	}
}

func newColoursCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "colours",
		Aliases: []string{"colors"},
		Short:   "Show every colour in every style",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(opts)
			if err != nil {
				return err
			}
			return printColours(cmd.OutOrStdout(), app.codec)
		},
	}
}

func printColours(w io.Writer, codec *colours.Codec) error {
	for _, style := range colours.Styles {
		for _, c := range colours.Colours {
			line, err := codec.Colour(fmt.Sprintf("%s : %s", style.Name, c.Name), c.Name, "", style.Name, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func newPaletteCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the colour palette, including entries from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(opts)
			if err != nil {
				return err
			}
			return printPalette(cmd.OutOrStdout(), app.codec)
		},
	}
}

func printPalette(w io.Writer, codec *colours.Codec) error {
	for _, entry := range codec.Palette() {
		line, err := codec.Colour(entry.Name, entry.Foreground, entry.Background, entry.Style, false)
		if err != nil {
			return fmt.Errorf("palette %s: %w", entry.Name, err)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func newFunctionsCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions available to prompt scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(opts)
			if err != nil {
				return err
			}
			printFunctions(cmd.OutOrStdout(), app)
			return nil
		},
	}
}

func printFunctions(w io.Writer, app *App) {
	nameStyle := color.New(color.FgHiGreen)

	fns := app.compiler.Registry().Functions()
	width := 0
	for _, fn := range fns {
		width = max(width, runewidth.StringWidth(fn.Usage()))
	}
	for _, fn := range fns {
		nameStyle.Fprint(w, runewidth.FillRight(fn.Usage(), width))
		fmt.Fprintf(w, "  %s\n", fn.Help)
	}
}
