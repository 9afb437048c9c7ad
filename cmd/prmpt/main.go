package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/Hanaasagi/prmpt/cmd"
	"github.com/Hanaasagi/prmpt/internal/config"
	"github.com/Hanaasagi/prmpt/internal/logger"
	"github.com/Hanaasagi/prmpt/internal/sysenv"
	"github.com/Hanaasagi/prmpt/internal/userdir"
	"github.com/Hanaasagi/prmpt/pkg/prmpt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const appName = config.AppName

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

// initLogging opens the log file under the state directory. Logging problems
// never stop the prompt from rendering.
func initLogging(level string, debugMode bool) {
	lvl := logger.ResolveLevel(level, debugMode || sysenv.IsDebugMode())
	if _, err := logger.InitLogger(config.LogPath(), lvl); err != nil {
		logger.Discard()
		return
	}

	crashFilePath := filepath.Join(filepath.Dir(config.LogPath()), "crash")
	if f, err := os.Create(crashFilePath); err == nil {
		_ = debug.SetCrashOutput(f, debug.CrashOptions{})
	}
}

// runApp renders the prompt and returns the exit status to leave behind.
func runApp(opts *Options) (int, error) {
	if opts.showVersion {
		fmt.Printf("%s version: %s\n", appName, FullVersion)
		return 0, nil
	}

	app, err := NewApp(opts)
	if err != nil {
		// still leave the shell a usable prompt
		initLogging("", opts.debug)
		slog.Error("failed to set up prompt", "error", err)
		fmt.Printf("%s error: %v\n$ ", prmpt.ToolName, err)
		return opts.exitStatus, nil
	}
	initLogging(app.config.Log.Level, opts.debug)

	if opts.configPath == "" {
		if _, err := userdir.Ensure(config.Dir()); err != nil {
			slog.Warn("failed to initialise user directory", "dir", config.Dir(), "error", err)
		}
	}

	fmt.Print(app.Render(opts))
	return opts.exitStatus, nil
}

func newRootCommand(opts *Options, exitStatus *int) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Compile prompt scripts into shell prompts",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Render a shell prompt from a prmpt script. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runApp(opts)
			*exitStatus = code
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Read configuration from this file")
	rootCmd.PersistentFlags().StringVar(&opts.shell, "shell", "", "Shell the prompt is for (bash or zsh), default from $SHELL")

	rootCmd.Flags().IntVarP(&opts.exitStatus, "exit-status", "e", 0, "The exit status of the last command")
	rootCmd.Flags().StringVarP(&opts.workingDir, "working-dir", "w", "", "The working directory (default is the current directory)")
	rootCmd.Flags().StringVarP(&opts.script, "script", "s", "", "Render this script instead of the configured one")
	rootCmd.Flags().BoolVar(&opts.noWrap, "no-wrap", false, "Do not wrap escape codes in non-printing markers")
	rootCmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Log at debug level")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.AddCommand(
		newShellRCCommand("bashrc", bashrcLine),
		newShellRCCommand("zshrc", zshrcLine),
		newColoursCommand(opts),
		newPaletteCommand(opts),
		newFunctionsCommand(opts),
	)

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	return rootCmd
}

func main() {
	opts := &Options{}
	exitStatus := 0

	if err := newRootCommand(opts, &exitStatus).Execute(); err != nil {
		slog.Error("Error executing command", "error", err)
		os.Exit(1)
	}
	os.Exit(exitStatus)
}
