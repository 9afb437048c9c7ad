package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Hanaasagi/prmpt/internal/config"
	"github.com/Hanaasagi/prmpt/internal/sysenv"
	"github.com/Hanaasagi/prmpt/internal/userdir"
	"github.com/Hanaasagi/prmpt/pkg/colours"
	"github.com/Hanaasagi/prmpt/pkg/functions"
	"github.com/Hanaasagi/prmpt/pkg/prmpt"
	"github.com/Hanaasagi/prmpt/pkg/vcs"
)

// Options holds the command line settings of a render.
type Options struct {
	exitStatus  int
	workingDir  string
	script      string
	configPath  string
	shell       string
	noWrap      bool
	debug       bool
	showVersion bool
}

// App is a configured prompt renderer.
type App struct {
	config     *config.Config
	configPath string
	codec      *colours.Codec
	compiler   *prmpt.Compiler
}

// NewApp loads the configuration and builds the function registry: the
// built-ins, then the user functions from the config file.
func NewApp(opts *Options) (*App, error) {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg, err := config.LoadConfigFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", configPath, err)
	}

	shell := opts.shell
	if shell == "" {
		shell = cfg.Prompt.Shell
	}
	if shell == "" {
		shell = sysenv.Shell()
	}

	codec := colours.NewCodec(colours.MarkersForShell(shell))
	for _, entry := range cfg.PaletteEntries() {
		codec.SetPalette(entry.Name, entry.Foreground, entry.Background, entry.Style)
	}

	registry, err := functions.NewRegistry(codec, time.Now)
	if err != nil {
		return nil, err
	}
	compiler := prmpt.NewCompiler(registry)
	if err := registry.RegisterProvider(functions.Macros(compiler, cfg.Functions)); err != nil {
		return nil, fmt.Errorf("user functions: %w", err)
	}

	return &App{
		config:     cfg,
		configPath: configPath,
		codec:      codec,
		compiler:   compiler,
	}, nil
}

// Context builds the execution context for one render.
func (a *App) Context(opts *Options) *prmpt.Context {
	ctx := prmpt.NewContext()

	ctx.ExitCode = opts.exitStatus
	ctx.WorkingDir = opts.workingDir
	if ctx.WorkingDir == "" {
		ctx.WorkingDir = sysenv.WorkingDir()
	}
	ctx.Columns, ctx.Rows = sysenv.TerminalSize()
	ctx.UID = sysenv.UID()
	ctx.Wrap = a.config.Prompt.Wrap && !opts.noWrap
	ctx.Markers = a.codec.Markers()
	ctx.Env = sysenv.New()
	ctx.VCS = vcs.NewDefaultCollector()

	return ctx
}

// Script returns the source of the prompt script. An unreadable script falls
// back to the built-in default so the shell always gets a prompt.
func (a *App) Script(opts *Options) string {
	path := opts.script
	if path == "" {
		path = a.config.ScriptPath(a.configPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read prompt script, using the default", "path", path, "error", err)
		return userdir.DefaultScript()
	}
	return string(data)
}

// Render produces the prompt text.
func (a *App) Render(opts *Options) string {
	start := time.Now()
	out := a.compiler.Execute(a.Script(opts), a.Context(opts))
	slog.Debug("rendered prompt", "duration", time.Since(start), "exit_status", opts.exitStatus)
	return out
}
