package prmpt

import (
	"strings"
	"unicode/utf8"

	"github.com/Hanaasagi/prmpt/pkg/colours"
	"github.com/Hanaasagi/prmpt/pkg/vcs"
)

// Environment answers identity questions about the user running the shell.
type Environment interface {
	Username() string
	Hostname() string
	HomeDir() string
}

// VCSSource produces a version control summary for a directory. Collectors
// are expected to cache the snapshot until the directory changes.
type VCSSource interface {
	RefreshIfStale(dir string) vcs.Snapshot
}

// Cursor is the position the terminal cursor would be at after printing the
// text rendered so far. Text between a pair of non-printing markers is not
// counted.
type Cursor struct {
	Column int
	Row    int
}

// Reset moves the cursor back to the origin.
func (c *Cursor) Reset() {
	c.Column = 0
	c.Row = 0
}

// Advance scans s and moves the cursor accordingly: \n starts a new row, \r
// returns to column 0 and every other character takes one column.
func (c *Cursor) Advance(s string, m Markers) {
	hidden := false
	for len(s) > 0 {
		switch {
		case !hidden && m.Start != "" && strings.HasPrefix(s, m.Start):
			hidden = true
			s = s[len(m.Start):]
			continue
		case hidden && m.End != "" && strings.HasPrefix(s, m.End):
			hidden = false
			s = s[len(m.End):]
			continue
		}

		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if hidden {
			continue
		}

		switch r {
		case '\n':
			c.Row++
			c.Column = 0
		case '\r':
			c.Column = 0
		default:
			c.Column++
		}
	}
}

// Markers is the non-printing marker pair understood by the cursor.
type Markers = colours.Markers

// Context is the state shared by every function invoked during one render.
type Context struct {
	ExitCode   int
	WorkingDir string
	Columns    int
	Rows       int
	UID        int

	// Wrap enables non-printing markers around escape codes.
	Wrap    bool
	Markers Markers

	Cursor Cursor

	Env Environment
	VCS VCSSource

	// Args are the evaluated arguments of the macro currently being
	// expanded, read by \arg.
	Args []string

	depth    int
	snapshot *vcs.Snapshot
}

// NewContext returns a context with an 80x24 terminal and no collaborators.
func NewContext() *Context {
	return &Context{
		Columns: 80,
		Rows:    24,
		Wrap:    true,
		Markers: colours.BashMarkers,
	}
}

// Dir returns the working directory the render is about.
func (ctx *Context) Dir() string {
	return ctx.WorkingDir
}

// Snapshot returns the VCS summary for the working directory. The collector
// is asked at most once per render.
func (ctx *Context) Snapshot() vcs.Snapshot {
	if ctx.snapshot != nil {
		return *ctx.snapshot
	}

	var snap vcs.Snapshot
	if ctx.VCS != nil {
		snap = ctx.VCS.RefreshIfStale(ctx.WorkingDir)
	}
	ctx.snapshot = &snap
	return snap
}

// Username returns the current user, or "" without an environment.
func (ctx *Context) Username() string {
	if ctx.Env == nil {
		return ""
	}
	return ctx.Env.Username()
}

// Hostname returns the machine name, or "" without an environment.
func (ctx *Context) Hostname() string {
	if ctx.Env == nil {
		return ""
	}
	return ctx.Env.Hostname()
}

// HomeDir returns the user's home directory, or "" without an environment.
func (ctx *Context) HomeDir() string {
	if ctx.Env == nil {
		return ""
	}
	return ctx.Env.HomeDir()
}

// MaxMacroDepth bounds how deeply macros may expand into each other.
const MaxMacroDepth = 32

// EnterMacro records one more level of macro expansion, binding args for
// \arg. The returned function restores the previous state.
func (ctx *Context) EnterMacro(name string, args []string) (func(), error) {
	if ctx.depth >= MaxMacroDepth {
		return nil, Invalidf("%s: macro nesting deeper than %d", name, MaxMacroDepth)
	}

	saved := ctx.Args
	ctx.depth++
	ctx.Args = args

	return func() {
		ctx.depth--
		ctx.Args = saved
	}, nil
}

// beginRender clears the per-render state.
func (ctx *Context) beginRender() {
	ctx.Cursor.Reset()
	ctx.snapshot = nil
	ctx.depth = 0
}
