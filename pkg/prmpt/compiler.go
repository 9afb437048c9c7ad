package prmpt

import (
	"errors"
	"log/slog"
	"strings"
)

// Compiler evaluates parsed scripts against a function registry.
type Compiler struct {
	registry *Registry
}

// NewCompiler creates a compiler dispatching to registry.
func NewCompiler(registry *Registry) *Compiler {
	return &Compiler{registry: registry}
}

// Registry returns the registry the compiler dispatches to.
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// Execute parses and renders source. A failed render yields the diagnostic
// text in place of the prompt.
func (c *Compiler) Execute(source string, ctx *Context) string {
	out, err := c.Render(Parse(source), ctx)
	if err != nil {
		var serr *ScriptError
		if errors.As(err, &serr) {
			slog.Warn("render failed", "line", serr.Line, "error", serr.Err)
			return serr.Diagnostic()
		}
		slog.Warn("render failed", "error", err)
		return (&ScriptError{Err: err}).Diagnostic()
	}
	return out
}

// Render evaluates a whole script. Per-render state on ctx (cursor, VCS
// snapshot, macro depth) is reset first. On failure no partial output is
// returned and the error is a *ScriptError.
func (c *Compiler) Render(seq Sequence, ctx *Context) (string, error) {
	ctx.beginRender()
	return c.Expand(seq, ctx)
}

// Expand evaluates seq inside an ongoing render, continuing from the current
// cursor. Functions that render script fragments of their own use it.
func (c *Compiler) Expand(seq Sequence, ctx *Context) (string, error) {
	var sb strings.Builder
	if err := c.evalSequence(seq, ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *Compiler) evalSequence(seq Sequence, ctx *Context, sb *strings.Builder) error {
	for _, n := range seq {
		var text string

		switch n := n.(type) {
		case *Literal:
			text = n.Value
		case *Invocation:
			out, err := c.invoke(n, ctx)
			if err != nil {
				return err
			}
			text = out
		}

		sb.WriteString(text)
		ctx.Cursor.Advance(text, ctx.cursorMarkers())
	}
	return nil
}

// invoke renders the arguments of inv and calls the named function. While
// arguments render, the cursor runs ahead so position-sensitive functions see
// where their output would start; it is rewound before the call so that the
// function's result is charged exactly once.
func (c *Compiler) invoke(inv *Invocation, ctx *Context) (string, error) {
	saved := ctx.Cursor

	args := make([]string, 0, len(inv.Args)+len(inv.OptArgs))
	for _, group := range [][]Sequence{inv.Args, inv.OptArgs} {
		for _, arg := range group {
			var sb strings.Builder
			if err := c.evalSequence(arg, ctx, &sb); err != nil {
				return "", err
			}
			args = append(args, sb.String())
		}
	}

	ctx.Cursor = saved

	out, err := c.registry.Call(ctx, inv.Name, args...)
	if err != nil {
		var serr *ScriptError
		if errors.As(err, &serr) {
			return "", err
		}
		return "", &ScriptError{Line: inv.Line, Err: err}
	}
	return out, nil
}

func (ctx *Context) cursorMarkers() Markers {
	if !ctx.Wrap {
		return Markers{}
	}
	return ctx.Markers
}
