// Package functions provides the built-in prmpt functions, grouped into
// providers that are registered together.
package functions

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Hanaasagi/prmpt/pkg/colours"
	"github.com/Hanaasagi/prmpt/pkg/prmpt"
)

// Builtins returns every built-in provider in registration order. Palette
// functions are not included; see NewRegistry.
func Builtins(codec *colours.Codec, now func() time.Time) []prmpt.Provider {
	if now == nil {
		now = time.Now
	}
	return []prmpt.Provider{
		Special(),
		Powerline(codec),
		BashEscapes(now),
		Misc(codec),
		Colours(codec),
		VCS(),
		Arguments(),
	}
}

// NewRegistry builds a registry holding all built-in functions, followed by
// the palette functions. A palette entry never replaces a built-in of the
// same name; it stays usable as a colour.
func NewRegistry(codec *colours.Codec, now func() time.Time) (*prmpt.Registry, error) {
	reg := prmpt.NewRegistry()
	for _, p := range Builtins(codec, now) {
		if err := reg.RegisterProvider(p); err != nil {
			return nil, err
		}
	}

	for _, fn := range Palette(codec).List() {
		if _, ok := reg.Lookup(fn.Name); ok {
			slog.Warn("palette entry shadows a built-in function, not registering it", "name", fn.Name)
			continue
		}
		if err := reg.Register(fn); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// constant builds a function without arguments returning s.
func constant(name, s, help string) prmpt.Function {
	return prmpt.Function{
		Name: name,
		Help: help,
		Call: func(*prmpt.Context, ...string) (string, error) {
			return s, nil
		},
	}
}

// opt returns args[i], or def when the argument was not given.
func opt(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// toBool interprets a rendered value as a condition: a non-zero integer or
// one of true/t/y/yes.
func toBool(s string) bool {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n != 0
	}
	switch strings.ToLower(s) {
	case "true", "t", "y", "yes":
		return true
	}
	return false
}

func toNumber(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, prmpt.Invalidf("%s: %q is not a number", name, s)
	}
	return f, nil
}

// invalid turns a colour codec error into an argument error.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	var argErr *prmpt.ArgumentError
	if errors.As(err, &argErr) {
		return err
	}
	return &prmpt.ArgumentError{Msg: err.Error()}
}
