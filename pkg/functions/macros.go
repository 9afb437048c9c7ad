package functions

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Hanaasagi/prmpt/pkg/prmpt"
)

// Macros provides user functions written in prmpt itself. Each body is
// parsed once; a call renders it with \arg{N} bound to the call's arguments.
// Register it after the built-ins so user functions can replace them.
func Macros(compiler *prmpt.Compiler, bodies map[string]string) prmpt.Provider {
	names := make([]string, 0, len(bodies))
	for name := range bodies {
		names = append(names, name)
	}
	sort.Strings(names)

	fns := make([]prmpt.Function, 0, len(names))
	for _, name := range names {
		fns = append(fns, macro(compiler, name, bodies[name]))
	}

	return prmpt.ProviderFunc(func() []prmpt.Function {
		return fns
	})
}

func macro(compiler *prmpt.Compiler, name, body string) prmpt.Function {
	parsed := prmpt.Parse(body)

	return prmpt.Function{
		Name:    name,
		MaxArgs: prmpt.Variadic,
		Help:    "User function: " + strings.Join(strings.Fields(body), " "),
		Call: func(ctx *prmpt.Context, args ...string) (string, error) {
			leave, err := ctx.EnterMacro(name, args)
			if err != nil {
				return "", err
			}
			defer leave()

			// the caller charges the result to the cursor
			saved := ctx.Cursor
			out, err := compiler.Expand(parsed, ctx)
			ctx.Cursor = saved

			if err != nil {
				var serr *prmpt.ScriptError
				if errors.As(err, &serr) {
					return "", fmt.Errorf("in %s, line %d: %w", name, serr.Line, serr.Err)
				}
				return "", err
			}
			return out, nil
		},
	}
}

// Arguments provides \arg, which reads the arguments of the macro being
// expanded.
func Arguments() prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		return []prmpt.Function{
			{
				Name:    "arg",
				MinArgs: 1,
				MaxArgs: 1,
				Help:    "arg{n}: the n-th argument (from 1) of the user function being expanded.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					n, err := strconv.Atoi(strings.TrimSpace(args[0]))
					if err != nil || n < 1 {
						return "", prmpt.Invalidf("arg: %q is not an argument number", args[0])
					}
					return opt(ctx.Args, n-1, ""), nil
				},
			},
		}
	})
}
