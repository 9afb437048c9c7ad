package functions

import (
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	ansi "github.com/leaanthony/go-ansi-parser"
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/Hanaasagi/prmpt/pkg/colours"
	"github.com/Hanaasagi/prmpt/pkg/prmpt"
)

// Misc provides expressions, comparisons and string helpers.
func Misc(codec *colours.Codec) prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		fns := []prmpt.Function{
			{
				Name:    "isrealpath",
				MaxArgs: 1,
				Help:    "True if the path (default: working directory) contains no symbolic links.",
				Call:    isRealPath,
			},
			{
				Name: "exitsuccess",
				Help: "True if the last command exited with status 0.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					return formatBool(ctx.ExitCode == 0), nil
				},
			},
			{
				Name: "exitcode",
				Help: "Exit status of the last command.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					return strconv.Itoa(ctx.ExitCode), nil
				},
			},
			{
				Name:    "equals",
				MinArgs: 2,
				MaxArgs: 2,
				Help:    "True if both arguments are the same text.",
				Call: func(_ *prmpt.Context, args ...string) (string, error) {
					return formatBool(args[0] == args[1]), nil
				},
			},
			{
				Name:    "ifexpr",
				MinArgs: 1,
				MaxArgs: 3,
				Help:    "ifexpr{cond}[then][else]: then if cond is true (non-zero, true, t, y, yes), else otherwise.",
				Call: func(_ *prmpt.Context, args ...string) (string, error) {
					if toBool(args[0]) {
						return opt(args, 1, ""), nil
					}
					return opt(args, 2, ""), nil
				},
			},
			{
				Name:    "lower",
				MinArgs: 1,
				MaxArgs: 1,
				Help:    "Lower case text.",
				Call: func(_ *prmpt.Context, args ...string) (string, error) {
					return strings.ToLower(args[0]), nil
				},
			},
			{
				Name:    "upper",
				MinArgs: 1,
				MaxArgs: 1,
				Help:    "Upper case text.",
				Call: func(_ *prmpt.Context, args ...string) (string, error) {
					return strings.ToUpper(args[0]), nil
				},
			},
			{
				Name:    "join",
				MinArgs: 1,
				MaxArgs: prmpt.Variadic,
				Help:    "join{delim}{a}{b}...: the remaining arguments joined by the first.",
				Call: func(_ *prmpt.Context, args ...string) (string, error) {
					return strings.Join(args[1:], args[0]), nil
				},
			},
			{
				Name:    "justify",
				MinArgs: 3,
				MaxArgs: 5,
				Help:    "justify{left}{centre}{right}[lpad][rpad]: spread three columns across the terminal.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return justify(ctx, args[0], args[1], args[2], opt(args, 3, " "), opt(args, 4, " "))
				},
			},
			{
				Name:    "right",
				MinArgs: 1,
				MaxArgs: 1,
				Help:    "Right align text on the terminal.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return justify(ctx, "", "", args[0], " ", " ")
				},
			},
			{
				Name: "smiley",
				Help: "$:) in green after success, $:( in red after failure; # instead of $ for root.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					return smiley(codec, ctx)
				},
			},
			{
				Name:    "randomcolour",
				MinArgs: 1,
				MaxArgs: 2,
				Help:    "Colour text with a random 8-bit colour; the optional seed makes it repeatable.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return randomColour(codec, ctx, args[0], opt(args, 1, ""))
				},
			},
			{
				Name:    "hashedcolour",
				MinArgs: 1,
				MaxArgs: 1,
				Help:    "Colour text with an 8-bit colour derived from the text itself.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return randomColour(codec, ctx, args[0], args[0])
				},
			},
		}

		return append(fns, comparisons()...)
	})
}

func comparisons() []prmpt.Function {
	numeric := func(name, help string, cmp func(a, b float64) bool) prmpt.Function {
		return prmpt.Function{
			Name:    name,
			MinArgs: 2,
			MaxArgs: 2,
			Help:    help,
			Call: func(_ *prmpt.Context, args ...string) (string, error) {
				a, err := toNumber(name, args[0])
				if err != nil {
					return "", err
				}
				b, err := toNumber(name, args[1])
				if err != nil {
					return "", err
				}
				return formatBool(cmp(a, b)), nil
			},
		}
	}
	pick := func(name, help string, first func(a, b float64) bool) prmpt.Function {
		fn := numeric(name, help, first)
		fn.Call = func(_ *prmpt.Context, args ...string) (string, error) {
			a, err := toNumber(name, args[0])
			if err != nil {
				return "", err
			}
			b, err := toNumber(name, args[1])
			if err != nil {
				return "", err
			}
			if first(a, b) {
				return args[0], nil
			}
			return args[1], nil
		}
		return fn
	}

	return []prmpt.Function{
		pick("max", "The larger of two numbers.", func(a, b float64) bool { return a > b }),
		pick("min", "The smaller of two numbers.", func(a, b float64) bool { return a < b }),
		numeric("gt", "True if a > b.", func(a, b float64) bool { return a > b }),
		numeric("lt", "True if a < b.", func(a, b float64) bool { return a < b }),
		numeric("gte", "True if a >= b.", func(a, b float64) bool { return a >= b }),
		numeric("lte", "True if a <= b.", func(a, b float64) bool { return a <= b }),
	}
}

func isRealPath(ctx *prmpt.Context, args ...string) (string, error) {
	path := opt(args, 0, ctx.Dir())
	if path == "" {
		return formatBool(false), nil
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return formatBool(false), nil
	}
	return formatBool(resolved == filepath.Clean(path)), nil
}

// visibleLength counts the characters of s that take a terminal column:
// non-printing markers and escape sequences are ignored.
func visibleLength(ctx *prmpt.Context, s string) int {
	if ctx.Wrap {
		s = ctx.Markers.Strip(s)
	}
	if plain, err := ansi.Cleanse(s); err == nil {
		s = plain
	}
	return utf8.RuneCountInString(s)
}

// justify places left at the start of the line, right at the end and centre
// as close to the middle as the left column allows.
func justify(ctx *prmpt.Context, left, centre, right, lpad, rpad string) (string, error) {
	l := visibleLength(ctx, left)
	c := visibleLength(ctx, centre)
	r := visibleLength(ctx, right)

	padSize := ctx.Columns - (l + c + r)
	if padSize <= 1 {
		return left + centre + right, nil
	}

	lpadSize := ctx.Columns/2 - (l + c/2)
	if lpadSize <= 0 {
		lpadSize = 1
	}
	rpadSize := padSize - lpadSize
	if rpadSize < 0 {
		rpadSize = 0
	}

	return left + strings.Repeat(lpad, lpadSize) + centre + strings.Repeat(rpad, rpadSize) + right, nil
}

func smiley(codec *colours.Codec, ctx *prmpt.Context) (string, error) {
	colour, face := "green", ":)"
	if ctx.ExitCode != 0 {
		colour, face = "red", ":("
	}

	sign, err := dollar(ctx)
	if err != nil {
		return "", err
	}
	out, err := codec.Colour(sign+face, colour, "", "bold", ctx.Wrap)
	return out, invalid(err)
}

func randomColour(codec *colours.Codec, ctx *prmpt.Context, text, seed string) (string, error) {
	var n int
	if seed != "" {
		h := fnv1a.HashString64(seed)
		n = rand.New(rand.NewPCG(h, h>>1)).IntN(254) + 1
	} else {
		n = rand.IntN(254) + 1
	}

	out, err := codec.Colour(text, strconv.Itoa(n), "", "", ctx.Wrap)
	return out, invalid(err)
}
