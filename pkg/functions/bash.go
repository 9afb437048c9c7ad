package functions

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Hanaasagi/prmpt/pkg/prmpt"
	"github.com/ncruces/go-strftime"
)

// DefaultDateFormat is the datefmt layout used without an argument: the
// time of day.
const DefaultDateFormat = "#X"

// BashEscapes provides equivalents of the bash prompt escapes (\u, \h, \w
// and friends).
func BashEscapes(now func() time.Time) prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		return []prmpt.Function{
			{
				Name: "date",
				Help: `The date as "Weekday Month Date", e.g. "Tue May 26".`,
				Call: func(*prmpt.Context, ...string) (string, error) {
					return datefmt(now(), "#a #b #d"), nil
				},
			},
			{
				Name:    "datefmt",
				MaxArgs: 1,
				Help:    "Current time formatted with strftime directives written with # instead of %, default #X.",
				Call: func(_ *prmpt.Context, args ...string) (string, error) {
					return datefmt(now(), opt(args, 0, DefaultDateFormat)), nil
				},
			},
			{
				Name: "user",
				Help: "Name of the current user.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					return ctx.Username(), nil
				},
			},
			{
				Name: "hostname",
				Help: "Host name up to the first dot.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					host, _, _ := strings.Cut(ctx.Hostname(), ".")
					return host, nil
				},
			},
			{
				Name: "hostnamefull",
				Help: "Full host name.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					return ctx.Hostname(), nil
				},
			},
			{
				Name: "workingdir",
				Help: "Working directory with the home directory shown as ~.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					return abbreviateHome(ctx.Dir(), ctx.HomeDir()), nil
				},
			},
			{
				Name: "workingdirbase",
				Help: "Last element of the working directory.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					if ctx.Dir() == "" {
						return "", nil
					}
					return filepath.Base(ctx.Dir()), nil
				},
			},
			{
				Name:    "dollar",
				MaxArgs: 1,
				Help:    "# for root, $ for everybody else. The optional argument overrides the effective uid.",
				Call:    dollar,
			},
		}
	})
}

func datefmt(t time.Time, layout string) string {
	return strftime.Format(strings.ReplaceAll(layout, "#", "%"), t)
}

func abbreviateHome(dir, home string) string {
	home = strings.TrimSuffix(home, string(filepath.Separator))
	switch {
	case home == "" || dir == "":
		return dir
	case dir == home:
		return "~"
	case strings.HasPrefix(dir, home+string(filepath.Separator)):
		return "~" + dir[len(home):]
	default:
		return dir
	}
}

func dollar(ctx *prmpt.Context, args ...string) (string, error) {
	uid := ctx.UID
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return "", prmpt.Invalidf("dollar: %q is not a user id", args[0])
		}
		uid = n
	}
	if uid == 0 {
		return "#", nil
	}
	return "$", nil
}
