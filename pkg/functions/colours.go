package functions

import (
	"fmt"

	"github.com/Hanaasagi/prmpt/pkg/colours"
	"github.com/Hanaasagi/prmpt/pkg/prmpt"
)

// Colours provides the colour and style wrappers: one foreground and one
// background function per basic colour and one function per style.
func Colours(codec *colours.Codec) prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		fns := []prmpt.Function{
			{
				Name:    "startcolour",
				MaxArgs: 3,
				Help:    "startcolour[fg][bg][style]: switch colours on without switching them off.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					out, err := codec.Start(opt(args, 0, ""), opt(args, 1, ""), opt(args, 2, ""), ctx.Wrap)
					return out, invalid(err)
				},
			},
			{
				Name: "stopcolour",
				Help: "Reset colours and styles.",
				Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
					return codec.Stop(ctx.Wrap), nil
				},
			},
			{
				Name:    "colour",
				MinArgs: 1,
				MaxArgs: 4,
				Help:    "colour{text}[fg][bg][style]: text in the given colours.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return colour(codec, ctx, args[0], opt(args, 1, ""), opt(args, 2, ""), opt(args, 3, ""))
				},
			},
		}

		for _, spec := range colours.Colours {
			name := spec.Name
			fns = append(fns,
				prmpt.Function{
					Name:    name,
					MinArgs: 1,
					MaxArgs: 2,
					Help:    fmt.Sprintf("%s{text}[style]: text with a %s foreground.", name, name),
					Call: func(ctx *prmpt.Context, args ...string) (string, error) {
						return colour(codec, ctx, args[0], name, "", opt(args, 1, ""))
					},
				},
				prmpt.Function{
					Name:    name + "bg",
					MinArgs: 1,
					MaxArgs: 2,
					Help:    fmt.Sprintf("%sbg{text}[style]: text on a %s background.", name, name),
					Call: func(ctx *prmpt.Context, args ...string) (string, error) {
						return colour(codec, ctx, args[0], "", name, opt(args, 1, ""))
					},
				},
			)
		}

		for _, spec := range colours.Styles {
			name := spec.Name
			fns = append(fns, prmpt.Function{
				Name:    name,
				MinArgs: 1,
				MaxArgs: 1,
				Help:    fmt.Sprintf("%s{text}: text in %s style.", name, name),
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return colour(codec, ctx, args[0], "", "", name)
				},
			})
		}

		return fns
	})
}

// Palette provides one function per palette entry known when the provider is
// listed.
func Palette(codec *colours.Codec) prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		entries := codec.Palette()
		fns := make([]prmpt.Function, 0, len(entries))
		for _, entry := range entries {
			name := entry.Name
			fns = append(fns, prmpt.Function{
				Name:    name,
				MinArgs: 1,
				MaxArgs: 1,
				Help:    fmt.Sprintf("%s{text}: text in the %s palette colour.", name, name),
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return colour(codec, ctx, args[0], name, "", "")
				},
			})
		}
		return fns
	})
}

func colour(codec *colours.Codec, ctx *prmpt.Context, text, fg, bg, style string) (string, error) {
	out, err := codec.Colour(text, fg, bg, style, ctx.Wrap)
	return out, invalid(err)
}
