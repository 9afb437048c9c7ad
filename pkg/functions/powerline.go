package functions

import (
	"strings"

	"github.com/Hanaasagi/prmpt/pkg/colours"
	"github.com/Hanaasagi/prmpt/pkg/prmpt"
)

// Powerline font glyphs.
const (
	plBranch         = "\ue0a0"
	plLine           = "\ue0a1"
	plLock           = "\ue0a2"
	plRightArrowFill = "\ue0b0"
	plRightArrow     = "\ue0b1"
	plLeftArrowFill  = "\ue0b2"
	plLeftArrow      = "\ue0b3"
)

// Powerline provides segments and symbols for powerline patched fonts.
func Powerline(codec *colours.Codec) prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		return []prmpt.Function{
			{
				Name:    "powerline",
				MinArgs: 1,
				MaxArgs: 5,
				Help: "Render content as a powerline segment: powerline{content}[bg][bgnext][fg][dir]. " +
					"Set bgnext to the background of the following segment to chain them.",
				Call: func(ctx *prmpt.Context, args ...string) (string, error) {
					return powerline(codec, ctx, args[0], opt(args, 1, "blue"), opt(args, 2, "default"),
						opt(args, 3, "white"), opt(args, 4, "right"))
				},
			},
			constant("plbranch", plBranch, "Powerline branch symbol."),
			constant("plline", plLine, "Powerline line number symbol."),
			constant("pllock", plLock, "Powerline padlock symbol."),
			constant("plrightarrowfill", plRightArrowFill, "Powerline filled right arrow."),
			constant("plrightarrow", plRightArrow, "Powerline right arrow."),
			constant("plleftarrowfill", plLeftArrowFill, "Powerline filled left arrow."),
			constant("plleftarrow", plLeftArrow, "Powerline left arrow."),
		}
	})
}

func powerline(codec *colours.Codec, ctx *prmpt.Context, content, bg, bgNext, fg, dir string) (string, error) {
	if dir != "left" && dir != "right" {
		return "", prmpt.Invalidf("powerline: direction must be left or right, got %q", dir)
	}

	var sb strings.Builder
	start := func(fg, bg string) error {
		s, err := codec.Start(fg, bg, "", ctx.Wrap)
		if err != nil {
			return invalid(err)
		}
		sb.WriteString(s)
		return nil
	}

	// the arrow takes the segment's background as its foreground
	arrow := func(glyph string) error {
		if err := start("", bgNext); err != nil {
			return err
		}
		if err := start(bg, ""); err != nil {
			return err
		}
		sb.WriteString(glyph)
		return nil
	}

	if dir == "left" {
		if err := arrow(plLeftArrowFill); err != nil {
			return "", err
		}
	}
	if err := start(fg, ""); err != nil {
		return "", err
	}
	if err := start("", bg); err != nil {
		return "", err
	}
	sb.WriteString(" " + content + " ")
	if dir == "right" {
		if err := arrow(plRightArrowFill); err != nil {
			return "", err
		}
	}
	sb.WriteString(codec.Stop(ctx.Wrap))

	return sb.String(), nil
}
