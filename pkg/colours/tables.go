// Package colours resolves colour and style identifiers into ANSI SGR escape
// fragments for use in shell prompts.
//
// Colour identifiers are tried against four stages in order:
//   - Palette entries (named fg/bg/style bundles, e.g. "info1", "error")
//   - 4-bit names and short codes ("red", "r", "lightblue", "lb")
//   - 8-bit indexed values ("0".."255", "#f80", greyscale "#g7a")
//   - 24-bit truecolor ("#ff8800", "255,136,0")
//
// Example usage:
//
//	codec := colours.NewCodec(colours.BashMarkers)
//	start, err := codec.Start("green", "", "bold", true)
//	prompt := start + "alice" + codec.Stop(true)
package colours

import "github.com/fatih/color"

// Spec is one entry of the fixed colour and style lookup tables.
type Spec struct {
	Name  string // Full name, e.g. "lightred"
	Code  string // Short code, e.g. "lr"
	Value int    // SGR value for the foreground channel (or the style value)
}

// Channel selects whether a colour applies to the text or its background.
type Channel int

const (
	Foreground Channel = iota
	Background
)

func (ch Channel) String() string {
	if ch == Background {
		return "background"
	}
	return "foreground"
}

const (
	// background SGR values are the foreground ones shifted by this offset
	bgOffset = 10

	// SGR "default colour"; fatih/color has no attribute for it
	defaultColourValue = 39

	resetValue = int(color.Reset)
)

// Colours is the 4-bit table: eight normal colours, their bright variants and
// the terminal default.
var Colours = []Spec{
	{Name: "black", Code: "k", Value: int(color.FgBlack)},
	{Name: "red", Code: "r", Value: int(color.FgRed)},
	{Name: "green", Code: "g", Value: int(color.FgGreen)},
	{Name: "yellow", Code: "y", Value: int(color.FgYellow)},
	{Name: "blue", Code: "b", Value: int(color.FgBlue)},
	{Name: "magenta", Code: "m", Value: int(color.FgMagenta)},
	{Name: "cyan", Code: "c", Value: int(color.FgCyan)},
	{Name: "lightgrey", Code: "lg", Value: int(color.FgWhite)},
	{Name: "darkgrey", Code: "dg", Value: int(color.FgHiBlack)},
	{Name: "lightred", Code: "lr", Value: int(color.FgHiRed)},
	{Name: "lightgreen", Code: "lgn", Value: int(color.FgHiGreen)},
	{Name: "lightyellow", Code: "ly", Value: int(color.FgHiYellow)},
	{Name: "lightblue", Code: "lb", Value: int(color.FgHiBlue)},
	{Name: "lightmagenta", Code: "lm", Value: int(color.FgHiMagenta)},
	{Name: "lightcyan", Code: "lc", Value: int(color.FgHiCyan)},
	{Name: "white", Code: "w", Value: int(color.FgHiWhite)},
	{Name: "default", Code: "d", Value: defaultColourValue},
}

// Styles is the fixed character style table.
var Styles = []Spec{
	{Name: "normal", Code: "n", Value: int(color.Reset)},
	{Name: "bold", Code: "b", Value: int(color.Bold)},
	{Name: "dim", Code: "d", Value: int(color.Faint)},
	{Name: "italic", Code: "i", Value: int(color.Italic)},
	{Name: "underline", Code: "u", Value: int(color.Underline)},
	{Name: "blink", Code: "bl", Value: int(color.BlinkSlow)},
	{Name: "inverted", Code: "in", Value: int(color.ReverseVideo)},
}

// Breakpoints used to quantize an 8-bit channel into one of the six steps of
// the 256-colour cube. The table is matched first-fit, so order matters.
var cubeBreakpoints = []int{0x30, 0x73, 0x9b, 0xc3, 0x3b, 0xff}

// Breakpoints for the greyscale ramp. The first slot maps to black (16), the
// last to white (231) and everything in between onto 232 and up.
var greyBreakpoints = []int{
	0x04, 0x0d, 0x17, 0x21, 0x2b, 0x35, 0x3f, 0x49, 0x53,
	0x5c, 0x63, 0x6e, 0x7b, 0x85, 0x8f, 0x99, 0xa3, 0xad,
	0xb7, 0xc1, 0xcb, 0xd5, 0xdf, 0xe9, 0xf7, 0xff,
}

// PaletteEntry is a named bundle of colour identifiers. Each field is itself
// an identifier resolved through the codec, empty meaning unset.
type PaletteEntry struct {
	Name       string
	Foreground string
	Background string
	Style      string
}

// DefaultPalette returns the built-in palette entries.
func DefaultPalette() []PaletteEntry {
	return []PaletteEntry{
		{Name: "dim1", Foreground: "lightgrey", Style: "dim"},
		{Name: "dim2", Foreground: "darkgrey", Style: "bold"},
		{Name: "dim3", Foreground: "darkgrey"},
		{Name: "bright", Foreground: "white"},
		{Name: "error", Foreground: "lightred"},
		{Name: "warning", Foreground: "yellow"},
		{Name: "info1", Foreground: "green"},
		{Name: "info2", Foreground: "lightblue"},
		{Name: "info3", Foreground: "lightmagenta"},
	}
}

func lookupSpec(table []Spec, identifier string) (Spec, bool) {
	for _, s := range table {
		if s.Name == identifier {
			return s, true
		}
	}
	for _, s := range table {
		if s.Code == identifier {
			return s, true
		}
	}
	return Spec{}, false
}
