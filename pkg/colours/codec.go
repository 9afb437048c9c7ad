package colours

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	escapeStart = "\033["
	escapeEnd   = "m"

	// palette entries may refer to other palette entries; this bounds the chain
	maxPaletteDepth = 8
)

var (
	ErrUnknownColour = errors.New("unknown colour")
	ErrUnknownStyle  = errors.New("unknown style")
)

var (
	shortHexRegex = regexp.MustCompile(`^#[0-9a-fA-Fg][0-9a-fA-F]{2}$`)
	longHexRegex  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Codec owns the palette and turns colour/style identifiers into SGR
// fragments. One codec is built per process; the palette may be changed
// between renders but never while one is running.
type Codec struct {
	markers Markers
	palette []PaletteEntry
}

// NewCodec creates a codec using the given non-printing markers and the
// default palette.
func NewCodec(markers Markers) *Codec {
	return &Codec{
		markers: markers,
		palette: DefaultPalette(),
	}
}

// Markers returns the non-printing marker pair chosen for this process.
func (c *Codec) Markers() Markers {
	return c.markers
}

// Palette returns a copy of the current palette entries in definition order.
func (c *Codec) Palette() []PaletteEntry {
	out := make([]PaletteEntry, len(c.palette))
	copy(out, c.palette)
	return out
}

// SetPalette adds a palette entry or updates an existing one. Empty fields
// leave the current value untouched.
func (c *Codec) SetPalette(name, fg, bg, style string) {
	if name == "" {
		return
	}

	idx := c.paletteIndex(name)
	if idx < 0 {
		c.palette = append(c.palette, PaletteEntry{Name: name})
		idx = len(c.palette) - 1
	}

	entry := &c.palette[idx]
	if fg != "" {
		entry.Foreground = fg
	}
	if bg != "" {
		entry.Background = bg
	}
	if style != "" {
		entry.Style = style
	}
}

func (c *Codec) paletteIndex(name string) int {
	for i := range c.palette {
		if c.palette[i].Name == name {
			return i
		}
	}
	return -1
}

// ResolveColour converts a colour identifier into an SGR fragment (without
// the escape introducer), e.g. "red" -> "31", "#f00" -> "38;5;196".
func (c *Codec) ResolveColour(identifier string, ch Channel) (string, error) {
	return c.resolveColour(identifier, ch, 0)
}

func (c *Codec) resolveColour(identifier string, ch Channel, depth int) (string, error) {
	if identifier == "" {
		return "", fmt.Errorf("%w %q", ErrUnknownColour, identifier)
	}

	if code, ok, err := c.resolvePalette(identifier, depth); ok || err != nil {
		return code, err
	}
	if code, ok := resolve4bit(identifier, ch); ok {
		return code, nil
	}
	if code, ok := resolve8bit(identifier, ch); ok {
		return code, nil
	}
	if code, ok := resolve24bit(identifier, ch); ok {
		return code, nil
	}

	return "", fmt.Errorf("%w %q", ErrUnknownColour, identifier)
}

// ResolveStyle converts a style identifier (SGR value, full name or short
// code) into its SGR value.
func (c *Codec) ResolveStyle(identifier string) (string, error) {
	if s, ok := lookupSpec(Styles, identifier); ok {
		return strconv.Itoa(s.Value), nil
	}
	if n, err := strconv.Atoi(identifier); err == nil {
		for _, s := range Styles {
			if s.Value == n {
				return strconv.Itoa(n), nil
			}
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStyle, identifier)
}

func (c *Codec) resolvePalette(identifier string, depth int) (string, bool, error) {
	idx := c.paletteIndex(identifier)
	if idx < 0 {
		return "", false, nil
	}
	if depth >= maxPaletteDepth {
		return "", true, fmt.Errorf("%w %q: palette nesting too deep", ErrUnknownColour, identifier)
	}

	entry := c.palette[idx]
	parts := make([]string, 0, 3)

	if entry.Style != "" {
		code, err := c.ResolveStyle(entry.Style)
		if err != nil {
			return "", true, err
		}
		parts = append(parts, code)
	}
	if entry.Foreground != "" {
		code, err := c.resolveColour(entry.Foreground, Foreground, depth+1)
		if err != nil {
			return "", true, err
		}
		parts = append(parts, code)
	}
	if entry.Background != "" {
		code, err := c.resolveColour(entry.Background, Background, depth+1)
		if err != nil {
			return "", true, err
		}
		parts = append(parts, code)
	}

	return strings.Join(parts, ";"), true, nil
}

func resolve4bit(identifier string, ch Channel) (string, bool) {
	s, ok := lookupSpec(Colours, identifier)
	if !ok {
		return "", false
	}
	value := s.Value
	if ch == Background {
		value += bgOffset
	}
	return strconv.Itoa(value), true
}

func resolve8bit(identifier string, ch Channel) (string, bool) {
	prefix := "38;5;"
	if ch == Background {
		prefix = "48;5;"
	}

	if strings.HasPrefix(identifier, "#") {
		if !shortHexRegex.MatchString(identifier) {
			return "", false
		}

		if identifier[1] == 'g' {
			v, _ := strconv.ParseUint(identifier[2:4], 16, 8)
			return prefix + strconv.Itoa(greyIndex(int(v))), true
		}

		var steps [3]int
		for i := range steps {
			nibble, _ := strconv.ParseUint(identifier[i+1:i+2], 16, 8)
			steps[i] = cubeStep(int(nibble)*16 + 7)
		}
		return prefix + strconv.Itoa(steps[0]*36+steps[1]*6+steps[2]+16), true
	}

	n, err := strconv.Atoi(identifier)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return prefix + strconv.Itoa(n), true
}

func cubeStep(v int) int {
	for idx, bp := range cubeBreakpoints {
		if v <= bp {
			return idx
		}
	}
	return 0
}

func greyIndex(v int) int {
	segment := 0
	for idx, bp := range greyBreakpoints {
		if v <= bp {
			segment = idx
			break
		}
	}

	switch segment {
	case 0:
		return 16
	case len(greyBreakpoints) - 1:
		return 231
	default:
		return segment + 231
	}
}

func resolve24bit(identifier string, ch Channel) (string, bool) {
	prefix := "38;2;"
	if ch == Background {
		prefix = "48;2;"
	}

	if strings.HasPrefix(identifier, "#") {
		if !longHexRegex.MatchString(identifier) {
			return "", false
		}
		r, _ := strconv.ParseUint(identifier[1:3], 16, 8)
		g, _ := strconv.ParseUint(identifier[3:5], 16, 8)
		b, _ := strconv.ParseUint(identifier[5:7], 16, 8)
		return fmt.Sprintf("%s%d;%d;%d", prefix, r, g, b), true
	}

	parts := strings.Split(identifier, ",")
	if len(parts) != 3 {
		return "", false
	}

	var rgb [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		rgb[i] = n
	}
	return fmt.Sprintf("%s%d;%d;%d", prefix, rgb[0], rgb[1], rgb[2]), true
}

// Encode turns an SGR fragment into a full escape sequence, optionally
// wrapped in the non-printing markers. An empty fragment encodes to "".
func (c *Codec) Encode(code string, wrap bool) string {
	if code == "" {
		return ""
	}
	s := escapeStart + code + escapeEnd
	if wrap {
		s = c.markers.Wrap(s)
	}
	return s
}

// Start builds the escape that switches on the given style, foreground and
// background, in that order. Empty identifiers are skipped; if all are empty
// the result is "".
func (c *Codec) Start(fg, bg, style string, wrap bool) (string, error) {
	parts := make([]string, 0, 3)

	if style != "" {
		code, err := c.ResolveStyle(style)
		if err != nil {
			return "", err
		}
		parts = append(parts, code)
	}
	if fg != "" {
		code, err := c.ResolveColour(fg, Foreground)
		if err != nil {
			return "", err
		}
		parts = append(parts, code)
	}
	if bg != "" {
		code, err := c.ResolveColour(bg, Background)
		if err != nil {
			return "", err
		}
		parts = append(parts, code)
	}

	return c.Encode(strings.Join(parts, ";"), wrap), nil
}

// Stop builds the reset escape.
func (c *Codec) Stop(wrap bool) string {
	return c.Encode(strconv.Itoa(resetValue), wrap)
}

// Colour wraps text in a start/stop pair.
func (c *Codec) Colour(text, fg, bg, style string, wrap bool) (string, error) {
	start, err := c.Start(fg, bg, style, wrap)
	if err != nil {
		return "", err
	}
	return start + text + c.Stop(wrap), nil
}
