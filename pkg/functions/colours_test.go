package functions

import (
	"strings"
	"testing"
	"time"

	"github.com/Hanaasagi/prmpt/pkg/colours"
	"github.com/Hanaasagi/prmpt/pkg/prmpt"
)

func TestColourFunctions(t *testing.T) {
	runRenderCases(t, newTestCompiler(t), []renderCase{
		{name: "foreground", source: `\red{x}`, expected: "\x1b[31mx\x1b[0m"},
		{name: "bright foreground", source: `\lightred{x}`, expected: "\x1b[91mx\x1b[0m"},
		{name: "background", source: `\redbg{x}`, expected: "\x1b[41mx\x1b[0m"},
		{name: "default background", source: `\defaultbg{x}`, expected: "\x1b[49mx\x1b[0m"},
		{name: "style", source: `\bold{x}`, expected: "\x1b[1mx\x1b[0m"},
		{name: "colour with style", source: `\green[bold]{x}`, expected: "\x1b[1;32mx\x1b[0m"},
		{name: "palette", source: `\info1{x}`, expected: "\x1b[32mx\x1b[0m"},
		{name: "palette with style", source: `\dim1{x}`, expected: "\x1b[2;37mx\x1b[0m"},
		{name: "startcolour", source: `\startcolour{red}{blue}{bold}`, expected: "\x1b[1;31;44m"},
		{name: "startcolour empty", source: `\startcolour`, expected: ""},
		{name: "stopcolour", source: `\stopcolour`, expected: "\x1b[0m"},
		{name: "colour 8-bit", source: `\colour{x}{#fff}`, expected: "\x1b[38;5;231mx\x1b[0m"},
		{name: "colour 24-bit background", source: `\colour{x}[][10,20,30]`, expected: "\x1b[48;2;10;20;30mx\x1b[0m"},
		{
			name:     "unknown colour",
			source:   "\n\\colour{x}{nope}",
			expected: "Prmpt error on line 2: unknown colour \"nope\"\n$ ",
		},
		{
			name:     "unknown style",
			source:   `\green{x}[shiny]`,
			expected: "Prmpt error on line 1: unknown style \"shiny\"\n$ ",
		},
	})
}

func TestColourWrapping(t *testing.T) {
	compiler := newTestCompiler(t)

	ctx := newTestContext()
	ctx.Wrap = true
	got := compiler.Execute(`\green{\user}`, ctx)

	expected := "\001\x1b[32m\002alice\001\x1b[0m\002"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if ctx.Cursor.Column != len("alice") {
		t.Errorf("Expected cursor column 5, got %d", ctx.Cursor.Column)
	}
}

func TestColourProviderListsPalette(t *testing.T) {
	codec := colours.NewCodec(colours.BashMarkers)
	codec.SetPalette("alert", "white", "red", "bold")

	names := map[string]bool{}
	for _, fn := range Colours(codec).List() {
		names[fn.Name] = true
	}
	for _, fn := range Palette(codec).List() {
		names[fn.Name] = true
	}

	for _, want := range []string{"red", "redbg", "default", "bold", "inverted", "info1", "alert", "colour"} {
		if !names[want] {
			t.Errorf("Expected function %q to be provided", want)
		}
	}
}

func TestPaletteDoesNotShadowBuiltins(t *testing.T) {
	codec := colours.NewCodec(colours.BashMarkers)
	codec.SetPalette("join", "red", "", "")
	codec.SetPalette("alert", "red", "", "")

	reg, err := NewRegistry(codec, func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	compiler := prmpt.NewCompiler(reg)

	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{name: "builtin kept", source: `\join{:}{a}{b}`, expected: "a:b"},
		{name: "shadowed entry still a colour", source: `\colour{x}[join]`, expected: "\x1b[31mx\x1b[0m"},
		{name: "new entry registered", source: `\alert{x}`, expected: "\x1b[31mx\x1b[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compiler.Execute(tt.source, newTestContext()); got != tt.expected {
				t.Errorf("Execute(%q) = %q, expected %q", tt.source, got, tt.expected)
			}
		})
	}
}

func TestPowerline(t *testing.T) {
	runRenderCases(t, newTestCompiler(t), []renderCase{
		{
			name:     "right",
			source:   `\powerline{x}`,
			expected: "\x1b[97m\x1b[44m x \x1b[49m\x1b[34m\ue0b0\x1b[0m",
		},
		{
			name:     "chained",
			source:   `\powerline[27][33]{x}`,
			expected: "\x1b[97m\x1b[48;5;27m x \x1b[48;5;33m\x1b[38;5;27m\ue0b0\x1b[0m",
		},
		{
			name:     "left",
			source:   `\powerline{x}[red][default][black][left]`,
			expected: "\x1b[49m\x1b[31m\ue0b2\x1b[30m\x1b[41m x \x1b[0m",
		},
		{
			name:     "bad direction",
			source:   `\powerline{x}[red][default][black][up]`,
			expected: "Prmpt error on line 1: powerline: direction must be left or right, got \"up\"\n$ ",
		},
		{name: "symbols", source: `\plbranch\pllock`, expected: "\ue0a0\ue0a2"},
	})
}

func TestBuiltinNamesArePublic(t *testing.T) {
	reg, err := NewRegistry(colours.NewCodec(colours.BashMarkers), nil)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	for _, fn := range reg.Functions() {
		if fn.Name == "" || strings.HasPrefix(fn.Name, "_") {
			t.Errorf("Unexpected function name %q", fn.Name)
		}
		if fn.Help == "" {
			t.Errorf("Function %q has no help", fn.Name)
		}
	}
	if _, ok := reg.Lookup("justify"); !ok {
		t.Error("Expected justify to be registered")
	}
}
