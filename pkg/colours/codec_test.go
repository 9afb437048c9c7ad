package colours

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	ansi "github.com/leaanthony/go-ansi-parser"
)

func TestResolve4Bit(t *testing.T) {
	codec := NewCodec(BashMarkers)

	for _, c := range Colours {
		for _, id := range []string{c.Name, c.Code} {
			got, err := codec.ResolveColour(id, Foreground)
			if err != nil {
				t.Fatalf("ResolveColour(%q) failed: %v", id, err)
			}
			if want := strconv.Itoa(c.Value); got != want {
				t.Errorf("ResolveColour(%q) = %q, want %q", id, got, want)
			}

			got, err = codec.ResolveColour(id, Background)
			if err != nil {
				t.Fatalf("ResolveColour(%q, Background) failed: %v", id, err)
			}
			if want := strconv.Itoa(c.Value + 10); got != want {
				t.Errorf("ResolveColour(%q, Background) = %q, want %q", id, got, want)
			}
		}
	}
}

func TestResolveColour(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ch   Channel
		want string
	}{
		{"short code", "m", Foreground, "35"},
		{"bright", "lightblue", Foreground, "94"},
		{"default fg", "default", Foreground, "39"},
		{"default bg", "default", Background, "49"},
		{"indexed", "145", Foreground, "38;5;145"},
		{"indexed zero", "0", Foreground, "38;5;0"},
		{"indexed max", "255", Foreground, "38;5;255"},
		{"indexed bg", "145", Background, "48;5;145"},
		{"cube black", "#000", Foreground, "38;5;16"},
		{"cube white", "#fff", Foreground, "38;5;231"},
		{"cube red", "#f00", Foreground, "38;5;196"},
		{"cube green", "#0f0", Foreground, "38;5;46"},
		{"cube blue", "#00f", Foreground, "38;5;21"},
		{"grey black", "#g00", Foreground, "38;5;16"},
		{"grey white", "#gff", Foreground, "38;5;231"},
		{"grey low", "#g05", Foreground, "38;5;232"},
		{"grey mid", "#g4e", Foreground, "38;5;239"},
		{"grey high", "#gee", Foreground, "38;5;255"},
		{"truecolor hex", "#010203", Foreground, "38;2;1;2;3"},
		{"truecolor hex white", "#ffffff", Foreground, "38;2;255;255;255"},
		{"truecolor triple", "1,2,3", Foreground, "38;2;1;2;3"},
		{"truecolor triple bg", "1,2,3", Background, "48;2;1;2;3"},
		{"truecolor hex bg", "#010203", Background, "48;2;1;2;3"},
		{"palette", "info2", Foreground, "94"},
		{"palette with style", "dim1", Foreground, "2;37"},
	}

	codec := NewCodec(BashMarkers)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.ResolveColour(tt.id, tt.ch)
			if err != nil {
				t.Fatalf("ResolveColour(%q) failed: %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("ResolveColour(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestResolveColourUnknown(t *testing.T) {
	codec := NewCodec(BashMarkers)

	for _, id := range []string{"", "burple", "256", "-1", "0x456", "#bat", "#12345", "0,0", "1,2,3,4", "300,0,0"} {
		_, err := codec.ResolveColour(id, Foreground)
		if !errors.Is(err, ErrUnknownColour) {
			t.Errorf("ResolveColour(%q): expected ErrUnknownColour, got %v", id, err)
		}
	}

	_, err := codec.ResolveColour("burple", Foreground)
	if err == nil || !strings.Contains(err.Error(), "burple") {
		t.Errorf("Expected error naming the identifier, got %v", err)
	}
}

func TestResolveColourIdempotent(t *testing.T) {
	codec := NewCodec(BashMarkers)

	for _, id := range []string{"red", "#a3e", "#gaa", "#123456", "12,34,56", "warning"} {
		first, err1 := codec.ResolveColour(id, Foreground)
		second, err2 := codec.ResolveColour(id, Foreground)
		if err1 != nil || err2 != nil {
			t.Fatalf("ResolveColour(%q) failed: %v %v", id, err1, err2)
		}
		if first != second {
			t.Errorf("ResolveColour(%q) not stable: %q then %q", id, first, second)
		}
	}
}

func TestResolveStyle(t *testing.T) {
	codec := NewCodec(BashMarkers)

	for _, s := range Styles {
		for _, id := range []string{s.Name, s.Code} {
			got, err := codec.ResolveStyle(id)
			if err != nil {
				t.Fatalf("ResolveStyle(%q) failed: %v", id, err)
			}
			if want := strconv.Itoa(s.Value); got != want {
				t.Errorf("ResolveStyle(%q) = %q, want %q", id, got, want)
			}
		}
	}

	for _, s := range Styles {
		id := strconv.Itoa(s.Value)
		if got, err := codec.ResolveStyle(id); err != nil || got != id {
			t.Errorf("ResolveStyle(%q) = %q, %v", id, got, err)
		}
	}

	for _, id := range []string{"upsidedown", "9", "01x"} {
		if _, err := codec.ResolveStyle(id); !errors.Is(err, ErrUnknownStyle) {
			t.Errorf("ResolveStyle(%q): expected ErrUnknownStyle, got %v", id, err)
		}
	}
}

func TestStartStop(t *testing.T) {
	tests := []struct {
		name          string
		fg, bg, style string
		wrap          bool
		want          string
	}{
		{"green wrapped", "green", "", "", true, "\001\033[32m\002"},
		{"green bare", "green", "", "", false, "\033[32m"},
		{"style first", "red", "", "b", true, "\001\033[1;31m\002"},
		{"indexed", "1", "", "", true, "\001\033[38;5;1m\002"},
		{"fg and bg", "1", "2", "", true, "\001\033[38;5;1;48;5;2m\002"},
		{"nothing set", "", "", "", true, ""},
	}

	codec := NewCodec(BashMarkers)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.Start(tt.fg, tt.bg, tt.style, tt.wrap)
			if err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	if got := codec.Stop(true); got != "\001\033[0m\002" {
		t.Errorf("Expected wrapped reset, got %q", got)
	}
	if got := codec.Stop(false); got != "\033[0m" {
		t.Errorf("Expected bare reset, got %q", got)
	}
}

func TestColourZshMarkers(t *testing.T) {
	codec := NewCodec(ZshMarkers)

	got, err := codec.Colour("alice", "green", "", "", true)
	if err != nil {
		t.Fatalf("Colour failed: %v", err)
	}
	if want := "%{\033[32m%}alice%{\033[0m%}"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if strings.Count(got, "%{") != strings.Count(got, "%}") {
		t.Errorf("Unbalanced markers in %q", got)
	}
	if !strings.HasSuffix(ZshMarkers.Strip(got), "\033[0m") {
		t.Errorf("Expected output to end with reset, got %q", got)
	}
}

func TestColourPlainText(t *testing.T) {
	codec := NewCodec(BashMarkers)

	got, err := codec.Colour("alice", "#ff8800", "blue", "underline", false)
	if err != nil {
		t.Fatalf("Colour failed: %v", err)
	}

	plain, err := ansi.Cleanse(got)
	if err != nil {
		t.Fatalf("Cleanse failed: %v", err)
	}
	if plain != "alice" {
		t.Errorf("Expected escapes to hide everything but the text, got %q", plain)
	}
}

func TestEditPalette(t *testing.T) {
	codec := NewCodec(BashMarkers)

	codec.SetPalette("info1", "red", "", "")
	if got, _ := codec.Start("info1", "", "", true); got != "\001\033[31m\002" {
		t.Errorf("Expected red info1, got %q", got)
	}

	codec.SetPalette("info1", "123", "", "")
	if got, _ := codec.Start("info1", "", "", true); got != "\001\033[38;5;123m\002" {
		t.Errorf("Expected indexed info1, got %q", got)
	}

	codec.SetPalette("mypal", "green", "", "")
	if got, _ := codec.Start("mypal", "", "", true); got != "\001\033[32m\002" {
		t.Errorf("Expected new palette entry, got %q", got)
	}

	codec.SetPalette("mypal", "", "black", "bold")
	if got, _ := codec.ResolveColour("mypal", Foreground); got != "1;32;40" {
		t.Errorf("Expected merged palette entry, got %q", got)
	}
}

func TestPaletteCycle(t *testing.T) {
	codec := NewCodec(BashMarkers)
	codec.SetPalette("ping", "pong", "", "")
	codec.SetPalette("pong", "ping", "", "")

	if _, err := codec.ResolveColour("ping", Foreground); !errors.Is(err, ErrUnknownColour) {
		t.Errorf("Expected cyclic palette to fail, got %v", err)
	}
}

func TestMarkersForShell(t *testing.T) {
	tests := []struct {
		shell string
		want  Markers
	}{
		{"/usr/bin/zsh", ZshMarkers},
		{"zsh", ZshMarkers},
		{"/bin/bash", BashMarkers},
		{"/bin/sh", BashMarkers},
		{"", BashMarkers},
	}

	for _, tt := range tests {
		if got := MarkersForShell(tt.shell); got != tt.want {
			t.Errorf("MarkersForShell(%q) = %q, want %q", tt.shell, got, tt.want)
		}
	}
}
