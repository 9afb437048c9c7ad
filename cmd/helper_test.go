package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func TestColorUsageFunc(t *testing.T) {
	color.NoColor = true

	root := &cobra.Command{Use: "prmpt", Run: func(*cobra.Command, []string) {}}
	root.Flags().IntP("exit-status", "e", 0, "The exit status of the last command")
	root.Flags().Bool("no-wrap", false, "Do not wrap escape codes")
	root.AddCommand(&cobra.Command{Use: "palette", Short: "Show the palette", Run: func(*cobra.Command, []string) {}})

	var buf bytes.Buffer
	if err := ColorUsageFunc(&buf, root); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Usage:", "prmpt [command]", "Available Commands:", "palette", "-e, --exit-status", "--no-wrap"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in usage:\n%s", want, out)
		}
	}
}

func TestColorFlags(t *testing.T) {
	color.NoColor = true

	raw := "  -e, --exit-status int   status\n      --no-wrap           plain"
	if got := string(colorFlags(raw)); got != raw {
		t.Errorf("Expected flags unchanged without colour, got %q", got)
	}
}
