package colours

import (
	"path/filepath"
	"strings"
)

// Markers is a shell-specific pair placed around escape codes so the shell's
// line editor does not count them as visible characters.
type Markers struct {
	Start string
	End   string
}

var (
	// BashMarkers are readline's RL_PROMPT_START_IGNORE / RL_PROMPT_END_IGNORE.
	BashMarkers = Markers{Start: "\001", End: "\002"}
	// ZshMarkers are zsh's %{ %} prompt escapes.
	ZshMarkers = Markers{Start: "%{", End: "%}"}
)

// MarkersForShell picks the marker family for the given shell path, e.g. the
// value of $SHELL. Anything that is not zsh gets the bash-family markers.
func MarkersForShell(shell string) Markers {
	name := filepath.Base(strings.TrimSpace(shell))
	if name == "zsh" {
		return ZshMarkers
	}
	return BashMarkers
}

// Wrap surrounds s with the marker pair.
func (m Markers) Wrap(s string) string {
	return m.Start + s + m.End
}

// Strip removes every marker occurrence from s, leaving the wrapped content.
func (m Markers) Strip(s string) string {
	if m.Start == "" && m.End == "" {
		return s
	}
	return strings.NewReplacer(m.Start, "", m.End, "").Replace(s)
}
