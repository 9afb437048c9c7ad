package vcs

import (
	"context"
	"encoding/xml"
	"errors"
	"strings"
)

// Subversion collects status with the svn command line tool.
type Subversion struct {
	runner  Runner
	command string
}

// NewSubversion creates an svn backend.
func NewSubversion(runner Runner) *Subversion {
	return &Subversion{runner: runner, command: "svn"}
}

func (s *Subversion) Name() string {
	return "svn"
}

func (s *Subversion) Status(ctx context.Context, dir string) (Snapshot, error) {
	info, stderr, _, err := s.runner.Run(ctx, dir, s.command, "info", "--xml")
	if errors.Is(err, ErrNotInstalled) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, err
	}
	if stderr != "" {
		return Snapshot{}, nil
	}

	snap, ok := parseSvnInfo(info)
	if !ok {
		return Snapshot{}, nil
	}

	status, stderr, _, err := s.runner.Run(ctx, dir, s.command, "status")
	if err == nil && stderr == "" {
		snap.Changed, snap.Untracked = parseSvnStatus(status)
	}
	return snap, nil
}

type svnInfo struct {
	Entries []struct {
		RelativeURL string `xml:"relative-url"`
		Commit      struct {
			Revision string `xml:"revision,attr"`
		} `xml:"commit"`
	} `xml:"entry"`
}

// parseSvnInfo reads `svn info --xml`. The branch is the first path element
// of the relative URL, plus the second one for branches/ and tags/.
func parseSvnInfo(out string) (Snapshot, bool) {
	var info svnInfo
	if err := xml.Unmarshal([]byte(strings.TrimSpace(out)), &info); err != nil || len(info.Entries) == 0 {
		return Snapshot{}, false
	}

	entry := info.Entries[0]
	snap := Snapshot{IsRepo: true, Commit: entry.Commit.Revision}

	rel := strings.TrimPrefix(entry.RelativeURL, "^")
	parts := strings.SplitN(strings.TrimPrefix(rel, "/"), "/", 3)
	snap.Branch = parts[0]
	if (snap.Branch == "branches" || snap.Branch == "tags") && len(parts) > 1 {
		snap.Branch += "/" + parts[1]
	}
	snap.RemoteBranch = snap.Branch

	return snap, true
}

// parseSvnStatus counts the first status column of `svn status`.
func parseSvnStatus(out string) (changed, untracked int) {
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 7 {
			continue
		}
		switch line[0] {
		case 'M', 'A', 'D', 'R', 'C', '!', '~':
			changed++
		case '?', 'I':
			untracked++
		}
	}
	return changed, untracked
}
