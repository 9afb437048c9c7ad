package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Git collects status with the git command line tool.
type Git struct {
	runner  Runner
	command string
	now     func() time.Time
}

// NewGit creates a git backend.
func NewGit(runner Runner) *Git {
	return &Git{runner: runner, command: "git", now: time.Now}
}

func (g *Git) Name() string {
	return "git"
}

func (g *Git) Status(ctx context.Context, dir string) (Snapshot, error) {
	stdout, _, code, err := g.runner.Run(ctx, dir, g.command, "status", "--porcelain", "-b")
	if errors.Is(err, ErrNotInstalled) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, err
	}
	if code != 0 {
		// not a repository, or git failed in a way we cannot summarise
		return Snapshot{}, nil
	}

	snap := parseGitStatus(stdout)
	snap.IsRepo = true

	root := dir
	rev, _, code, err := g.runner.Run(ctx, dir, g.command, "rev-parse", "--show-cdup", "--verify", "--short", "HEAD")
	if err == nil && code == 0 {
		var cdup string
		cdup, snap.Commit = parseRevParse(rev)
		root = filepath.Join(dir, cdup)
	}

	if snap.Branch == detachedHead {
		snap.Branch = g.detachedName(ctx, dir, snap.Commit)
	}

	snap.LastFetched = g.lastFetched(root)
	return snap, nil
}

const detachedHead = "HEAD (no branch)"

// detachedName names a detached HEAD by its tags, or by its commit.
func (g *Git) detachedName(ctx context.Context, dir, commit string) string {
	out, _, code, err := g.runner.Run(ctx, dir, g.command, "tag", "--points-at", "HEAD")
	if err == nil && code == 0 {
		var tags []string
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			if tag := strings.TrimSpace(line); tag != "" {
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			return strings.Join(tags, ", ")
		}
	}
	return "#" + commit
}

func (g *Git) lastFetched(root string) time.Duration {
	for _, name := range []string{"FETCH_HEAD", "HEAD"} {
		info, err := os.Stat(filepath.Join(root, ".git", name))
		if err == nil {
			return g.now().Sub(info.ModTime()).Truncate(time.Second)
		}
	}
	return 0
}

// parseRevParse splits the output of
// `git rev-parse --show-cdup --verify --short HEAD`. At the repository root
// the cdup line is empty.
func parseRevParse(out string) (cdup, commit string) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) >= 2 {
		return strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1])
	}
	return "", strings.TrimSpace(lines[0])
}

// parseGitStatus reads `git status --porcelain -b`.
func parseGitStatus(out string) Snapshot {
	var snap Snapshot

	for _, line := range strings.Split(out, "\n") {
		if len(line) < 2 {
			continue
		}
		prefix := line[:2]
		rest := ""
		if len(line) > 3 {
			rest = line[3:]
		}

		switch prefix {
		case "##":
			snap.Branch, snap.RemoteBranch, snap.Ahead, snap.Behind = parseGitBranch(rest)
		case "??":
			snap.Untracked++
		case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
			snap.Unmerged++
		default:
			if strings.ContainsRune("MADRC", rune(prefix[0])) {
				snap.Staged++
			}
			if strings.ContainsRune("MD", rune(prefix[1])) {
				snap.Changed++
			}
		}
	}
	return snap
}

// parseGitBranch reads the branch header line without its "## " prefix:
//
//	dev
//	HEAD (no branch)
//	master...origin/master [ahead 1, behind 2]
func parseGitBranch(line string) (branch, remote string, ahead, behind int) {
	if line == detachedHead || !strings.Contains(line, "...") {
		return line, "", 0, 0
	}

	branches, tracking, _ := strings.Cut(line, " ")
	branch, remote, _ = strings.Cut(branches, "...")

	if strings.HasPrefix(tracking, "[") && strings.HasSuffix(tracking, "]") {
		for _, state := range strings.Split(tracking[1:len(tracking)-1], ", ") {
			if n, ok := strings.CutPrefix(state, "ahead "); ok {
				ahead, _ = strconv.Atoi(n)
			} else if n, ok := strings.CutPrefix(state, "behind "); ok {
				behind, _ = strconv.Atoi(n)
			}
		}
	}
	return branch, remote, ahead, behind
}
