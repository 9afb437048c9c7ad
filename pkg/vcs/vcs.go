// Package vcs summarises the version control state of a working directory
// for display in a prompt. Git and Subversion are supported; a directory
// that is not a repository, or a machine without the tools installed, simply
// yields a Snapshot with IsRepo false.
package vcs

import (
	"context"
	"log/slog"
	"time"
)

// Snapshot is a point-in-time summary of a repository.
type Snapshot struct {
	IsRepo       bool
	Backend      string
	Branch       string
	RemoteBranch string
	Commit       string
	Staged       int
	Changed      int
	Untracked    int
	Unmerged     int
	Ahead        int
	Behind       int
	// LastFetched is the time since the remote was last fetched, zero when
	// unknown.
	LastFetched time.Duration
}

// Dirty reports whether the repository has uncommitted modifications.
func (s Snapshot) Dirty() bool {
	return s.Changed+s.Staged+s.Unmerged > 0
}

// Backend inspects a directory with one version control system.
type Backend interface {
	Name() string
	// Status returns the snapshot for dir. A directory that is not a
	// repository is not an error.
	Status(ctx context.Context, dir string) (Snapshot, error)
}

// DefaultTimeout bounds each backend's status collection.
const DefaultTimeout = 2 * time.Second

// Collector caches the snapshot of the last directory it inspected.
type Collector struct {
	backends []Backend
	timeout  time.Duration

	dir   string
	valid bool
	snap  Snapshot
}

// NewCollector creates a collector trying backends in order; the first one
// that recognises the directory wins.
func NewCollector(backends ...Backend) *Collector {
	return &Collector{backends: backends, timeout: DefaultTimeout}
}

// NewDefaultCollector returns a collector for git and svn using the system
// commands.
func NewDefaultCollector() *Collector {
	runner := ExecRunner{}
	return NewCollector(NewGit(runner), NewSubversion(runner))
}

// SetTimeout changes the per-backend timeout.
func (c *Collector) SetTimeout(d time.Duration) {
	c.timeout = d
}

// RefreshIfStale returns the snapshot for dir, collecting it again only when
// dir differs from the previously inspected directory.
func (c *Collector) RefreshIfStale(dir string) Snapshot {
	if c.valid && c.dir == dir {
		return c.snap
	}

	c.dir = dir
	c.valid = true
	c.snap = c.collect(dir)
	return c.snap
}

// Invalidate forgets the cached snapshot.
func (c *Collector) Invalidate() {
	c.valid = false
}

func (c *Collector) collect(dir string) Snapshot {
	for _, b := range c.backends {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		start := time.Now()
		snap, err := b.Status(ctx, dir)
		cancel()

		if err != nil {
			slog.Debug("vcs status failed", "backend", b.Name(), "dir", dir, "error", err)
			continue
		}
		slog.Debug("vcs status", "backend", b.Name(), "dir", dir, "repo", snap.IsRepo, "duration", time.Since(start))

		if snap.IsRepo {
			snap.Backend = b.Name()
			return snap
		}
	}
	return Snapshot{}
}
