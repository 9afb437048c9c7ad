package functions

import (
	"strconv"
	"time"

	"github.com/Hanaasagi/prmpt/pkg/prmpt"
	"github.com/Hanaasagi/prmpt/pkg/vcs"
)

// VCS provides readers of the working directory's version control summary.
func VCS() prmpt.Provider {
	return prmpt.ProviderFunc(func() []prmpt.Function {
		return []prmpt.Function{
			snapshotFunc("isrepo", "True inside a git or svn working copy.", func(s vcs.Snapshot) string {
				return formatBool(s.IsRepo)
			}),
			snapshotFunc("repobranch", "Current branch.", func(s vcs.Snapshot) string {
				return s.Branch
			}),
			snapshotFunc("isrepodirty", "True if there are uncommitted changes.", func(s vcs.Snapshot) string {
				return formatBool(s.Dirty())
			}),
			snapshotFunc("ahead", "Commits ahead of the remote branch.", count(func(s vcs.Snapshot) int { return s.Ahead })),
			snapshotFunc("behind", "Commits behind the remote branch.", count(func(s vcs.Snapshot) int { return s.Behind })),
			snapshotFunc("commit", "Abbreviated commit of HEAD.", func(s vcs.Snapshot) string {
				return s.Commit
			}),
			snapshotFunc("staged", "Number of staged files.", count(func(s vcs.Snapshot) int { return s.Staged })),
			snapshotFunc("changed", "Number of modified files not staged.", count(func(s vcs.Snapshot) int { return s.Changed })),
			snapshotFunc("untracked", "Number of untracked files.", count(func(s vcs.Snapshot) int { return s.Untracked })),
			snapshotFunc("unmerged", "Number of files with merge conflicts.", count(func(s vcs.Snapshot) int { return s.Unmerged })),
			snapshotFunc("lastfetched", "Seconds since the remote was last fetched.", func(s vcs.Snapshot) string {
				return strconv.FormatInt(int64(s.LastFetched/time.Second), 10)
			}),
			snapshotFunc("lastfetchedmin", "Minutes since the remote was last fetched.", func(s vcs.Snapshot) string {
				return strconv.FormatInt(int64(s.LastFetched/time.Minute), 10)
			}),
		}
	})
}

func snapshotFunc(name, help string, read func(vcs.Snapshot) string) prmpt.Function {
	return prmpt.Function{
		Name: name,
		Help: help,
		Call: func(ctx *prmpt.Context, _ ...string) (string, error) {
			return read(ctx.Snapshot()), nil
		},
	}
}

func count(field func(vcs.Snapshot) int) func(vcs.Snapshot) string {
	return func(s vcs.Snapshot) string {
		return strconv.Itoa(field(s))
	}
}
