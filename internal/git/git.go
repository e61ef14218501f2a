// Package git reads repository metadata for the changelog source directory.
// It uses the go-git library so no git CLI is required.
package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ErrNoCommits is returned for a repository whose HEAD has no commit yet.
var ErrNoCommits = errors.New("repository has no commits")

// openRepo opens the git repository containing path, walking up the
// directory tree. If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// Revision identifies the commit a set of changelog documents came from.
type Revision struct {
	Hash   string
	Branch string // empty when HEAD is detached
	Dirty  bool
}

// String renders the revision as "<hash>", "<branch>@<hash>" and appends
// "+dirty" when the worktree has uncommitted changes.
func (r Revision) String() string {
	s := r.Hash
	if r.Branch != "" {
		s = r.Branch + "@" + s
	}
	if r.Dirty {
		s += "+dirty"
	}
	return s
}

// HeadRevision returns the HEAD commit of the repository containing path.
func HeadRevision(path string) (Revision, error) {
	repo, err := openRepo(path)
	if err != nil {
		return Revision{}, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Revision{}, ErrNoCommits
		}
		return Revision{}, fmt.Errorf("getting HEAD reference: %w", err)
	}

	rev := Revision{Hash: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}

	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			rev.Dirty = !status.IsClean()
		}
	}

	logDebug("[git] HeadRevision: %s", rev)
	return rev, nil
}

// IsRepository reports whether path is inside a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", path, result)
	return result
}
