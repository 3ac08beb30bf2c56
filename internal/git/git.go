// Package git provides the version-control collaborator for changelog generation:
// tag discovery, reference resolution, tag peeling, commit range walks and remote
// lookup. It uses the go-git library so no git CLI installation is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Head is the short name of the working tip.
const Head = "HEAD"

var (
	// ErrNotRepository is returned when a directory is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")
	// ErrRemoteNotFound is returned when a named remote is not configured.
	ErrRemoteNotFound = errors.New("remote not found")
	// ErrReferenceNotFound is returned when a short name matches no tag or branch.
	ErrReferenceNotFound = errors.New("reference not found")
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

// Repository wraps a go-git repository opened from a project directory.
type Repository struct {
	repo *git.Repository
}

// Open opens the git repository whose worktree root is dir. Parent directories
// are not searched, so a subdirectory of a repository is not a repository.
// If dir is empty, the current working directory is used.
func Open(dir string) (*Repository, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", dir)

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: false,
	})
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrNotRepository, dir, err)
	}

	return &Repository{repo: repo}, nil
}

// IsRepository reports whether dir is the root of a git repository.
func IsRepository(dir string) bool {
	_, err := Open(dir)
	return err == nil
}

// TagNames returns the short names of all tags matching the glob pattern,
// sorted by name.
func (r *Repository) TagNames(pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
	}

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if ok, _ := path.Match(pattern, name); ok {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Strings(names)
	logDebug("[git] TagNames(%s): %d matching tags", pattern, len(names))
	return names, nil
}
