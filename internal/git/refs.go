package git

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RefKind classifies what a short name resolved to.
type RefKind int

const (
	// RefTag is a lightweight or annotated tag.
	RefTag RefKind = iota
	// RefBranch is a local branch.
	RefBranch
	// RefRemoteBranch is a remote-tracking branch.
	RefRemoteBranch
	// RefHead is the HEAD reference, attached or detached.
	RefHead
)

// Ref is a resolved reference.
type Ref struct {
	Name string
	Kind RefKind
	Hash plumbing.Hash
}

// IsTag reports whether the reference is a tag.
func (r Ref) IsTag() bool { return r.Kind == RefTag }

// IsBranch reports whether the reference is a local branch.
func (r Ref) IsBranch() bool { return r.Kind == RefBranch }

// Commit is the subset of commit data the changelog needs.
type Commit struct {
	Hash      string
	ShortHash string
	Message   string
	When      time.Time
}

// shortHashLen matches git's default abbreviation length.
const shortHashLen = 7

func newCommit(c *object.Commit) Commit {
	hash := c.Hash.String()
	return Commit{
		Hash:      hash,
		ShortHash: hash[:shortHashLen],
		Message:   c.Message,
		When:      c.Committer.When.UTC(),
	}
}

// ResolveShortName resolves a short reference name the way git does for
// revision arguments: HEAD, then tags, then local branches, then remote branches.
func (r *Repository) ResolveShortName(name string) (Ref, error) {
	if name == Head {
		head, err := r.repo.Head()
		if err != nil {
			return Ref{}, fmt.Errorf("resolving HEAD: %w", err)
		}
		return Ref{Name: Head, Kind: RefHead, Hash: head.Hash()}, nil
	}

	candidates := []struct {
		ref  plumbing.ReferenceName
		kind RefKind
	}{
		{plumbing.NewTagReferenceName(name), RefTag},
		{plumbing.NewBranchReferenceName(name), RefBranch},
		{plumbing.ReferenceName("refs/remotes/" + name), RefRemoteBranch},
	}

	for _, c := range candidates {
		ref, err := r.repo.Reference(c.ref, true)
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			continue
		}
		if err != nil {
			return Ref{}, fmt.Errorf("resolving %s: %w", c.ref, err)
		}
		logDebug("[git] ResolveShortName(%s): %s", name, ref.Name())
		return Ref{Name: name, Kind: c.kind, Hash: ref.Hash()}, nil
	}

	return Ref{}, fmt.Errorf("%w: %s", ErrReferenceNotFound, name)
}

// PeelToCommit returns the commit a reference points at, following annotated
// tag objects.
func (r *Repository) PeelToCommit(ref Ref) (Commit, error) {
	c, err := r.peel(ref.Hash)
	if err != nil {
		return Commit{}, fmt.Errorf("peeling %s to commit: %w", ref.Name, err)
	}
	return newCommit(c), nil
}

func (r *Repository) peel(hash plumbing.Hash) (*object.Commit, error) {
	tag, err := r.repo.TagObject(hash)
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return r.repo.CommitObject(hash)
	default:
		return nil, err
	}
}

// CommitsInRange returns the commits reachable from `to` but not from `from`,
// the same set as `git log from..to`, newest first.
func (r *Repository) CommitsInRange(from, to string) ([]Commit, error) {
	rangeSpec := fmt.Sprintf("%s..%s", from, to)

	fromCommit, err := r.resolveCommit(from)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", rangeSpec, err)
	}
	toCommit, err := r.resolveCommit(to)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", rangeSpec, err)
	}

	excluded := make(map[plumbing.Hash]bool)
	err = object.NewCommitPreorderIter(fromCommit, nil, nil).ForEach(func(c *object.Commit) error {
		excluded[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", from, err)
	}

	var commits []Commit
	err = object.NewCommitPreorderIter(toCommit, excluded, nil).ForEach(func(c *object.Commit) error {
		commits = append(commits, newCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", rangeSpec, err)
	}

	logDebug("[git] CommitsInRange(%s): %d commits", rangeSpec, len(commits))
	return commits, nil
}

func (r *Repository) resolveCommit(name string) (*object.Commit, error) {
	ref, err := r.ResolveShortName(name)
	if err != nil {
		return nil, err
	}
	return r.peel(ref.Hash)
}

// RemoteURL returns the first URL configured for the named remote.
// ok is false when the remote exists but has no URL.
func (r *Repository) RemoteURL(name string) (url string, ok bool, err error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", false, fmt.Errorf("%w: %s", ErrRemoteNotFound, name)
		}
		return "", false, fmt.Errorf("looking up remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", false, nil
	}
	return urls[0], true, nil
}
