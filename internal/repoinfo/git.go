package repoinfo

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/changelog/internal/git"
)

// DefaultRemotes is the lookup order of the git extractor.
var DefaultRemotes = []string{"upstream", "origin"}

// ErrNoMatchingRemote is returned when none of the looked-up remotes exists.
var ErrNoMatchingRemote = errors.New("no matching remote found")

// NoURLInRemoteError is returned when the chosen remote has no URL.
type NoURLInRemoteError struct {
	Remote string
}

func (e *NoURLInRemoteError) Error() string {
	return fmt.Sprintf("no url specified for remote %q", e.Remote)
}

// GitExtractor reads the URL of the first existing remote among remotes
// (DefaultRemotes when empty). Only the first existing remote is considered,
// even if it has no URL.
func GitExtractor(remotes []string) Extractor {
	if len(remotes) == 0 {
		remotes = DefaultRemotes
	}

	return Extractor{
		Name:         "git",
		Priority:     GenericPriority,
		IsApplicable: git.IsRepository,
		Extract: func(dir string) (RepoInformation, error) {
			repo, err := git.Open(dir)
			if err != nil {
				return RepoInformation{}, err
			}

			for _, name := range remotes {
				url, ok, err := repo.RemoteURL(name)
				if errors.Is(err, git.ErrRemoteNotFound) {
					continue
				}
				if err != nil {
					return RepoInformation{}, err
				}
				if !ok {
					return RepoInformation{}, &NoURLInRemoteError{Remote: name}
				}
				return FromURL(url)
			}

			return RepoInformation{}, ErrNoMatchingRemote
		},
	}
}
