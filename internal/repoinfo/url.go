package repoinfo

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// SupportedHost is the only hosting service links can be generated for.
const SupportedHost = "github.com"

// ErrParseURL is returned when a URL is malformed or lacks owner and repository.
var ErrParseURL = errors.New("failed to parse url")

// UnsupportedHostError is returned for URLs on hosts other than SupportedHost.
type UnsupportedHostError struct {
	Host string
}

func (e *UnsupportedHostError) Error() string {
	return fmt.Sprintf("unsupported host: %q", e.Host)
}

// scpLikePattern matches `user@host:path`, the short ssh form git accepts.
var scpLikePattern = regexp.MustCompile(`^([\w.-]+@[\w.-]+):([^/].*)$`)

// FromURL extracts owner and repository from a repository URL. The first two
// path segments are the owner and repository; a trailing ".git" is removed.
// Scp-like ssh addresses and git+ prefixed schemes are accepted.
func FromURL(raw string) (RepoInformation, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "git+")
	if m := scpLikePattern.FindStringSubmatch(s); m != nil {
		s = "ssh://" + m[1] + "/" + m[2]
	}

	u, err := url.Parse(s)
	if err != nil {
		return RepoInformation{}, fmt.Errorf("%w %q: %v", ErrParseURL, raw, err)
	}

	host := u.Hostname()
	if host == "" {
		return RepoInformation{}, fmt.Errorf("%w %q: no host", ErrParseURL, raw)
	}
	if strings.TrimPrefix(strings.ToLower(host), "www.") != SupportedHost {
		return RepoInformation{}, &UnsupportedHostError{Host: host}
	}

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) < 2 {
		return RepoInformation{}, fmt.Errorf("%w %q: expected /owner/repo", ErrParseURL, raw)
	}

	repo := strings.TrimSuffix(segments[1], ".git")
	if repo == "" {
		return RepoInformation{}, fmt.Errorf("%w %q: empty repository name", ErrParseURL, raw)
	}

	return RepoInformation{Owner: segments[0], Repo: repo}, nil
}
