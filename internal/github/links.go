// Package github builds links into a GitHub project.
package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ariel-frischer/changelog/internal/repoinfo"
)

// BaseURL is the web root of the hosting service.
const BaseURL = "https://" + repoinfo.SupportedHost

// ProjectURL returns the project's landing page.
func ProjectURL(info repoinfo.RepoInformation) string {
	return fmt.Sprintf("%s/%s/%s", BaseURL, url.PathEscape(info.Owner), url.PathEscape(info.Repo))
}

// CompareURL links to the diff view between two references.
func CompareURL(info repoinfo.RepoInformation, from, to string) string {
	return fmt.Sprintf("%s/compare/%s...%s", ProjectURL(info), from, to)
}

// CommitURL links to a single commit.
func CommitURL(info repoinfo.RepoInformation, hash string) string {
	return fmt.Sprintf("%s/commit/%s", ProjectURL(info), hash)
}

// IssueURL links to an issue or pull request. A leading "#" is ignored.
func IssueURL(info repoinfo.RepoInformation, number string) string {
	return fmt.Sprintf("%s/issues/%s", ProjectURL(info), strings.TrimPrefix(number, "#"))
}
