package changelog

import (
	"strings"

	"github.com/ariel-frischer/changelog/internal/conventional"
	"github.com/ariel-frischer/changelog/internal/git"
	"github.com/ariel-frischer/changelog/internal/github"
	"github.com/ariel-frischer/changelog/internal/markdown"
	"github.com/ariel-frischer/changelog/internal/repoinfo"
)

// Commit types that are rendered.
const (
	TypeFix     = "fix"
	TypeFeature = "feat"
)

// Footer tokens that reference a resolved issue. Matching is case-sensitive.
var issueFooterTokens = map[string]bool{
	"Fixes":  true,
	"Closes": true,
}

// Entry is a commit together with its parsed message.
type Entry struct {
	Commit git.Commit
	Parsed conventional.Commit
}

// Buckets holds the rendered commit groups of one range, in history order.
type Buckets struct {
	Fixes    []Entry
	Features []Entry
}

// IsEmpty reports whether neither bucket has entries.
func (b Buckets) IsEmpty() bool {
	return len(b.Fixes) == 0 && len(b.Features) == 0
}

// Diagnostics counts the commits Classify left out.
type Diagnostics struct {
	// Unparsed counts messages that are not conventional commits.
	Unparsed int
	// Other counts conventional commits of a type that is not rendered.
	Other int
}

// Classify parses every commit message and sorts fixes and features into
// buckets, keeping the order of commits. Other types and unparseable messages
// are dropped and only counted.
func Classify(commits []git.Commit) (Buckets, Diagnostics) {
	var (
		b    Buckets
		diag Diagnostics
	)
	for _, c := range commits {
		parsed, err := conventional.Parse(c.Message)
		if err != nil {
			diag.Unparsed++
			continue
		}

		e := Entry{Commit: c, Parsed: parsed}
		switch parsed.Type {
		case TypeFix:
			b.Fixes = append(b.Fixes, e)
		case TypeFeature:
			b.Features = append(b.Features, e)
		default:
			diag.Other++
		}
	}
	return b, diag
}

// RenderItem renders one list item:
//
//	**scope**: description ([abc1234](commit-url)) , closes [#42](issue-url)
//
// The scope part is omitted when the commit has none. Each Fixes or Closes
// footer adds its own issue link.
func RenderItem(e Entry, info repoinfo.RepoInformation) string {
	item := e.Parsed.Description
	if e.Parsed.HasScope() {
		item = markdown.Bold(e.Parsed.Scope) + ": " + item
	}

	additions := []string{
		"(" + markdown.Link(e.Commit.ShortHash, github.CommitURL(info, e.Commit.Hash)) + ")",
	}
	for _, f := range e.Parsed.Footers {
		if !issueFooterTokens[f.Token] {
			continue
		}
		number := issueReference(f.Value)
		if number == "" {
			continue
		}
		additions = append(additions, ", closes "+markdown.Link("#"+number, github.IssueURL(info, number)))
	}

	return item + " " + strings.Join(additions, " ")
}

// issueReference returns the issue number a footer value starts with: the
// first word of its first line without a leading "#". Continuation lines of
// the footer are ignored.
func issueReference(value string) string {
	first, _, _ := strings.Cut(value, "\n")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[0], "#")
}

// RenderItems renders every entry with RenderItem.
func RenderItems(entries []Entry, info repoinfo.RepoInformation) []string {
	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = RenderItem(e, info)
	}
	return items
}
