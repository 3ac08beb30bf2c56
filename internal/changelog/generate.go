package changelog

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/changelog/internal/git"
	"github.com/ariel-frischer/changelog/internal/github"
	"github.com/ariel-frischer/changelog/internal/markdown"
	"github.com/ariel-frischer/changelog/internal/repoinfo"
	"github.com/ariel-frischer/changelog/internal/tags"
)

// Title is the top-level heading of the generated document.
const Title = "Changelog"

// DateLayout formats release dates.
const DateLayout = "2006-01-02"

// Section headings, rendered in this order.
const (
	BugFixesHeading = "Bug Fixes"
	FeaturesHeading = "Features"
)

// Repository is the version-control access Generate needs. *git.Repository
// implements it.
type Repository interface {
	TagNames(pattern string) ([]string, error)
	ResolveShortName(name string) (git.Ref, error)
	PeelToCommit(ref git.Ref) (git.Commit, error)
	CommitsInRange(from, to string) ([]git.Commit, error)
}

// Generator assembles the changelog of one repository.
type Generator struct {
	Repo Repository
	// Dir is the project directory handed to the extractors.
	Dir        string
	Extractors []repoinfo.Extractor
	// TagPattern selects release tags; DefaultTagPattern when empty.
	TagPattern string
	// Clock dates the HEAD section; time.Now when nil.
	Clock func() time.Time
	// Logf receives non-fatal extractor failures; may be nil.
	Logf repoinfo.Logf
}

// DefaultTagPattern matches release tags such as v1.2.3.
const DefaultTagPattern = "v*"

// Generate builds the changelog document: the title and preliminary remark,
// then one section per tag range, newest first.
func (g *Generator) Generate() (*markdown.Document, error) {
	info, err := repoinfo.Resolve(g.Dir, g.Extractors, g.Logf)
	if err != nil {
		return nil, fmt.Errorf("resolving repository information: %w", err)
	}
	logDebug("[changelog] repository %s", info)

	pattern := g.TagPattern
	if pattern == "" {
		pattern = DefaultTagPattern
	}
	ordered, tagDiag, err := tags.Resolve(g.Repo, pattern)
	if err != nil {
		return nil, err
	}
	if len(tagDiag.Dropped) > 0 {
		logDebug("[changelog] skipped %d tags that are not versions: %v", len(tagDiag.Dropped), tagDiag.Dropped)
	}
	if len(tagDiag.Duplicates) > 0 {
		logDebug("[changelog] skipped %d tags repeating an earlier version: %v", len(tagDiag.Duplicates), tagDiag.Duplicates)
	}

	ranges, err := tags.Pairs(ordered)
	if err != nil {
		return nil, err
	}

	doc := markdown.New().Header1(Title).PreliminaryRemark()
	for _, r := range tags.Reverse(ranges) {
		if err := g.appendRange(doc, r, info); err != nil {
			return nil, fmt.Errorf("range %s: %w", r, err)
		}
	}
	return doc, nil
}

func (g *Generator) appendRange(doc *markdown.Document, r tags.Range, info repoinfo.RepoInformation) error {
	heading, err := g.heading(r, info)
	if err != nil {
		return err
	}
	level, err := tags.HeadingLevel(r.To.Name)
	if err != nil {
		return err
	}
	doc.Header(heading, level)

	commits, err := g.Repo.CommitsInRange(r.From.Name, r.To.Name)
	if err != nil {
		return err
	}
	buckets, diag := Classify(commits)
	logDebug("[changelog] %s: %d fixes, %d features, %d other, %d unparsed",
		r, len(buckets.Fixes), len(buckets.Features), diag.Other, diag.Unparsed)
	if buckets.IsEmpty() {
		return nil
	}

	if len(buckets.Fixes) > 0 {
		doc.Header3(BugFixesHeading).List(RenderItems(buckets.Fixes, info))
	}
	if len(buckets.Features) > 0 {
		doc.Header3(FeaturesHeading).List(RenderItems(buckets.Features, info))
	}
	return nil
}

// heading renders the compare link labelled with the range's end, followed
// by the release date when one is known.
func (g *Generator) heading(r tags.Range, info repoinfo.RepoInformation) (string, error) {
	heading := markdown.Link(r.To.Name, github.CompareURL(info, r.From.Name, r.To.Name))

	date, err := g.releaseDate(r.To.Name)
	if err != nil {
		return "", err
	}
	if date != "" {
		heading += " (" + date + ")"
	}
	return heading, nil
}

// releaseDate returns the commit date of a tag, today's date for HEAD, and
// an empty string for any other reference.
func (g *Generator) releaseDate(name string) (string, error) {
	ref, err := g.Repo.ResolveShortName(name)
	if err != nil {
		return "", err
	}

	switch {
	case ref.IsTag():
		c, err := g.Repo.PeelToCommit(ref)
		if err != nil {
			return "", err
		}
		return c.When.UTC().Format(DateLayout), nil
	case name == tags.Head:
		return g.now().UTC().Format(DateLayout), nil
	default:
		return "", nil
	}
}

func (g *Generator) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now()
}

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for generation tracing.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
