// Package tags orders release tags by semantic version and pairs them into
// comparison ranges. The synthetic HEAD tag stands for the unreleased working
// tip and always sorts after every release.
package tags

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Head is the name of the synthetic working-tip tag.
const Head = "HEAD"

// ErrNoReleaseTags is returned by Pairs when no tag parsed as a version.
var ErrNoReleaseTags = errors.New("no release tags")

// Tag is a tag name with its parsed version. Version is nil only for HEAD.
type Tag struct {
	Name    string
	Version *semver.Version
}

// IsHead reports whether t is the working-tip sentinel.
func (t Tag) IsHead() bool {
	return t.Name == Head
}

// Range is a pair of tags bounding the commits `from..to`.
type Range struct {
	From Tag
	To   Tag
}

func (r Range) String() string {
	return r.From.Name + ".." + r.To.Name
}

// Diagnostics lists candidates that Order left out.
type Diagnostics struct {
	// Dropped are names that are not versions.
	Dropped []string
	// Duplicates are versions equal in precedence to an earlier kept tag.
	Duplicates []string
}

// Lister supplies the raw tag names matching a glob pattern.
type Lister interface {
	TagNames(pattern string) ([]string, error)
}

// ParseVersion strips one leading "v" and parses the rest as a strict
// major.minor.patch[-pre][+build] version.
func ParseVersion(name string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(name, "v"))
}

// Order parses each candidate and returns the parseable ones in ascending
// version order followed by HEAD. Names that fail to parse are excluded and
// reported in the diagnostics, as are later tags whose version has the same
// precedence as one already kept. A literal HEAD candidate is not duplicated.
func Order(names []string) ([]Tag, Diagnostics) {
	var diag Diagnostics
	tags := make([]Tag, 0, len(names)+1)

	for _, name := range names {
		if name == Head {
			continue
		}
		v, err := ParseVersion(name)
		if err != nil {
			diag.Dropped = append(diag.Dropped, name)
			continue
		}
		tags = append(tags, Tag{Name: name, Version: v})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return Less(tags[i], tags[j])
	})

	unique := tags[:0]
	for _, t := range tags {
		if n := len(unique); n > 0 && unique[n-1].Version.Equal(t.Version) {
			diag.Duplicates = append(diag.Duplicates, t.Name)
			continue
		}
		unique = append(unique, t)
	}

	return append(unique, Tag{Name: Head}), diag
}

// Less orders tags by version precedence with HEAD greater than everything.
func Less(a, b Tag) bool {
	switch {
	case a.IsHead():
		return false
	case b.IsHead():
		return true
	default:
		return a.Version.LessThan(b.Version)
	}
}

// Resolve lists the tags matching pattern and orders them. A lister failure
// is returned unchanged.
func Resolve(l Lister, pattern string) ([]Tag, Diagnostics, error) {
	names, err := l.TagNames(pattern)
	if err != nil {
		return nil, Diagnostics{}, fmt.Errorf("listing tags %q: %w", pattern, err)
	}
	tags, diag := Order(names)
	return tags, diag, nil
}

// Pairs turns an ordered tag sequence into adjacent ranges between releases
// and appends the final (latest, HEAD) range. Any HEAD entry in the input is
// ignored, the trailing range is always added. With a single release the
// result is just (release, HEAD); with none it fails with ErrNoReleaseTags.
func Pairs(ordered []Tag) ([]Range, error) {
	releases := make([]Tag, 0, len(ordered))
	for _, t := range ordered {
		if !t.IsHead() {
			releases = append(releases, t)
		}
	}
	if len(releases) == 0 {
		return nil, ErrNoReleaseTags
	}

	ranges := make([]Range, 0, len(releases))
	for i := 1; i < len(releases); i++ {
		ranges = append(ranges, Range{From: releases[i-1], To: releases[i]})
	}
	latest := releases[len(releases)-1]
	return append(ranges, Range{From: latest, To: Tag{Name: Head}}), nil
}

// Reverse returns the ranges newest first.
func Reverse(ranges []Range) []Range {
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		out[len(ranges)-1-i] = r
	}
	return out
}

// HeadingLevel returns 1 for HEAD and for releases whose patch component is
// zero, and 2 for patch releases so they nest under their minor release.
func HeadingLevel(name string) (int, error) {
	stripped := strings.TrimPrefix(name, "v")
	if stripped == Head {
		return 1, nil
	}
	v, err := semver.StrictNewVersion(stripped)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", name, err)
	}
	if v.Patch() == 0 {
		return 1, nil
	}
	return 2, nil
}
