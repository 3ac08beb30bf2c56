// Package conventional parses commit messages written in the Conventional
// Commits format (https://www.conventionalcommits.org/en/v1.0.0/).
//
// A message is a header `type(scope)!: description`, an optional body and an
// optional trailing footer block of `Token: value` or `Token #value` lines.
package conventional

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidMessage is wrapped by every error Parse returns.
var ErrInvalidMessage = errors.New("not a conventional commit")

// Footer is a single trailer line of the footer block.
type Footer struct {
	Token string
	Value string
}

// Commit is a parsed commit message.
type Commit struct {
	Type        string
	Scope       string
	Description string
	Body        string
	Footers     []Footer
	Breaking    bool
}

// HasScope reports whether the header carried a scope.
func (c Commit) HasScope() bool {
	return c.Scope != ""
}

var (
	headerPattern = regexp.MustCompile(`^([A-Za-z]+)(?:\(([^()\n]+)\))?(!)?: (\S.*)$`)
	footerPattern = regexp.MustCompile(`^(BREAKING CHANGE|BREAKING-CHANGE|[A-Za-z][A-Za-z0-9-]*)(: | #)(.*)$`)
)

// Parse parses a raw commit message.
func Parse(raw string) (Commit, error) {
	msg := strings.TrimRight(strings.ReplaceAll(raw, "\r\n", "\n"), "\n \t")
	if strings.TrimSpace(msg) == "" {
		return Commit{}, fmt.Errorf("%w: empty message", ErrInvalidMessage)
	}

	header, rest, _ := strings.Cut(msg, "\n")
	m := headerPattern.FindStringSubmatch(strings.TrimRight(header, " \t"))
	if m == nil {
		return Commit{}, fmt.Errorf("%w: malformed header %q", ErrInvalidMessage, header)
	}

	c := Commit{
		Type:        m[1],
		Scope:       strings.TrimSpace(m[2]),
		Breaking:    m[3] == "!",
		Description: m[4],
	}
	if m[2] != "" && c.Scope == "" {
		return Commit{}, fmt.Errorf("%w: blank scope in %q", ErrInvalidMessage, header)
	}

	paragraphs := splitParagraphs(rest)
	if n := len(paragraphs); n > 0 && isFooterBlock(paragraphs[n-1]) {
		c.Footers = parseFooters(paragraphs[n-1])
		paragraphs = paragraphs[:n-1]
	}
	c.Body = strings.Join(paragraphs, "\n\n")

	for _, f := range c.Footers {
		if f.Token == "BREAKING CHANGE" || f.Token == "BREAKING-CHANGE" {
			c.Breaking = true
		}
	}

	return c, nil
}

// splitParagraphs splits text on blank lines, dropping empty paragraphs.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}

func isFooterBlock(paragraph string) bool {
	first, _, _ := strings.Cut(paragraph, "\n")
	return footerPattern.MatchString(first)
}

// parseFooters reads footer lines in order; lines that do not start a new
// footer continue the value of the previous one.
func parseFooters(paragraph string) []Footer {
	var footers []Footer
	for _, line := range strings.Split(paragraph, "\n") {
		if m := footerPattern.FindStringSubmatch(line); m != nil {
			footers = append(footers, Footer{Token: m[1], Value: strings.TrimSpace(m[3])})
			continue
		}
		last := &footers[len(footers)-1]
		last.Value += "\n" + strings.TrimSpace(line)
	}
	return footers
}
