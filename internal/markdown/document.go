// Package markdown builds simple Markdown documents block by block.
package markdown

import (
	"fmt"
	"strings"
)

// PreliminaryRemark is rendered as a paragraph right below the document title.
var PreliminaryRemark = []string{
	"All notable changes to this project will be documented in this file.",
	"This changelog is generated from commits following " +
		Link("Conventional Commits", "https://www.conventionalcommits.org/en/v1.0.0/") +
		"; see the linked diffs for the full history of each release.",
}

// Block is one top-level element of a document.
type Block interface {
	Render() string
}

// Heading is an ATX heading ("#" repeated Level times).
type Heading struct {
	Text  string
	Level int
}

// Render returns the heading line. Levels are clamped to 1..6.
func (h Heading) Render() string {
	level := min(max(h.Level, 1), 6)
	return strings.Repeat("#", level) + " " + h.Text
}

// Paragraph is rendered verbatim.
type Paragraph struct {
	Text string
}

// Render returns the paragraph text.
func (p Paragraph) Render() string {
	return p.Text
}

// List is an unordered list of pre-rendered items.
type List struct {
	Items []string
}

// Render returns one "- item" line per item.
func (l List) Render() string {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// Document is an ordered sequence of blocks.
type Document struct {
	Blocks []Block
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Header appends a heading of the given level.
func (d *Document) Header(text string, level int) *Document {
	d.Blocks = append(d.Blocks, Heading{Text: text, Level: level})
	return d
}

// Header1 appends a top-level heading.
func (d *Document) Header1(text string) *Document {
	return d.Header(text, 1)
}

// Header3 appends a third-level heading.
func (d *Document) Header3(text string) *Document {
	return d.Header(text, 3)
}

// Paragraph appends a paragraph.
func (d *Document) Paragraph(text string) *Document {
	d.Blocks = append(d.Blocks, Paragraph{Text: text})
	return d
}

// List appends an unordered list. Empty lists are skipped since they would
// render as nothing.
func (d *Document) List(items []string) *Document {
	if len(items) == 0 {
		return d
	}
	d.Blocks = append(d.Blocks, List{Items: items})
	return d
}

// PreliminaryRemark appends each line of PreliminaryRemark as a paragraph.
func (d *Document) PreliminaryRemark() *Document {
	for _, line := range PreliminaryRemark {
		d.Paragraph(line)
	}
	return d
}

// Render joins the blocks with blank lines. A non-empty document ends with a
// newline.
func (d *Document) Render() string {
	if len(d.Blocks) == 0 {
		return ""
	}
	parts := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		parts[i] = b.Render()
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Bold wraps s in strong emphasis.
func Bold(s string) string {
	return "**" + s + "**"
}

// Link renders an inline link.
func Link(text, url string) string {
	return fmt.Sprintf("[%s](%s)", text, url)
}
