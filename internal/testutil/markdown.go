package testutil

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Node is one top-level block of a parsed Markdown document, reduced to what
// changelog tests assert on.
type Node struct {
	// Kind is "heading", "paragraph" or "list".
	Kind string
	// Level is the heading level; zero for other kinds.
	Level int
	// Text is the plain text of a heading or paragraph.
	Text string
	// Items holds the plain text of each list item.
	Items []string
	// Links holds the destinations of every link inside the block.
	Links []string
}

// Outline parses src with goldmark and returns its top-level blocks in order.
func Outline(src string) []Node {
	body := []byte(src)
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var nodes []Node
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		node := Node{Links: linkDestinations(n)}
		switch b := n.(type) {
		case *gmast.Heading:
			node.Kind = "heading"
			node.Level = b.Level
			node.Text = plainText(b, body)
		case *gmast.Paragraph:
			node.Kind = "paragraph"
			node.Text = plainText(b, body)
		case *gmast.List:
			node.Kind = "list"
			for item := b.FirstChild(); item != nil; item = item.NextSibling() {
				node.Items = append(node.Items, plainText(item, body))
			}
		default:
			node.Kind = n.Kind().String()
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func plainText(n gmast.Node, src []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *gmast.String:
			sb.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return sb.String()
}

func linkDestinations(n gmast.Node) []string {
	var links []string
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if l, ok := c.(*gmast.Link); ok {
				links = append(links, string(l.Destination))
			}
		}
		return gmast.WalkContinue, nil
	})
	return links
}
