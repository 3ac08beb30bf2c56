package markdown

import (
	"testing"

	"github.com/ariel-frischer/changelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "**core**", Bold("core"))
	assert.Equal(t, "[v1.0.0](https://example.com/a...b)", Link("v1.0.0", "https://example.com/a...b"))
}

func TestHeadingRender(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level int
		want  string
	}{
		"level 1":      {level: 1, want: "# Title"},
		"level 3":      {level: 3, want: "### Title"},
		"clamped low":  {level: 0, want: "# Title"},
		"clamped high": {level: 9, want: "###### Title"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Heading{Text: "Title", Level: tt.level}.Render())
		})
	}
}

func TestDocumentRender(t *testing.T) {
	t.Parallel()

	doc := New().
		Header1("Changelog").
		Paragraph("intro").
		Header("[v1.1.0](https://example.com)", 2).
		Header3("Bug Fixes").
		List([]string{Bold("api") + ": handle nil", "plain item"}).
		List(nil)

	want := "# Changelog\n\n" +
		"intro\n\n" +
		"## [v1.1.0](https://example.com)\n\n" +
		"### Bug Fixes\n\n" +
		"- **api**: handle nil\n- plain item\n"
	assert.Equal(t, want, doc.Render())
}

func TestDocumentRender_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, New().Render())
}

func TestDocumentRender_ParsesAsCommonMark(t *testing.T) {
	t.Parallel()

	doc := New().Header1("Changelog").PreliminaryRemark().
		Header(Link("v1.0.0", "https://github.com/acme/widget/compare/v0.9.0...v1.0.0")+" (2024-01-01)", 1).
		Header3("Features").
		List([]string{"add export ([abc1234](https://github.com/acme/widget/commit/abc1234))"})

	nodes := testutil.Outline(doc.Render())
	require.Len(t, nodes, 4+len(PreliminaryRemark))

	assert.Equal(t, "heading", nodes[0].Kind)
	assert.Equal(t, 1, nodes[0].Level)
	assert.Equal(t, "Changelog", nodes[0].Text)

	for i := range PreliminaryRemark {
		assert.Equal(t, "paragraph", nodes[1+i].Kind)
	}

	release := nodes[1+len(PreliminaryRemark)]
	assert.Equal(t, 1, release.Level)
	assert.Equal(t, "v1.0.0 (2024-01-01)", release.Text)
	assert.Equal(t, []string{"https://github.com/acme/widget/compare/v0.9.0...v1.0.0"}, release.Links)

	list := nodes[len(nodes)-1]
	assert.Equal(t, "list", list.Kind)
	assert.Equal(t, []string{"add export (abc1234)"}, list.Items)
}
