package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStripsScriptsAndHandlers(t *testing.T) {
	out := Sanitize(`<p onclick="steal()">Hi<script>alert(1)</script></p><img src="x.png" onerror="boom()">`)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "onerror")
	assert.Contains(t, out, "Hi")
	assert.Contains(t, out, `src="x.png"`)
}

func TestSanitizeDropsJavascriptLinks(t *testing.T) {
	out := Sanitize(`<a href="javascript:alert(1)">click</a>`)
	assert.NotContains(t, out, "javascript")
	assert.Contains(t, out, "click")
}

func TestLoadBuildsBlocks(t *testing.T) {
	doc, err := NewEditor().Load(`<h2>Title</h2><p>Hello <strong>bold</strong> and <a href="https://example.com">link</a></p><ol><li>one</li><li><em>two</em></li></ol><blockquote>quoted</blockquote><pre>x := 1</pre>`)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 5)

	assert.Equal(t, Heading, doc.Blocks[0].Kind)
	assert.Equal(t, 2, doc.Blocks[0].Level)

	para := doc.Blocks[1]
	assert.Equal(t, Paragraph, para.Kind)
	require.Len(t, para.Spans, 4)
	assert.Equal(t, Span{Text: "Hello "}, para.Spans[0])
	assert.Equal(t, Span{Text: "bold", Bold: true}, para.Spans[1])
	assert.Equal(t, "https://example.com", para.Spans[3].Href)

	list := doc.Blocks[2]
	assert.Equal(t, List, list.Kind)
	assert.True(t, list.Ordered)
	require.Len(t, list.Items, 2)
	assert.True(t, list.Items[1][0].Italic)

	assert.Equal(t, Quote, doc.Blocks[3].Kind)
	assert.Equal(t, Code, doc.Blocks[4].Kind)
	assert.Equal(t, "x := 1", doc.Blocks[4].Text)
}

func TestLoadWrapsLooseText(t *testing.T) {
	doc, err := NewEditor().Load("just <b>some</b> text")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, Paragraph, doc.Blocks[0].Kind)
	assert.Equal(t, "just some text", doc.PlainText())
}

func TestLoadDropsScriptContent(t *testing.T) {
	doc, err := NewEditor().Load(`<p>safe</p><script>alert("x")</script>`)
	require.NoError(t, err)
	assert.Equal(t, "safe", doc.PlainText())
}

func TestSaveRendersMarks(t *testing.T) {
	out, err := NewEditor().Save(Doc{Blocks: []Block{
		{Kind: Heading, Level: 3, Spans: []Span{{Text: "Hours"}}},
		{Kind: Paragraph, Spans: []Span{{Text: "Open "}, {Text: "daily", Bold: true, Underline: true}, {Break: true}, {Text: "9 to 5"}}},
		{Kind: List, Items: [][]Span{{{Text: "a"}}, {{Text: "b"}}}},
	}})
	require.NoError(t, err)
	assert.Contains(t, out, "<h3>Hours</h3>")
	assert.Contains(t, out, "<strong><u>daily</u></strong>")
	assert.Contains(t, out, "<ul><li>a</li><li>b</li></ul>")
}

func TestSaveEscapesText(t *testing.T) {
	out, err := NewEditor().Save(Doc{Blocks: []Block{{Kind: Paragraph, Spans: []Span{{Text: "<script>x</script>"}}}}})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestSaveRejectsUnknownBlock(t *testing.T) {
	_, err := NewEditor().Save(Doc{Blocks: []Block{{Kind: "table"}}})
	assert.Error(t, err)
}

func TestNormalizeIsStable(t *testing.T) {
	editor := NewEditor()
	in := `<div><h1>About</h1>Lenzoo <i>cares</i><ul><li>eyes</li></ul></div><p onclick="x()">end</p>`

	once, err := Normalize(editor, in)
	require.NoError(t, err)
	twice, err := Normalize(editor, once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.NotContains(t, once, "onclick")
}

func TestDocEmpty(t *testing.T) {
	doc, err := NewEditor().Load("<p>   </p><p><br></p>")
	require.NoError(t, err)
	assert.True(t, doc.Empty())

	doc, err = NewEditor().Load(`<img src="a.png">`)
	require.NoError(t, err)
	assert.False(t, doc.Empty())
}
