package richtext

import (
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Editor loads stored HTML into a document and serializes it back.
type Editor interface {
	Load(html string) (Doc, error)
	Save(doc Doc) (string, error)
}

// HTMLEditor is the default Editor. Input is sanitized before parsing and
// output is sanitized again after rendering.
type HTMLEditor struct{}

func NewEditor() HTMLEditor {
	return HTMLEditor{}
}

// Normalize runs html through Load and Save.
func Normalize(e Editor, html string) (string, error) {
	doc, err := e.Load(html)
	if err != nil {
		return "", err
	}
	return e.Save(doc)
}

func (HTMLEditor) Load(src string) (Doc, error) {
	body := &xhtml.Node{Type: xhtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := xhtml.ParseFragment(strings.NewReader(Sanitize(src)), body)
	if err != nil {
		return Doc{}, fmt.Errorf("parse rich text: %w", err)
	}

	var doc Doc
	var pending []Span
	flush := func() {
		if spans := trimSpans(pending); len(spans) > 0 {
			doc.Blocks = append(doc.Blocks, Block{Kind: Paragraph, Spans: spans})
		}
		pending = nil
	}

	for _, n := range nodes {
		if n.Type == xhtml.ElementNode && isBlock(n.DataAtom) {
			flush()
			doc.Blocks = append(doc.Blocks, blocks(n)...)
			continue
		}
		pending = inline(n, Span{}, pending)
	}
	flush()
	return doc, nil
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Blockquote, atom.Pre, atom.Img, atom.Hr:
		return true
	}
	return false
}

func blocks(n *xhtml.Node) []Block {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		return nonEmpty(Block{Kind: Heading, Level: level, Spans: children(n)})
	case atom.Ul, atom.Ol:
		b := Block{Kind: List, Ordered: n.DataAtom == atom.Ol}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.ElementNode && c.DataAtom == atom.Li {
				if item := children(c); len(item) > 0 {
					b.Items = append(b.Items, item)
				}
			}
		}
		if len(b.Items) == 0 {
			return nil
		}
		return []Block{b}
	case atom.Blockquote:
		return nonEmpty(Block{Kind: Quote, Spans: children(n)})
	case atom.Pre:
		text := textContent(n)
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []Block{{Kind: Code, Text: text}}
	case atom.Img:
		src := attr(n, "src")
		if src == "" {
			return nil
		}
		return []Block{{Kind: Image, Src: src, Alt: attr(n, "alt")}}
	case atom.Hr:
		return nil
	case atom.Div:
		// a div may wrap further blocks
		var out []Block
		var pending []Span
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.ElementNode && isBlock(c.DataAtom) {
				out = append(out, nonEmpty(Block{Kind: Paragraph, Spans: trimSpans(pending)})...)
				pending = nil
				out = append(out, blocks(c)...)
				continue
			}
			pending = inline(c, Span{}, pending)
		}
		return append(out, nonEmpty(Block{Kind: Paragraph, Spans: trimSpans(pending)})...)
	default:
		return nonEmpty(Block{Kind: Paragraph, Spans: children(n)})
	}
}

func nonEmpty(b Block) []Block {
	if len(b.Spans) == 0 {
		return nil
	}
	return []Block{b}
}

func children(n *xhtml.Node) []Span {
	var spans []Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		spans = inline(c, Span{}, spans)
	}
	return trimSpans(spans)
}

// inline walks n accumulating spans that carry the marks of marks plus
// whatever n adds.
func inline(n *xhtml.Node, marks Span, spans []Span) []Span {
	switch n.Type {
	case xhtml.TextNode:
		s := marks
		s.Text = collapse(n.Data)
		return appendSpan(spans, s)
	case xhtml.ElementNode:
	default:
		return spans
	}

	switch n.DataAtom {
	case atom.Br:
		return append(spans, Span{Break: true})
	case atom.B, atom.Strong:
		marks.Bold = true
	case atom.I, atom.Em:
		marks.Italic = true
	case atom.U:
		marks.Underline = true
	case atom.A:
		marks.Href = attr(n, "href")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		spans = inline(c, marks, spans)
	}
	return spans
}

func collapse(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func textContent(n *xhtml.Node) string {
	var sb strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (HTMLEditor) Save(doc Doc) (string, error) {
	var sb strings.Builder
	for _, b := range doc.Blocks {
		switch b.Kind {
		case Paragraph:
			sb.WriteString("<p>")
			writeSpans(&sb, b.Spans)
			sb.WriteString("</p>")
		case Heading:
			level := b.Level
			if level < 1 || level > 6 {
				level = 2
			}
			fmt.Fprintf(&sb, "<h%d>", level)
			writeSpans(&sb, b.Spans)
			fmt.Fprintf(&sb, "</h%d>", level)
		case List:
			tag := "ul"
			if b.Ordered {
				tag = "ol"
			}
			sb.WriteString("<" + tag + ">")
			for _, item := range b.Items {
				sb.WriteString("<li>")
				writeSpans(&sb, item)
				sb.WriteString("</li>")
			}
			sb.WriteString("</" + tag + ">")
		case Quote:
			sb.WriteString("<blockquote>")
			writeSpans(&sb, b.Spans)
			sb.WriteString("</blockquote>")
		case Code:
			sb.WriteString("<pre><code>")
			sb.WriteString(html.EscapeString(b.Text))
			sb.WriteString("</code></pre>")
		case Image:
			fmt.Fprintf(&sb, `<img src="%s" alt="%s">`, html.EscapeString(b.Src), html.EscapeString(b.Alt))
		default:
			return "", fmt.Errorf("unknown block kind %q", b.Kind)
		}
	}
	return Sanitize(sb.String()), nil
}

func writeSpans(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		if s.Break {
			sb.WriteString("<br>")
			continue
		}
		open, end := "", ""
		if s.Href != "" {
			open += `<a href="` + html.EscapeString(s.Href) + `">`
			end = "</a>" + end
		}
		if s.Bold {
			open += "<strong>"
			end = "</strong>" + end
		}
		if s.Italic {
			open += "<em>"
			end = "</em>" + end
		}
		if s.Underline {
			open += "<u>"
			end = "</u>" + end
		}
		sb.WriteString(open)
		sb.WriteString(html.EscapeString(s.Text))
		sb.WriteString(end)
	}
}
