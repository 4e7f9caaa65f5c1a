// Package richtext converts the HTML that the API stores for research
// articles and policies into an editable block document and back.
package richtext

import "strings"

type BlockKind string

const (
	Paragraph BlockKind = "paragraph"
	Heading   BlockKind = "heading"
	List      BlockKind = "list"
	Quote     BlockKind = "quote"
	Code      BlockKind = "code"
	Image     BlockKind = "image"
)

// Span is a run of text sharing the same inline marks.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Href      string
	Break     bool
}

func (s Span) sameMarks(o Span) bool {
	return s.Bold == o.Bold && s.Italic == o.Italic && s.Underline == o.Underline &&
		s.Href == o.Href && !s.Break && !o.Break
}

type Block struct {
	Kind    BlockKind
	Level   int
	Ordered bool
	Spans   []Span
	Items   [][]Span
	Text    string
	Src     string
	Alt     string
}

type Doc struct {
	Blocks []Block
}

func (d Doc) Empty() bool {
	return strings.TrimSpace(d.PlainText()) == "" && !d.hasImage()
}

func (d Doc) hasImage() bool {
	for _, b := range d.Blocks {
		if b.Kind == Image {
			return true
		}
	}
	return false
}

// PlainText flattens the document, one block per line.
func (d Doc) PlainText() string {
	var sb strings.Builder
	for i, b := range d.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch b.Kind {
		case Code:
			sb.WriteString(b.Text)
		case List:
			for j, item := range b.Items {
				if j > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(spansText(item))
			}
		case Image:
			sb.WriteString(b.Alt)
		default:
			sb.WriteString(spansText(b.Spans))
		}
	}
	return sb.String()
}

func spansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Break {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// appendSpan merges s into the previous span when the marks match.
func appendSpan(spans []Span, s Span) []Span {
	if !s.Break && s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].sameMarks(s) {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}

func trimSpans(spans []Span) []Span {
	for len(spans) > 0 && !spans[0].Break && strings.TrimSpace(spans[0].Text) == "" {
		spans = spans[1:]
	}
	for len(spans) > 0 && !spans[len(spans)-1].Break && strings.TrimSpace(spans[len(spans)-1].Text) == "" {
		spans = spans[:len(spans)-1]
	}
	if len(spans) == 0 {
		return nil
	}
	spans[0].Text = strings.TrimLeft(spans[0].Text, " \t\n")
	spans[len(spans)-1].Text = strings.TrimRight(spans[len(spans)-1].Text, " \t\n")
	return spans
}
