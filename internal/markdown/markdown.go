// Package markdown tokenizes the small markdown subset used by AI insight
// text: bold headings, bold lines, bullets and inline bold runs.
package markdown

import "strings"

type Kind int

const (
	Paragraph Kind = iota
	Heading
	Bold
	Bullet
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Bold:
		return "bold"
	case Bullet:
		return "bullet"
	default:
		return "paragraph"
	}
}

// Span is an inline run of text, bold or plain.
type Span struct {
	Text string
	Bold bool
}

// Block is one non-blank input line. Text has the markers stripped; Spans is
// only set for paragraphs.
type Block struct {
	Kind  Kind
	Text  string
	Spans []Span
}

// NoInsight is shown when there is no insight text to parse.
const NoInsight = "No AI insight available for this month yet."

// Parse splits content into blocks, one per non-blank line. Rules apply in
// order: "**x**:" is a heading, "**x**" a bold line, "- " or "* " a bullet,
// anything else a paragraph whose paired "**" runs become bold spans.
func Parse(content string) []Block {
	var blocks []Block
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		blocks = append(blocks, parseLine(line))
	}
	return blocks
}

func parseLine(line string) Block {
	switch {
	case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**:"):
		return Block{Kind: Heading, Text: strings.ReplaceAll(line, "**", "")}
	case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
		return Block{Kind: Bold, Text: strings.ReplaceAll(line, "**", "")}
	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		return Block{Kind: Bullet, Text: line[2:]}
	}

	spans := inline(line)
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return Block{Kind: Paragraph, Text: sb.String(), Spans: spans}
}

// inline cuts a line at paired "**" markers. An unpaired marker is kept as
// literal text.
func inline(line string) []Span {
	var spans []Span
	rest := line
	for {
		start := strings.Index(rest, "**")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+2:], "**")
		if end < 0 {
			break
		}
		end += start + 2
		if start > 0 {
			spans = append(spans, Span{Text: rest[:start]})
		}
		spans = append(spans, Span{Text: rest[start+2 : end], Bold: true})
		rest = rest[end+2:]
	}
	if rest != "" || len(spans) == 0 {
		spans = append(spans, Span{Text: rest})
	}
	return spans
}
