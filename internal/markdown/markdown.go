// Package markdown extracts plain-text summaries from Markdown bodies.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Summary is the plain text of a document's leading title and paragraph.
type Summary struct {
	// Title is the first level-1 heading.
	Title string
	// Lead is the first paragraph that is not inside a block quote, list or
	// table.
	Lead string
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Summarize returns the first H1 and the first top-level paragraph of body.
func Summarize(body []byte) Summary {
	var s Summary
	root := ParseBody(body)
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && s.Title == "" {
				s.Title = plainText(node, body)
			}
		case *gmast.Paragraph:
			if s.Lead == "" {
				s.Lead = plainText(node, body)
			}
		}
		if s.Title != "" && s.Lead != "" {
			break
		}
	}
	return s
}

// plainText concatenates the text segments below n, joining soft and hard
// line breaks with a single space.
func plainText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
