package navigation

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/oasnav/oasnav/internal/naming"
)

// headings turns the markdown outline of description into nested text
// entries: each heading contains the deeper headings that follow it until a
// heading of the same or a shallower level.
func (t *traversal) headings(description string) []*Entry {
	if description == "" {
		return nil
	}
	src := []byte(description)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	type frame struct {
		depth int
		entry *Entry
	}
	var (
		entries []*Entry
		stack   []frame
	)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		plainText(h, src, &buf)
		value := buf.String()
		e := &Entry{Type: TypeText, Title: value}
		e.ID = t.titles.add(t.ids.Heading(HeadingContext{
			Depth: h.Level,
			Value: value,
			Slug:  naming.Slug(value),
		}), value)

		for len(stack) > 0 && stack[len(stack)-1].depth >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			entries = append(entries, e)
		} else {
			parent := stack[len(stack)-1].entry
			parent.Children = append(parent.Children, e)
		}
		stack = append(stack, frame{depth: h.Level, entry: e})
		return ast.WalkSkipChildren, nil
	})
	return entries
}

// plainText writes the rendered text of n's inline children, dropping markup.
// Backslash escapes and character references are resolved outside code spans.
func plainText(n ast.Node, src []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(renderText(v.Segment.Value(src)))
			if v.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.CodeSpan:
			for t := v.FirstChild(); t != nil; t = t.NextSibling() {
				if seg, ok := t.(*ast.Text); ok {
					buf.Write(seg.Segment.Value(src))
				}
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(src))
		default:
			plainText(c, src, buf)
		}
	}
}

func renderText(raw []byte) []byte {
	out := util.UnescapePunctuations(raw)
	out = util.ResolveNumericReferences(out)
	return util.ResolveEntityNames(out)
}
