package cliutil

import (
	"io"
	"strings"

	"github.com/oasnav/oasnav/navigation"
)

// OutlineOptions configures WriteOutline.
type OutlineOptions struct {
	// MaxDepth limits nesting; 0 means unlimited, 1 prints only the given entries.
	MaxDepth int
	// IDs appends each entry's id in brackets.
	IDs bool
}

// WriteOutline writes entries as an indented outline, two spaces per level.
func WriteOutline(w io.Writer, entries []*navigation.Entry, opts OutlineOptions) {
	writeOutline(w, entries, 0, opts)
}

func writeOutline(w io.Writer, entries []*navigation.Entry, depth int, opts OutlineOptions) {
	indent := Indent(depth)
	for _, e := range entries {
		line := OutlineLabel(e)
		if opts.IDs {
			line += "  [" + e.ID + "]"
		}
		Writef(w, "%s%s\n", indent, line)
		if opts.MaxDepth <= 0 || depth+1 < opts.MaxDepth {
			writeOutline(w, e.Children, depth+1, opts)
		}
	}
}

// OutlineLabel returns the one-line label of an entry: the title, prefixed
// with the upper-case method for operations and webhooks.
func OutlineLabel(e *navigation.Entry) string {
	var b strings.Builder
	switch e.Type {
	case navigation.TypeOperation:
		b.WriteString(strings.ToUpper(e.Method))
		b.WriteByte(' ')
	case navigation.TypeWebhook:
		b.WriteString("webhook ")
		b.WriteString(strings.ToUpper(e.Method))
		b.WriteByte(' ')
	case navigation.TypeExample:
		b.WriteString("example: ")
	}
	b.WriteString(e.Title)
	if e.IsDeprecated {
		b.WriteString(" (deprecated)")
	}
	return b.String()
}
