package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/navigation"
	"github.com/oasnav/oasnav/workspace"
)

// Entry types. Headings and tags are reported with their own type
// names; the rest mirror navigation.EntryType.
const (
	TypeHeading   = "heading"
	TypeTag       = "tag"
	TypeOperation = "operation"
	TypeWebhook   = "webhook"
	TypeModel     = "model"
)

// Descriptions given to entries without their own.
const (
	HeadingDescription  = "Heading"
	TagGroupDescription = "Tag Group"
)

// Entry is one searchable navigation item.
type Entry struct {
	ID           string `json:"id" yaml:"id"`
	Type         string `json:"type" yaml:"type"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	DocumentName string `json:"documentName,omitempty" yaml:"documentName,omitempty"`
	Method       string `json:"method,omitempty" yaml:"method,omitempty"`
	Path         string `json:"path,omitempty" yaml:"path,omitempty"`
	OperationID  string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
}

// Result is a ranked match.
type Result struct {
	Entry
	Score int `json:"score" yaml:"score"`
}

// Documents is the part of *workspace.Store that Build reads.
type Documents interface {
	Ordered() []*workspace.Document
}

var _ Documents = (*workspace.Store)(nil)

// Index is an immutable set of entries ready to be searched.
type Index struct {
	entries   []Entry
	haystacks []string
}

// Build indexes every document of docs in workspace order.
func Build(docs Documents, opts ...navigation.Option) (*Index, error) {
	var entries []Entry
	for _, d := range docs.Ordered() {
		root, err := d.Navigation(opts...)
		if err != nil {
			return nil, err
		}
		entries = append(entries, BuildEntries(d.Name, d.Doc, root.Children)...)
	}
	return NewIndex(entries), nil
}

// BuildEntries flattens navigation entries of one document depth-first.
// Document and example entries are skipped; their children are not.
func BuildEntries(documentName string, doc *document.Document, entries []*navigation.Entry) []Entry {
	var out []Entry
	navigation.Walk(entries, func(e, _ *navigation.Entry) navigation.Action {
		item := Entry{ID: e.ID, Title: e.Title, DocumentName: documentName}
		switch e.Type {
		case navigation.TypeText:
			item.Type = TypeHeading
			item.Description = HeadingDescription
		case navigation.TypeTag:
			item.Type = TypeTag
			item.Description = e.Description
			if e.IsGroup {
				item.Description = TagGroupDescription
			}
		case navigation.TypeOperation:
			item.Type = TypeOperation
			item.Method, item.Path = e.Method, e.Path
			if op := lookupOperation(doc.Paths, e.Path, e.Method); op != nil {
				item.Description = op.Description
				item.OperationID = op.OperationID
			}
		case navigation.TypeWebhook:
			item.Type = TypeWebhook
			item.Method = e.Method
			if op := lookupOperation(doc.Webhooks, e.Name, e.Method); op != nil {
				item.Description = op.Description
				item.OperationID = op.OperationID
			}
		case navigation.TypeModel:
			item.Type = TypeModel
			if s, ok := doc.Schemas().Get(e.Name); ok && s != nil {
				item.Description = s.Description
			}
		default:
			return navigation.Continue
		}
		out = append(out, item)
		return navigation.Continue
	})
	return out
}

// lookupOperation finds the operation under items[key] whose method key
// matches method case-insensitively.
func lookupOperation(items *document.OrderedMap[*document.PathItem], key, method string) *document.Operation {
	item, ok := items.Get(key)
	if !ok || item == nil {
		return nil
	}
	for k, op := range item.Operations.All() {
		if strings.EqualFold(k, method) {
			return op
		}
	}
	return nil
}

// NewIndex indexes entries as given.
func NewIndex(entries []Entry) *Index {
	ix := &Index{entries: entries, haystacks: make([]string, len(entries))}
	for i, e := range entries {
		ix.haystacks[i] = haystack(e)
	}
	return ix
}

func haystack(e Entry) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{e.Title, e.Path, strings.ToUpper(e.Method), e.OperationID, e.Description} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns the indexed entries in document order.
func (ix *Index) Entries() []Entry {
	return append([]Entry(nil), ix.entries...)
}

// Search returns up to limit entries matching query, best first. A limit of
// zero or less returns every match; an empty query matches nothing.
func (ix *Index) Search(query string, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" || len(ix.entries) == 0 {
		return nil
	}
	matches := fuzzy.FindFrom(query, source(ix.haystacks))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{Entry: ix.entries[m.Index], Score: m.Score}
	}
	return results
}

// source adapts the haystacks to fuzzy.Source.
type source []string

func (s source) String(i int) string { return s[i] }
func (s source) Len() int            { return len(s) }
