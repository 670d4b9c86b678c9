package navigation

import (
	"github.com/oasnav/oasnav/document"
)

// Titles of the synthetic sections and the fallback tag name.
const (
	DefaultTag    = "default"
	WebhooksTitle = "Webhooks"
	ModelsTitle   = "Models"
)

// Result is the output of a traversal.
type Result struct {
	// Entries are the top-level entries in display order: description
	// headings, tags and tag groups, the Webhooks section, the Models section.
	Entries []*Entry
	// Titles maps every reachable entry id to its title.
	Titles *Titles
}

// Find returns the entry with the given id, or nil.
func (r *Result) Find(id string) *Entry {
	return Find(r.Entries, id)
}

// traversal carries the per-call state shared by the sub-traversers.
type traversal struct {
	cfg    *config
	ids    IDStrategy
	titles *Titles
}

// TraverseDocument builds the navigation tree for doc.
//
// The result depends only on doc and the options: traversing the same
// document twice yields deep-equal results, so callers may cache on the
// document hash. A nil document yields an empty result. The only error is a
// *oaserrors.DuplicateIDError, and only with WithStrictIDs(true).
//
// Example:
//
//	result, err := navigation.TraverseDocument(doc,
//	    navigation.WithOperationsSorter(navigation.OperationsByMethod()),
//	    navigation.WithHideModels(true),
//	)
func TraverseDocument(doc *document.Document, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts...)
	t := &traversal{
		cfg:    cfg,
		ids:    cfg.ids,
		titles: newTitles(cfg.strict, cfg.logger),
	}
	result := &Result{Titles: t.titles}
	if doc == nil {
		return result, nil
	}

	entries := t.headings(doc.Description())

	tags := newTagIndex(doc.Tags)
	t.paths(doc, tags)
	untagged := t.webhooks(doc, tags)
	var models []*Entry
	if !cfg.hideModels {
		models = t.models(doc, tags)
	}
	entries = append(entries, t.tags(doc, tags)...)

	if len(untagged) > 0 {
		section := &Entry{Type: TypeText, Title: WebhooksTitle, Children: untagged}
		section.ID = t.titles.add(t.ids.Section(WebhooksTitle), WebhooksTitle)
		entries = append(entries, section)
	}

	if len(models) > 0 {
		section := &Entry{Type: TypeText, Title: ModelsTitle, Children: models}
		section.ID = t.titles.add(t.ids.Section(ModelsTitle), ModelsTitle)
		entries = append(entries, section)
	}

	if t.titles.err != nil {
		return nil, t.titles.err
	}
	result.Entries = entries
	cfg.logger.Debug("navigation: traversed",
		"entries", len(entries),
		"ids", t.titles.Len(),
		"tagsSorter", cfg.tagsSorter.Name(),
		"operationsSorter", cfg.opsSorter.Name(),
	)
	return result, nil
}
